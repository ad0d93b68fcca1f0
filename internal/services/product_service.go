package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/images"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

const productCacheTTL = 5 * time.Minute

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	pipeline *images.Pipeline
	cache    Cache
	cacheTTL time.Duration
	events   EventPublisher
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, pipeline *images.Pipeline) *ProductService {
	return &ProductService{
		repo:     repo,
		pipeline: pipeline,
		cacheTTL: productCacheTTL,
	}
}

// WithCache enables read-through caching of single product lookups.
func (s *ProductService) WithCache(c Cache, ttl time.Duration) *ProductService {
	s.cache = c
	if ttl > 0 {
		s.cacheTTL = ttl
	}
	return s
}

// WithEvents publishes product lifecycle events through p.
func (s *ProductService) WithEvents(p EventPublisher) *ProductService {
	s.events = p
	return s
}

// ProductPatch lists the fields an update may change. Nil means unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	MRP         *float64
	Discount    *float64
	Title       *string
	BankName    *string
	BankOffer   *float64
	Category    *string
	TextColor   *string
	BgColor     *string
	CreatedBy   *string
}

func (p ProductPatch) apply(product *models.Product) {
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setFloat := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setString(&product.Name, p.Name)
	setString(&product.Description, p.Description)
	setFloat(&product.Price, p.Price)
	setFloat(&product.MRP, p.MRP)
	setFloat(&product.Discount, p.Discount)
	setString(&product.Title, p.Title)
	setString(&product.BankName, p.BankName)
	setFloat(&product.BankOffer, p.BankOffer)
	setString(&product.Category, p.Category)
	setString(&product.TextColor, p.TextColor)
	setString(&product.BgColor, p.BgColor)
	setString(&product.CreatedBy, p.CreatedBy)
}

func (s *ProductService) view(p *models.Product) models.ProductView {
	return models.NewProductView(p, images.EncodeAll(p.Images))
}

func cacheKey(id string) string {
	return "product:" + id
}

// ListProducts retrieves products matching filter with images encoded.
func (s *ProductService) ListProducts(ctx context.Context, filter repositories.ProductFilter) ([]models.ProductView, error) {
	if filter.Category != "" && !models.ValidCategory(filter.Category) {
		return nil, apperrors.New(apperrors.ValidationFailed, "invalid category: "+filter.Category)
	}

	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]models.ProductView, len(products))
	for i := range products {
		views[i] = s.view(&products[i])
	}
	return views, nil
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.ProductView, error) {
	if s.cache != nil {
		if cached, _ := s.cache.Get(ctx, cacheKey(id)); cached != nil {
			var v models.ProductView
			if err := json.Unmarshal(cached, &v); err == nil {
				return &v, nil
			}
		}
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := s.view(product)

	if s.cache != nil {
		if body, err := json.Marshal(v); err == nil {
			_ = s.cache.Set(ctx, cacheKey(id), body, s.cacheTTL)
		}
	}
	return &v, nil
}

// CreateProduct validates product, transcodes uploads and persists it.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product, uploads []images.Upload) (*models.ProductView, error) {
	product.ApplyDefaults()
	if err := product.Validate(); err != nil {
		return nil, err
	}

	imgs, err := s.pipeline.IngestAll(ctx, uploads)
	if err != nil {
		return nil, err
	}
	product.Images = imgs

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	log.Printf("Created product %s (%s) with %d image(s)", product.ID, product.Name, len(imgs))

	publishEvent(s.events, EventProductCreated, map[string]interface{}{
		"productID": product.ID,
		"name":      product.Name,
		"category":  product.Category,
		"createdBy": product.CreatedBy,
	})

	v := s.view(product)
	return &v, nil
}

// UpdateProduct merges patch into the stored product. Any uploads replace
// the whole image sequence; without uploads the images are kept.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch ProductPatch, uploads []images.Upload) (*models.ProductView, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.apply(product)
	product.ApplyDefaults()
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if len(uploads) > 0 {
		imgs, err := s.pipeline.IngestAll(ctx, uploads)
		if err != nil {
			return nil, err
		}
		product.Images = imgs
	}

	s.evict(ctx, id)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.evict(ctx, id)

	publishEvent(s.events, EventProductUpdated, map[string]interface{}{
		"productID":      product.ID,
		"imagesReplaced": len(uploads) > 0,
	})

	v := s.view(product)
	return &v, nil
}

// DeleteProduct deletes a product by its ID. Reviews of the product are
// left in place.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	s.evict(ctx, id)
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, id)

	publishEvent(s.events, EventProductDeleted, map[string]interface{}{"productID": id})
	return nil
}

// evict runs on both sides of a write: a GetProduct that read the store
// just before the write can still re-cache the old view until the second
// eviction lands.
func (s *ProductService) evict(ctx context.Context, id string) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, cacheKey(id))
	}
}
