package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

// MongoProductRepository stores products as documents with embedded images.
type MongoProductRepository struct {
	coll *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(ProductsCollection)}
}

func (r *MongoProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.CreatedBy != "" {
		query["createdBy"] = filter.CreatedBy
	}

	cur, err := r.coll.Find(ctx, query, byCreation)
	if err != nil {
		return nil, storeFailure(err, "failed to list products")
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, storeFailure(err, "failed to decode products")
	}
	return products, nil
}

func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, productNotFound(id)
		}
		return nil, storeFailure(err, "failed to get product by ID "+id)
	}
	return &product, nil
}

func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return storeFailure(err, "failed to create product")
	}
	return nil
}

// Update replaces the whole document, so the image array is swapped wholesale.
func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	product.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return storeFailure(err, "failed to update product")
	}
	if res.MatchedCount == 0 {
		return productNotFound(product.ID)
	}
	return nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeFailure(err, "failed to delete product")
	}
	if res.DeletedCount == 0 {
		return productNotFound(id)
	}
	return nil
}
