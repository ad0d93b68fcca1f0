package repositories

import (
	"context"

	"storefront/internal/models"
)

// ProductFilter narrows a product listing. Empty fields match everything.
type ProductFilter struct {
	Category  string
	CreatedBy string
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Update replaces the stored record with product, matched on product.ID.
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}
