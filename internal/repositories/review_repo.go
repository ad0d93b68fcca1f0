package repositories

import (
	"context"

	"storefront/internal/models"
)

// ReviewRepository defines the interface for review data access.
// There is no update: reviews are immutable once written.
type ReviewRepository interface {
	// List returns every review, or only those of productID when it is set.
	List(ctx context.Context, productID string) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
}
