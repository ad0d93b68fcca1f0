package repositories

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/models"
)

// MemoryReviewRepository is an in-memory implementation of ReviewRepository.
type MemoryReviewRepository struct {
	reviews []models.Review
	mu      sync.RWMutex
}

func NewMemoryReviewRepository() *MemoryReviewRepository {
	return &MemoryReviewRepository{}
}

func (r *MemoryReviewRepository) List(ctx context.Context, productID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Review, 0, len(r.reviews))
	for _, review := range r.reviews {
		if productID == "" || review.ProductID == productID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (r *MemoryReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := review.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *MemoryReviewRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.reviews, func(review models.Review) bool { return review.ID == id })
	if i < 0 {
		return reviewNotFound(id)
	}
	r.reviews = slices.Delete(r.reviews, i, i+1)
	return nil
}
