package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

func (r *GORMReviewRepository) List(ctx context.Context, productID string) ([]models.Review, error) {
	q := r.db.WithContext(ctx).Order("created_at")
	if productID != "" {
		q = q.Where("product_id = ?", productID)
	}

	reviews := []models.Review{}
	if err := q.Find(&reviews).Error; err != nil {
		return nil, translateGORMError(err, "failed to list reviews")
	}
	return reviews, nil
}

// Create inserts a review. The model's BeforeCreate hook rejects bad ratings.
func (r *GORMReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return translateGORMError(err, "failed to create review")
	}
	return nil
}

func (r *GORMReviewRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id)
	if res.Error != nil {
		return translateGORMError(res.Error, "failed to delete review")
	}
	if res.RowsAffected == 0 {
		return reviewNotFound(id)
	}
	return nil
}
