package services

import (
	"context"

	"storefront/internal/images"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ReviewService handles business logic related to reviews.
type ReviewService struct {
	repo     repositories.ReviewRepository
	pipeline *images.Pipeline
	events   EventPublisher
}

func NewReviewService(repo repositories.ReviewRepository, pipeline *images.Pipeline) *ReviewService {
	return &ReviewService{repo: repo, pipeline: pipeline}
}

func (s *ReviewService) WithEvents(p EventPublisher) *ReviewService {
	s.events = p
	return s
}

// ListReviews returns all reviews, or those of productID when it is set.
func (s *ReviewService) ListReviews(ctx context.Context, productID string) ([]models.ReviewView, error) {
	reviews, err := s.repo.List(ctx, productID)
	if err != nil {
		return nil, err
	}
	views := make([]models.ReviewView, len(reviews))
	for i := range reviews {
		views[i] = models.NewReviewView(&reviews[i], images.EncodeAll(reviews[i].Images))
	}
	return views, nil
}

// CreateReview validates the review before spending time on its images.
func (s *ReviewService) CreateReview(ctx context.Context, review *models.Review, uploads []images.Upload) (*models.ReviewView, error) {
	if err := review.Validate(); err != nil {
		return nil, err
	}

	imgs, err := s.pipeline.IngestAll(ctx, uploads)
	if err != nil {
		return nil, err
	}
	review.Images = imgs

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	publishEvent(s.events, EventReviewCreated, map[string]interface{}{
		"reviewID":  review.ID,
		"productID": review.ProductID,
		"rating":    review.Rating,
	})

	v := models.NewReviewView(review, images.EncodeAll(review.Images))
	return &v, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	publishEvent(s.events, EventReviewDeleted, map[string]interface{}{"reviewID": id})
	return nil
}
