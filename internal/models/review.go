package models

import (
	"time"

	"gorm.io/gorm"

	"storefront/internal/apperrors"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a product review. Reviews are never edited in place.
type Review struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string    `json:"productId" bson:"productId" gorm:"index;type:varchar(36);not null"`
	UserID    string    `json:"userId" bson:"userId" gorm:"type:varchar(64);not null"`
	Username  string    `json:"username" bson:"username" gorm:"type:varchar(100);not null"`
	Rating    int       `json:"rating" bson:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `json:"comment" bson:"comment" gorm:"not null"`
	Images    []Image   `json:"images" bson:"images" gorm:"serializer:json"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Validate rejects reviews that no store may persist.
func (r *Review) Validate() error {
	switch {
	case r.ProductID == "":
		return apperrors.New(apperrors.ValidationFailed, "productId is required")
	case r.UserID == "" || r.Username == "":
		return apperrors.New(apperrors.ValidationFailed, "userId and username are required")
	case r.Comment == "":
		return apperrors.New(apperrors.ValidationFailed, "comment is required")
	case r.Rating < MinRating || r.Rating > MaxRating:
		return apperrors.New(apperrors.ValidationFailed, "rating must be between 1 and 5")
	}
	return nil
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	return r.Validate()
}

// ReviewView is a review as returned by read endpoints.
type ReviewView struct {
	ID        string         `json:"id"`
	ProductID string         `json:"productId"`
	UserID    string         `json:"userId"`
	Username  string         `json:"username"`
	Rating    int            `json:"rating"`
	Comment   string         `json:"comment"`
	Images    []EncodedImage `json:"images"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func NewReviewView(r *Review, images []EncodedImage) ReviewView {
	return ReviewView{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Username:  r.Username,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Images:    images,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
