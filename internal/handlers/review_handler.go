package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/services"
)

// ReviewHandler handles HTTP requests for product reviews. Reviews cannot
// be edited once posted.
type ReviewHandler struct {
	reviewService *services.ReviewService
	validate      *validator.Validate
	maxImageBytes int64
}

func NewReviewHandler(reviewService *services.ReviewService, maxImageBytes int64) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validate:      validator.New(),
		maxImageBytes: maxImageBytes,
	}
}

// RegisterRoutes registers the review routes under /reviews.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Get("/", h.HandleListReviews)
	reviewRoutes.Get("/:productId", h.HandleListReviews)
	reviewRoutes.Post("/", h.HandleCreateReview)
	reviewRoutes.Delete("/:id", h.HandleDeleteReview)
}

// CreateReviewRequest lists the fields a client may set on a review.
type CreateReviewRequest struct {
	ProductID string `json:"productId" form:"productId" validate:"required"`
	UserID    string `json:"userId" form:"userId" validate:"required"`
	Username  string `json:"username" form:"username" validate:"required"`
	Rating    int    `json:"rating" form:"rating" validate:"min=1,max=5"`
	Comment   string `json:"comment" form:"comment" validate:"required"`
}

// HandleListReviews lists every review, or only those of :productId.
func (h *ReviewHandler) HandleListReviews(c *fiber.Ctx) error {
	reviews, err := h.reviewService.ListReviews(c.UserContext(), c.Params("productId"))
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}

func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	var req CreateReviewRequest
	if err := parseAndValidate(c, h.validate, &req); err != nil {
		return err
	}

	uploads, err := readUploads(c, h.maxImageBytes)
	if err != nil {
		return err
	}

	review, err := h.reviewService.CreateReview(c.UserContext(), &models.Review{
		ProductID: req.ProductID,
		UserID:    req.UserID,
		Username:  req.Username,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}, uploads)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Review added successfully",
		"review":  review,
	})
}

func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	if err := h.reviewService.DeleteReview(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Review deleted successfully"})
}
