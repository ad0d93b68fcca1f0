package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

type MongoReviewRepository struct {
	coll *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{coll: db.Collection(ReviewsCollection)}
}

func (r *MongoReviewRepository) List(ctx context.Context, productID string) ([]models.Review, error) {
	query := bson.M{}
	if productID != "" {
		query["productId"] = productID
	}

	cur, err := r.coll.Find(ctx, query, byCreation)
	if err != nil {
		return nil, storeFailure(err, "failed to list reviews")
	}
	reviews := []models.Review{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, storeFailure(err, "failed to decode reviews")
	}
	return reviews, nil
}

func (r *MongoReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := review.Validate(); err != nil {
		return err
	}
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return storeFailure(err, "failed to create review")
	}
	return nil
}

func (r *MongoReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeFailure(err, "failed to delete review")
	}
	if res.DeletedCount == 0 {
		return reviewNotFound(id)
	}
	return nil
}
