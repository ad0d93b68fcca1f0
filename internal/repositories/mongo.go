package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names shared by the Mongo repositories.
const (
	UsersCollection    = "users"
	ProductsCollection = "products"
	ReviewsCollection  = "reviews"
)

// EnsureMongoIndexes creates the unique email index and the lookup indexes
// used by product and review listings.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string]mongo.IndexModel{
		UsersCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		ProductsCollection: {
			Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdBy", Value: 1}},
		},
		ReviewsCollection: {
			Keys: bson.D{{Key: "productId", Value: 1}},
		},
	}
	for coll, model := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", coll, err)
		}
	}
	return nil
}

var byCreation = options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
