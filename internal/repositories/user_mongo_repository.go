package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

// MongoUserRepository relies on the unique email index created by
// EnsureMongoIndexes to reject duplicate signups.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(UsersCollection)}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return emailTaken(user.Email)
		}
		return storeFailure(err, "failed to create user")
	}
	return nil
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, email)
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M, key string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, userNotFound(key)
		}
		return nil, storeFailure(err, "failed to get user "+key)
	}
	return &user, nil
}

func (r *MongoUserRepository) List(ctx context.Context) ([]models.UserSummary, error) {
	opts := options.Find().
		SetProjection(bson.M{"email": 1, "isShopkeeper": 1}).
		SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeFailure(err, "failed to list users")
	}
	users := []models.UserSummary{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, storeFailure(err, "failed to decode users")
	}
	return users, nil
}

func (r *MongoUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	update := bson.M{"$set": bson.M{"password": passwordHash, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return storeFailure(err, "failed to update password")
	}
	if res.MatchedCount == 0 {
		return userNotFound(id)
	}
	return nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeFailure(err, "failed to delete user")
	}
	if res.DeletedCount == 0 {
		return userNotFound(id)
	}
	return nil
}
