package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
// The database must be opened with TranslateError so duplicate emails
// surface as gorm.ErrDuplicatedKey.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return emailTaken(user.Email)
		}
		return translateGORMError(err, "failed to create user")
	}
	return nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *GORMUserRepository) first(ctx context.Context, cond, value string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, cond, value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userNotFound(value)
		}
		return nil, translateGORMError(err, "failed to get user "+value)
	}
	return &user, nil
}

// List returns the id, email and shopkeeper flag of every user.
func (r *GORMUserRepository) List(ctx context.Context) ([]models.UserSummary, error) {
	users := []models.UserSummary{}
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("id", "email", "is_shopkeeper").
		Order("created_at").
		Find(&users).Error
	if err != nil {
		return nil, translateGORMError(err, "failed to list users")
	}
	return users, nil
}

func (r *GORMUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", passwordHash)
	if res.Error != nil {
		return translateGORMError(res.Error, "failed to update password")
	}
	if res.RowsAffected == 0 {
		return userNotFound(id)
	}
	return nil
}

func (r *GORMUserRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return translateGORMError(res.Error, "failed to delete user")
	}
	if res.RowsAffected == 0 {
		return userNotFound(id)
	}
	return nil
}
