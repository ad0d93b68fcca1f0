package repositories

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/models"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
type MemoryUserRepository struct {
	users []models.User
	mu    sync.RWMutex
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.ContainsFunc(r.users, func(u models.User) bool { return u.Email == user.Email }) {
		return emailTaken(user.Email)
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users = append(r.users, *user)
	return nil
}

func (r *MemoryUserRepository) find(match func(models.User) bool) (*models.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := slices.IndexFunc(r.users, match)
	if i < 0 {
		return nil, false
	}
	user := r.users[i]
	return &user, true
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := r.find(func(u models.User) bool { return u.Email == email })
	if !ok {
		return nil, userNotFound(email)
	}
	return user, nil
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]models.UserSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.UserSummary, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, models.UserSummary{ID: u.ID, Email: u.Email, IsShopkeeper: u.IsShopkeeper})
	}
	return out, nil
}

func (r *MemoryUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].Password = passwordHash
			r.users[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return userNotFound(id)
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.users, func(u models.User) bool { return u.ID == id })
	if i < 0 {
		return userNotFound(id)
	}
	r.users = slices.Delete(r.users, i, i+1)
	return nil
}
