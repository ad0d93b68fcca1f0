package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

const defaultUsername = "User"

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

// AuthService handles signup, login and account administration. It issues
// no tokens: login only reports who the user is.
type AuthService struct {
	userRepo repositories.UserRepository
	cost     int
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cost:     bcrypt.DefaultCost,
	}
}

// SignupInput carries the allow-listed signup fields.
type SignupInput struct {
	Email        string
	Username     string
	Password     string
	IsShopkeeper bool
}

// LoginResult is what a successful login reveals about the account.
type LoginResult struct {
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	IsShopkeeper bool   `json:"isShopkeeper"`
}

// hash rejects passwords bcrypt cannot take (over MaxPasswordBytes) as a
// client error.
func (s *AuthService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.Wrap(apperrors.ValidationFailed, err,
				fmt.Sprintf("Password must be at most %d bytes", MaxPasswordBytes))
		}
		return "", apperrors.Wrap(apperrors.Internal, err, "failed to hash password")
	}
	return string(hashed), nil
}

// Signup registers a new user, hashes their password, and saves them.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.New(apperrors.Conflict, "Email already exists!")
	} else if !apperrors.Is(err, apperrors.NotFound) {
		return nil, err
	}

	hashedPassword, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        in.Email,
		Username:     in.Username,
		Password:     hashedPassword,
		IsShopkeeper: in.IsShopkeeper,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperrors.Is(err, apperrors.Conflict) {
			return nil, apperrors.Wrap(apperrors.Conflict, err, "Email already exists!")
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login checks the password against the stored hash. Unknown emails and
// wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.NotFound) {
			return nil, apperrors.New(apperrors.InvalidCredentials, "Invalid email or password!")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.New(apperrors.InvalidCredentials, "Invalid email or password!")
	}

	username := user.Username
	if username == "" {
		username = defaultUsername
	}
	return &LoginResult{UserID: user.ID, Username: username, IsShopkeeper: user.IsShopkeeper}, nil
}

// ListUsers returns every account's email and shopkeeper flag.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	return s.userRepo.List(ctx)
}

// DeleteUser removes an account by ID.
func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.NotFound) {
			return apperrors.Wrap(apperrors.NotFound, err, "User not found!")
		}
		return err
	}
	return nil
}

// ResetPassword overwrites the stored hash. No proof of the old password
// is required.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.NotFound) {
			return apperrors.Wrap(apperrors.NotFound, err, "User not found!")
		}
		return err
	}

	hashedPassword, err := s.hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		if apperrors.Is(err, apperrors.NotFound) {
			return apperrors.Wrap(apperrors.NotFound, err, "User not found!")
		}
		return err
	}
	return nil
}
