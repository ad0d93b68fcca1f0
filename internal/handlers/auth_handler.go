package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

// AuthHandler handles HTTP requests for accounts.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the account routes under /auth.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/users", h.HandleListUsers)
	authRoutes.Delete("/users/:id", h.HandleDeleteUser)
	authRoutes.Post("/reset-password", h.HandleResetPassword)
}

// SignupRequest represents the request body for signup.
type SignupRequest struct {
	Email        string `json:"email" form:"email" validate:"required,email"`
	Username     string `json:"username" form:"username" validate:"required"`
	Password     string `json:"password" form:"password" validate:"required,max=72"`
	IsShopkeeper bool   `json:"isShopkeeper" form:"isShopkeeper"`
}

// HandleSignup handles new user registration.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := parseAndValidate(c, h.validate, &req); err != nil {
		return err
	}

	_, err := h.authService.Signup(c.UserContext(), services.SignupInput{
		Email:        req.Email,
		Username:     req.Username,
		Password:     req.Password,
		IsShopkeeper: req.IsShopkeeper,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully!",
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// HandleLogin checks credentials and reports who the user is.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseAndValidate(c, h.validate, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":      "Login successful!",
		"userId":       res.UserID,
		"username":     res.Username,
		"isShopkeeper": res.IsShopkeeper,
	})
}

func (h *AuthHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *AuthHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.authService.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully!"})
}

// ResetPasswordRequest represents the request body for a password reset.
type ResetPasswordRequest struct {
	Email       string `json:"email" form:"email" validate:"required"`
	NewPassword string `json:"newPassword" form:"newPassword" validate:"required,max=72"`
}

// HandleResetPassword replaces the password of the account with the given email.
func (h *AuthHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := parseAndValidate(c, h.validate, &req); err != nil {
		return err
	}

	if err := h.authService.ResetPassword(c.UserContext(), req.Email, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password reset successfully!"})
}
