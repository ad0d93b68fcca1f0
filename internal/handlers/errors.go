package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"storefront/internal/apperrors"
)

// ErrorHandler is installed as fiber.Config.ErrorHandler. Every error a
// handler returns ends up here and is written as {"message", "code"}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(apperrors.ErrorResponse{
			Message: fe.Message,
			Code:    statusCode(fe.Code),
		})
	}

	status, body := apperrors.ToResponse(err)
	if status >= fiber.StatusInternalServerError {
		log.Printf("Error handling %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(body)
}

// statusCode turns 413 into "REQUEST_ENTITY_TOO_LARGE" and so on.
func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(utils.StatusMessage(status), " ", "_"))
}

func invalidBody(err error) error {
	return apperrors.Wrap(apperrors.ValidationFailed, err, "Invalid request body")
}

// validationFailed flattens validator errors into a single message.
func validationFailed(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperrors.Wrap(apperrors.ValidationFailed, err, "Validation failed")
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
	}
	return apperrors.Wrap(apperrors.ValidationFailed, err, "Validation failed: "+strings.Join(msgs, "; "))
}

// parseAndValidate binds the request body into dst and runs its validate tags.
func parseAndValidate(c *fiber.Ctx, validate *validator.Validate, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return invalidBody(err)
	}
	if err := validate.Struct(dst); err != nil {
		return validationFailed(err)
	}
	return nil
}
