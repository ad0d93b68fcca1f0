package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"storefront/internal/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := apperrors.New(apperrors.NotFound, "product not found")
	wrapped := fmt.Errorf("get product: %w", base)

	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(base))
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(wrapped))
	assert.Equal(t, apperrors.Internal, apperrors.KindOf(errors.New("boom")))
	assert.True(t, apperrors.Is(wrapped, apperrors.NotFound))
	assert.False(t, apperrors.Is(nil, apperrors.NotFound))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperrors.Wrap(apperrors.Internal, cause, "failed to list products")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to list products: connection refused", err.Error())
}

func TestToResponse(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", apperrors.New(apperrors.ValidationFailed, "rating must be between 1 and 5"), http.StatusBadRequest, "VALIDATION_FAILED", "rating must be between 1 and 5"},
		{"conflict", apperrors.New(apperrors.Conflict, "Email already exists!"), http.StatusBadRequest, "CONFLICT", "Email already exists!"},
		{"credentials", apperrors.New(apperrors.InvalidCredentials, "Invalid email or password!"), http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid email or password!"},
		{"too many files", apperrors.New(apperrors.TooManyFiles, "at most 5 images"), http.StatusBadRequest, "TOO_MANY_FILES", "at most 5 images"},
		{"not found", apperrors.New(apperrors.NotFound, "Product not found!"), http.StatusNotFound, "NOT_FOUND", "Product not found!"},
		{"image", apperrors.New(apperrors.UnprocessableImage, "cannot decode image"), http.StatusInternalServerError, "UNPROCESSABLE_IMAGE", "cannot decode image"},
		{"internal", apperrors.Wrap(apperrors.Internal, errors.New("secret dsn"), "db down"), http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"},
		{"plain", errors.New("anything"), http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := apperrors.ToResponse(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}
