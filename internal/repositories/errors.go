package repositories

import (
	"fmt"

	"storefront/internal/apperrors"
)

func productNotFound(id string) error {
	return apperrors.New(apperrors.NotFound, fmt.Sprintf("product with ID %s not found", id))
}

func reviewNotFound(id string) error {
	return apperrors.New(apperrors.NotFound, fmt.Sprintf("review with ID %s not found", id))
}

func userNotFound(key string) error {
	return apperrors.New(apperrors.NotFound, fmt.Sprintf("user %s not found", key))
}

func emailTaken(email string) error {
	return apperrors.New(apperrors.Conflict, fmt.Sprintf("email '%s' already registered", email))
}

func storeFailure(err error, op string) error {
	return apperrors.Wrap(apperrors.Internal, err, op)
}
