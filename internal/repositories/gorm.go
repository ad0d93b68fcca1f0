package repositories

import (
	"errors"

	"gorm.io/gorm"

	"storefront/internal/apperrors"
)

// translateGORMError keeps classified errors raised by model hooks and
// wraps everything else as an internal store failure.
func translateGORMError(err error, op string) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return apperrors.Wrap(apperrors.ValidationFailed, err, "record violates a store constraint")
	}
	return storeFailure(err, op)
}
