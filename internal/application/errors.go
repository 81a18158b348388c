package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid ID")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// UserNotFoundError reports a mutation aimed at a user the local store does
// not hold
type UserNotFoundError struct {
	UserID int64
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("local user %d not found", e.UserID)
}

func (e *UserNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
