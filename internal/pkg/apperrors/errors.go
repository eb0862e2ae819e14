package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrAlreadyExists = errors.New("resource already exists")

	ErrDatabase = errors.New("database error")

	ErrInternalServer = errors.New("internal server error")

	ErrUnauthorized = errors.New("unauthorized")

	ErrForbidden = errors.New("forbidden")

	ErrConflict = errors.New("resource conflict")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError returns an error matching both ErrValidation and *ValidationError.
func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

// Public is what a client may see of an error.
type Public struct {
	Status  int
	Message string
	Field   string
}

// ToPublic maps err onto a status and a client-safe message. Only caller mistakes
// echo err.Error(); anything unrecognised becomes a generic 500.
func ToPublic(err error) Public {
	var validationError *ValidationError

	switch {
	case errors.As(err, &validationError):
		return Public{Status: http.StatusBadRequest, Message: validationError.Message, Field: validationError.Field}
	case errors.Is(err, ErrNotFound):
		return Public{Status: http.StatusNotFound, Message: "Resource not found."}
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrValidation):
		return Public{Status: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrConflict):
		return Public{Status: http.StatusConflict, Message: "Resource already exists."}
	case errors.Is(err, ErrUnauthorized):
		return Public{Status: http.StatusUnauthorized, Message: "Unauthorized."}
	case errors.Is(err, ErrForbidden):
		return Public{Status: http.StatusForbidden, Message: "Forbidden."}
	default:
		return Public{Status: http.StatusInternalServerError, Message: "An unexpected error occurred."}
	}
}
