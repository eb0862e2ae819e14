package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("password", "too short")

	assert.ErrorIs(t, err, ErrValidation)

	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "password", vErr.Field)
	assert.Equal(t, "too short", vErr.Message)
	assert.Equal(t, "validation failed for field 'password': too short", vErr.Error())
}

func TestValidationErrorWithoutField(t *testing.T) {
	vErr := &ValidationError{Message: "bad input"}
	assert.Equal(t, "validation failed: bad input", vErr.Error())
}

func TestValidationErrorUnwrap(t *testing.T) {
	cause := errors.New("strconv: bad digit")
	vErr := &ValidationError{Field: "active", Message: "must be a boolean", Cause: cause}

	assert.ErrorIs(t, vErr, cause)
}

func TestToPublic(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Public
	}{
		{
			name: "field validation keeps field and message",
			err:  NewValidationError("password", "too short"),
			want: Public{Status: http.StatusBadRequest, Message: "too short", Field: "password"},
		},
		{
			name: "wrapped not found",
			err:  fmt.Errorf("customer 9: %w", ErrNotFound),
			want: Public{Status: http.StatusNotFound, Message: "Resource not found."},
		},
		{
			name: "invalid argument echoes the cause",
			err:  fmt.Errorf("%w: personId must be positive", ErrInvalidArgument),
			want: Public{Status: http.StatusBadRequest, Message: "invalid argument: personId must be positive"},
		},
		{
			name: "already exists",
			err:  fmt.Errorf("person 4: %w", ErrAlreadyExists),
			want: Public{Status: http.StatusConflict, Message: "Resource already exists."},
		},
		{
			name: "conflict",
			err:  ErrConflict,
			want: Public{Status: http.StatusConflict, Message: "Resource already exists."},
		},
		{
			name: "unauthorized",
			err:  fmt.Errorf("bad password: %w", ErrUnauthorized),
			want: Public{Status: http.StatusUnauthorized, Message: "Unauthorized."},
		},
		{
			name: "forbidden",
			err:  ErrForbidden,
			want: Public{Status: http.StatusForbidden, Message: "Forbidden."},
		},
		{
			name: "database details are hidden",
			err:  fmt.Errorf("%w: relation \"customers\" does not exist", ErrDatabase),
			want: Public{Status: http.StatusInternalServerError, Message: "An unexpected error occurred."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPublic(tt.err))
		})
	}
}
