package customer

import (
	"context"
	"customer-service/internal/pkg/apperrors"
	"fmt"
	"time"
)

var (
	ErrNotFound = fmt.Errorf("customer not found: %w", apperrors.ErrNotFound)

	ErrAlreadyExists = fmt.Errorf("customer already registered for person: %w", apperrors.ErrAlreadyExists)

	ErrPersonNotFound = fmt.Errorf("referenced person does not exist: %w", apperrors.ErrInvalidArgument)

	ErrInvalidCredentials = fmt.Errorf("invalid customer credentials: %w", apperrors.ErrUnauthorized)
)

type CustomerRepository interface {
	// Save inserts when the customer is new and updates every column otherwise.
	// ID, CreatedAt and UpdatedAt are refreshed from storage.
	Save(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	FindByPersonID(ctx context.Context, personID int64) (*Customer, error)

	FindAll(ctx context.Context, activeOnly bool) ([]*Customer, error)

	SetStatus(ctx context.Context, customerID int64, active bool) (*Customer, error)

	UpdatePassword(ctx context.Context, customerID int64, passwordHash string) (*Customer, error)

	Delete(ctx context.Context, customerID int64) error

	DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// PersonLookup answers whether a person row exists. Persons are owned by another service.
type PersonLookup interface {
	PersonExists(ctx context.Context, personID int64) (bool, error)
}
