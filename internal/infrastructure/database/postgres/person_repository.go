package postgres

import (
	"context"
	"customer-service/internal/domain/customer"
	"customer-service/internal/infrastructure/monitoring"
	"customer-service/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// PersonRepository reads the persons table owned by another service.
type PersonRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.PersonLookup = (*PersonRepository)(nil)

func NewPersonRepository(db DBPool, logger *slog.Logger) *PersonRepository {
	if db == nil {
		panic("DBPool cannot be nil for PersonRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return &PersonRepository{
		db:     db,
		logger: logger.With("component", "PersonRepository"),
	}
}

func (r *PersonRepository) PersonExists(ctx context.Context, personID int64) (exists bool, err error) {
	defer monitoring.ObserveDBQuery("person_exists", time.Now(), &err)

	if err = r.db.QueryRow(ctx, personExistsQuery, personID).Scan(&exists); err != nil {
		r.logger.ErrorContext(ctx, "Failed to check person existence", slog.Int64("personID", personID), slog.Any("error", err))
		return false, fmt.Errorf("%w: failed to check person existence: %w", apperrors.ErrDatabase, err)
	}
	return exists, nil
}
