package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"customer-service/internal/domain/customer"
	"customer-service/internal/infrastructure/monitoring"
	"customer-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	if cust.IsNew() {
		return r.createCustomer(ctx, cust)
	}
	return r.updateCustomer(ctx, cust)
}

func (r *CustomerRepository) createCustomer(ctx context.Context, cust *customer.Customer) (err error) {
	defer monitoring.ObserveDBQuery("insert_customer", time.Now(), &err)
	logger := r.logger.With(slog.Int64("personID", cust.PersonID))
	logger.InfoContext(ctx, "Attempting to insert new customer")

	err = r.db.QueryRow(ctx, insertCustomerQuery,
		cust.PersonID,
		cust.Password,
		cust.Status,
	).Scan(
		&cust.ID,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	if err != nil {
		translatedErr := translateDBError(err, logger)
		if errors.Is(translatedErr, customer.ErrAlreadyExists) || errors.Is(translatedErr, customer.ErrPersonNotFound) {
			logger.WarnContext(ctx, "Failed to insert customer due to constraint violation", slog.Any("error", translatedErr))
			return translatedErr
		}
		logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

func (r *CustomerRepository) updateCustomer(ctx context.Context, cust *customer.Customer) (err error) {
	defer monitoring.ObserveDBQuery("update_customer", time.Now(), &err)
	logger := r.logger.With(slog.Int64("customerID", cust.ID))
	logger.InfoContext(ctx, "Attempting to update customer")

	err = r.db.QueryRow(ctx, updateCustomerQuery,
		cust.PersonID,
		cust.Password,
		cust.Status,
		cust.ID,
	).Scan(
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	if err != nil {
		translatedErr := translateDBError(err, logger)
		switch {
		case errors.Is(translatedErr, customer.ErrNotFound):
			logger.WarnContext(ctx, "Update matched no rows, customer not found")
			return translatedErr
		case errors.Is(translatedErr, customer.ErrAlreadyExists), errors.Is(translatedErr, customer.ErrPersonNotFound):
			logger.WarnContext(ctx, "Failed to update customer due to constraint violation", slog.Any("error", translatedErr))
			return translatedErr
		}
		logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update customer: %w", apperrors.ErrDatabase, err)
	}

	logger.InfoContext(ctx, "Customer updated successfully")
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (cust *customer.Customer, err error) {
	defer monitoring.ObserveDBQuery("find_customer_by_id", time.Now(), &err)
	logger := r.logger.With(slog.Int64("customerID", customerID))
	logger.DebugContext(ctx, "Attempting to find customer by ID")

	cust, err = scanCustomer(r.db.QueryRow(ctx, selectCustomerByIDQuery, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnContext(ctx, "Customer not found")
			return nil, customer.ErrNotFound
		}
		logger.ErrorContext(ctx, "Failed to query/scan customer by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer by ID: %w", apperrors.ErrDatabase, err)
	}

	logger.DebugContext(ctx, "Customer found successfully")
	return cust, nil
}

func (r *CustomerRepository) FindByPersonID(ctx context.Context, personID int64) (cust *customer.Customer, err error) {
	defer monitoring.ObserveDBQuery("find_customer_by_person_id", time.Now(), &err)
	logger := r.logger.With(slog.Int64("personID", personID))
	logger.DebugContext(ctx, "Attempting to find customer by person ID")

	cust, err = scanCustomer(r.db.QueryRow(ctx, selectCustomerByPersonIDQuery, personID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnContext(ctx, "Customer not found for the given person ID")
			return nil, customer.ErrNotFound
		}
		logger.ErrorContext(ctx, "Failed to query/scan customer by person ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer by person ID: %w", apperrors.ErrDatabase, err)
	}

	logger.DebugContext(ctx, "Customer found successfully by person ID", slog.Int64("customerID", cust.ID))
	return cust, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context, activeOnly bool) (customers []*customer.Customer, err error) {
	defer monitoring.ObserveDBQuery("find_all_customers", time.Now(), &err)
	r.logger.DebugContext(ctx, "Attempting to find all customers", slog.Bool("activeOnly", activeOnly))

	var rows pgx.Rows
	if activeOnly {
		rows, err = r.db.Query(ctx, selectCustomersByStatusQuery, true)
	} else {
		rows, err = r.db.Query(ctx, selectAllCustomersQuery)
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers = make([]*customer.Customer, 0)
	for rows.Next() {
		cust, scanErr := scanCustomer(rows)
		if scanErr != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", scanErr))
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, scanErr)
		}
		customers = append(customers, cust)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.DebugContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) SetStatus(ctx context.Context, customerID int64, active bool) (cust *customer.Customer, err error) {
	defer monitoring.ObserveDBQuery("set_customer_status", time.Now(), &err)
	logger := r.logger.With(slog.Int64("customerID", customerID), slog.Bool("active", active))
	logger.InfoContext(ctx, "Attempting to set customer status")

	cust, err = scanCustomer(r.db.QueryRow(ctx, updateCustomerStatusQuery, active, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnContext(ctx, "Set status matched no rows, customer not found")
			return nil, customer.ErrNotFound
		}
		logger.ErrorContext(ctx, "Failed to execute update customer status", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to update customer status: %w", apperrors.ErrDatabase, err)
	}

	logger.InfoContext(ctx, "Customer status updated successfully")
	return cust, nil
}

func (r *CustomerRepository) UpdatePassword(ctx context.Context, customerID int64, passwordHash string) (cust *customer.Customer, err error) {
	defer monitoring.ObserveDBQuery("update_customer_password", time.Now(), &err)
	logger := r.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to update customer password")

	cust, err = scanCustomer(r.db.QueryRow(ctx, updateCustomerPasswordQuery, passwordHash, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnContext(ctx, "Password update matched no rows, customer not found")
			return nil, customer.ErrNotFound
		}
		logger.ErrorContext(ctx, "Failed to execute update customer password", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to update customer password: %w", apperrors.ErrDatabase, err)
	}

	logger.InfoContext(ctx, "Customer password updated successfully")
	return cust, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) (err error) {
	defer monitoring.ObserveDBQuery("delete_customer", time.Now(), &err)
	logger := r.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to delete customer")

	cmdTag, err := r.db.Exec(ctx, deleteCustomerQuery, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.WarnContext(ctx, "Delete affected zero rows, customer not found")
		return customer.ErrNotFound
	}

	logger.InfoContext(ctx, "Customer deleted successfully")
	return nil
}

func (r *CustomerRepository) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (n int64, err error) {
	defer monitoring.ObserveDBQuery("delete_inactive_customers", time.Now(), &err)
	logger := r.logger.With(slog.Time("cutoff", cutoff))
	logger.InfoContext(ctx, "Attempting to delete inactive customers")

	cmdTag, err := r.db.Exec(ctx, deleteInactiveCustomersQuery, cutoff.UTC())
	if err != nil {
		logger.ErrorContext(ctx, "Failed to execute delete inactive customers", slog.Any("error", err))
		return 0, fmt.Errorf("%w: failed to delete inactive customers: %w", apperrors.ErrDatabase, err)
	}

	logger.InfoContext(ctx, "Inactive customers deleted", slog.Int64("count", cmdTag.RowsAffected()))
	return cmdTag.RowsAffected(), nil
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var cust customer.Customer
	err := row.Scan(
		&cust.ID,
		&cust.PersonID,
		&cust.Password,
		&cust.Status,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cust, nil
}
