package customer

import (
	"context"
	"customer-service/internal/event"
	"customer-service/internal/infrastructure/monitoring"
	"customer-service/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	inputValidationPassed = "Input validation passed"
	customerNotFound      = "Customer not found by repository"

	// bcrypt ignores input past this many bytes.
	maxPasswordBytes = 72
)

type CustomerService interface {
	RegisterCustomer(ctx context.Context, personID int64, password string) (*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	FindCustomerByPerson(ctx context.Context, personID int64) (*Customer, error)
	ListCustomers(ctx context.Context, activeOnly bool) ([]*Customer, error)
	ChangePassword(ctx context.Context, customerID int64, newPassword string) error
	VerifyPassword(ctx context.Context, customerID int64, password string) error
	ActivateCustomer(ctx context.Context, customerID int64) error
	DeactivateCustomer(ctx context.Context, customerID int64) error
	DeleteCustomer(ctx context.Context, customerID int64) error
	PurgeInactiveCustomers(ctx context.Context, cutoff time.Time) (int64, error)
}

type PasswordPolicy struct {
	MinLength  int
	BcryptCost int
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo    CustomerRepository
	persons PersonLookup
	pub     event.EventPublisher
	policy  PasswordPolicy
	logger  *slog.Logger
}

func NewCustomerService(repo CustomerRepository, persons PersonLookup, pub event.EventPublisher, policy PasswordPolicy, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if persons == nil {
		panic("person lookup cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if pub == nil {
		logger.Warn("Warning: No event publisher provided to NewCustomerService, events will only be logged")
		pub = event.NewLogPublisher(logger)
	}

	if policy.BcryptCost == 0 {
		policy.BcryptCost = bcrypt.DefaultCost
	}

	return &customerService{
		repo:    repo,
		persons: persons,
		pub:     pub,
		policy:  policy,
		logger:  logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID: cust.ID,
		PersonID:   cust.PersonID,
		Status:     cust.Status,
		CreatedAt:  cust.CreatedAt,
		UpdatedAt:  cust.UpdatedAt,
	}
}

func (s *customerService) RegisterCustomer(ctx context.Context, personID int64, password string) (*Customer, error) {
	logger := s.logger.With(slog.Int64("personID", personID))
	logger.InfoContext(ctx, "Attempting to register new customer")

	if personID <= 0 {
		logger.WarnContext(ctx, "Validation failed: personId is not positive")
		return nil, apperrors.NewValidationError("personId", "must be a positive number")
	}
	if err := s.validatePassword(password); err != nil {
		logger.WarnContext(ctx, "Validation failed: password rejected by policy")
		return nil, err
	}
	logger.InfoContext(ctx, inputValidationPassed)

	exists, err := s.persons.PersonExists(ctx, personID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to look up person", slog.Any("error", err))
		return nil, fmt.Errorf("failed to look up person %d: %w", personID, err)
	}
	if !exists {
		logger.WarnContext(ctx, "Referenced person does not exist")
		return nil, ErrPersonNotFound
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		return nil, err
	}

	cust := NewBuilder().
		PersonID(personID).
		Password(hash).
		Status(true).
		Build()

	logger.InfoContext(ctx, "Calling repository Save")
	if err := s.repo.Save(ctx, cust); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			logger.WarnContext(ctx, "Person already has a customer record")
			return nil, err
		}
		logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	logger = logger.With(slog.Int64("customerID", cust.ID))
	monitoring.RecordCustomerRegistered()

	if pubErr := s.pub.PublishCustomerCreated(ctx, event.NewCustomerCreatedEvent(NewCustomerEventPayload(cust))); pubErr != nil {
		logger.ErrorContext(ctx, "Customer created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	logger.InfoContext(ctx, "Successfully registered new customer")
	return cust, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to get customer by ID")

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return nil, ErrNotFound
		}
		logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	logger.InfoContext(ctx, "Successfully retrieved customer")
	return cust, nil
}

func (s *customerService) FindCustomerByPerson(ctx context.Context, personID int64) (*Customer, error) {
	logger := s.logger.With(slog.Int64("personID", personID))
	logger.InfoContext(ctx, "Attempting to find customer by person ID")

	cust, err := s.repo.FindByPersonID(ctx, personID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return nil, ErrNotFound
		}
		logger.ErrorContext(ctx, "Repository error finding customer by person", slog.Any("error", err))
		return nil, fmt.Errorf("failed to find customer for person %d: %w", personID, err)
	}

	logger.InfoContext(ctx, "Successfully found customer by person ID", slog.Int64("customerID", cust.ID))
	return cust, nil
}

func (s *customerService) ListCustomers(ctx context.Context, activeOnly bool) ([]*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to list customers", slog.Bool("activeOnly", activeOnly))

	customers, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) ChangePassword(ctx context.Context, customerID int64, newPassword string) error {
	logger := s.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to change customer password")

	if err := s.validatePassword(newPassword); err != nil {
		logger.WarnContext(ctx, "Validation failed: password rejected by policy")
		return err
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		return err
	}

	cust, err := s.repo.UpdatePassword(ctx, customerID, hash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return ErrNotFound
		}
		logger.ErrorContext(ctx, "Repository failed to update password", slog.Any("error", err))
		return fmt.Errorf("failed to change password for customer %d: %w", customerID, err)
	}

	s.publishUpdated(ctx, logger, cust)
	logger.InfoContext(ctx, "Successfully changed customer password")
	return nil
}

func (s *customerService) VerifyPassword(ctx context.Context, customerID int64, password string) error {
	logger := s.logger.With(slog.Int64("customerID", customerID))
	logger.DebugContext(ctx, "Attempting to verify customer password")

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return ErrNotFound
		}
		logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return fmt.Errorf("failed to verify password for customer %d: %w", customerID, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cust.Password), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logger.ErrorContext(ctx, "Stored password hash is unusable", slog.Any("error", err))
		} else {
			logger.WarnContext(ctx, "Password mismatch")
		}
		return ErrInvalidCredentials
	}

	logger.DebugContext(ctx, "Password verified")
	return nil
}

func (s *customerService) ActivateCustomer(ctx context.Context, customerID int64) error {
	return s.setStatus(ctx, customerID, true)
}

func (s *customerService) DeactivateCustomer(ctx context.Context, customerID int64) error {
	return s.setStatus(ctx, customerID, false)
}

func (s *customerService) setStatus(ctx context.Context, customerID int64, active bool) error {
	logger := s.logger.With(slog.Int64("customerID", customerID), slog.Bool("active", active))
	logger.InfoContext(ctx, "Attempting to set customer status")

	cust, err := s.repo.SetStatus(ctx, customerID, active)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return ErrNotFound
		}
		logger.ErrorContext(ctx, "Repository failed to set status", slog.Any("error", err))
		return fmt.Errorf("failed to set status for customer %d: %w", customerID, err)
	}

	s.publishUpdated(ctx, logger, cust)
	logger.InfoContext(ctx, "Successfully set customer status")
	return nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	logger := s.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to delete customer")

	if err := s.repo.Delete(ctx, customerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return ErrNotFound
		}
		logger.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	monitoring.RecordCustomerDeleted()
	if pubErr := s.pub.PublishCustomerDeleted(ctx, event.NewCustomerDeletedEvent(customerID)); pubErr != nil {
		logger.ErrorContext(ctx, "Customer deleted, but FAILED to publish deletion event", slog.Any("error", pubErr))
	}

	logger.InfoContext(ctx, "Successfully deleted customer")
	return nil
}

func (s *customerService) PurgeInactiveCustomers(ctx context.Context, cutoff time.Time) (int64, error) {
	logger := s.logger.With(slog.Time("cutoff", cutoff))
	logger.InfoContext(ctx, "Attempting to purge inactive customers")

	n, err := s.repo.DeleteInactiveBefore(ctx, cutoff)
	if err != nil {
		logger.ErrorContext(ctx, "Repository failed to purge inactive customers", slog.Any("error", err))
		return 0, fmt.Errorf("failed to purge inactive customers: %w", err)
	}

	monitoring.RecordCustomersPurged(n)
	logger.InfoContext(ctx, "Purged inactive customers", slog.Int64("count", n))
	return n, nil
}

func (s *customerService) publishUpdated(ctx context.Context, logger *slog.Logger, cust *Customer) {
	if cust == nil {
		logger.ErrorContext(ctx, "Attempted to publish update event for nil customer")
		return
	}
	if err := s.pub.PublishCustomerUpdated(ctx, event.NewCustomerUpdatedEvent(NewCustomerEventPayload(cust))); err != nil {
		logger.ErrorContext(ctx, "Failed to publish customer update event", slog.Any("error", err))
	}
}

func (s *customerService) validatePassword(password string) error {
	if utf8.RuneCountInString(password) < s.policy.MinLength || password == "" {
		return apperrors.NewValidationError("password", fmt.Sprintf("must be at least %d characters", max(s.policy.MinLength, 1)))
	}
	if len(password) > maxPasswordBytes {
		return apperrors.NewValidationError("password", fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
	}
	return nil
}

func (s *customerService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.policy.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: failed to hash password: %w", apperrors.ErrInternalServer, err)
	}
	return string(hash), nil
}
