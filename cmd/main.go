package main

import (
	"context"
	"customer-service/internal/api"
	"customer-service/internal/batch"
	"customer-service/internal/config"
	"customer-service/internal/domain/customer"
	"customer-service/internal/event"
	"customer-service/internal/infrastructure/database/postgres"
	"customer-service/internal/infrastructure/logging"
	"customer-service/internal/infrastructure/migration"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const (
	defaultPurgeSchedule = "0 3 * * *"
	defaultPurgeTimeout  = 30 * time.Minute
	defaultRetention     = 90 * 24 * time.Hour
)

type jobRunner interface {
	Run(ctx context.Context) error
}

// @title Customer Service API
// @version 1.0
// @description Registers customers for existing persons and manages their passwords and status.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	dbPool := initializeDatabase(ctx, cfg, logger)
	defer closeDatabase(dbPool, logger)

	publisher, amqpConn := initializePublisher(cfg, logger)
	defer closeBroker(amqpConn, logger)

	customerService := initializeServices(dbPool, publisher, cfg, logger)

	retention := cfg.Batch.InactiveRetention
	if retention <= 0 {
		retention = defaultRetention
	}
	purgeJob := batch.NewPurgeInactiveJob(customerService, retention, logger)
	cronScheduler := startBatchJobs(cfg, logger, purgeJob)

	router := api.SetupRouter(ctx, customerService, dbPool, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	if !cfg.Database.AutoMigrate {
		logger.Info("Automatic migrations disabled, skipping.")
		return nil
	}

	m, err := migration.New(cfg.Database.URL, logger)
	if err != nil {
		return err
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("Failed to close migrator", "source_error", srcErr, "database_error", dbErr)
		}
	}()
	return migration.Up(m, logger)
}

func initializeDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

// initializePublisher falls back to logging events when the broker is disabled or unreachable.
func initializePublisher(cfg *config.Config, logger *slog.Logger) (event.EventPublisher, *amqp.Connection) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled, customer events will be logged only.")
		return event.NewLogPublisher(logger), nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.AMQPURL())
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, falling back to log publisher", "host", cfg.RabbitMQ.Host, "error", err)
		return event.NewLogPublisher(logger), nil
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to set up RabbitMQ publisher, falling back to log publisher", "error", err)
		_ = conn.Close()
		return event.NewLogPublisher(logger), nil
	}

	logger.Info("RabbitMQ publisher ready", "host", cfg.RabbitMQ.Host, "exchange", cfg.RabbitMQ.ExchangeName)
	return publisher, conn
}

func closeBroker(conn *amqp.Connection, logger *slog.Logger) {
	if conn == nil {
		return
	}
	logger.Info("Closing RabbitMQ connection...")
	if err := conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		logger.Warn("Failed to close RabbitMQ connection", "error", err)
	}
}

func initializeServices(dbPool *pgxpool.Pool, publisher event.EventPublisher, cfg *config.Config, logger *slog.Logger) customer.CustomerService {
	logger.Info("Initializing application components...")
	customerRepo := postgres.NewCustomerRepository(dbPool, logger)
	personRepo := postgres.NewPersonRepository(dbPool, logger)
	policy := customer.PasswordPolicy{
		MinLength:  cfg.Security.MinPasswordLength,
		BcryptCost: cfg.Security.BcryptCost,
	}
	return customer.NewCustomerService(customerRepo, personRepo, publisher, policy, logger)
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", srv.Addr)
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
			return
		}
		logger.Info("Server closed gracefully.")
		serverErrors <- nil
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.")
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	select {
	case err := <-serverErrors:
		if err != nil {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, purgeJob jobRunner) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.PurgeSchedule
	if scheduleSpec == "" {
		scheduleSpec = defaultPurgeSchedule
		logger.Warn("Inactive customer purge schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.PurgeTimeout
	if jobTimeout <= 0 {
		jobTimeout = defaultPurgeTimeout
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "PurgeInactiveCustomers")
		jobLogger.Info("Cron triggered: running inactive customer purge.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := purgeJob.Run(ctx); runErr != nil {
			jobLogger.Error("Inactive customer purge finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule inactive customer purge", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled inactive customer purge", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}
