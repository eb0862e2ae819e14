package migration

import (
	"customer-service/migrations"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const driverScheme = "pgx5://"

// Migrator is the subset of *migrate.Migrate used by the commands.
type Migrator interface {
	Up() error
	Steps(n int) error
	Version() (version uint, dirty bool, err error)
	Force(version int) error
	Close() (source error, database error)
}

// ToDriverURL rewrites libpq style URLs to the scheme registered by the pgx/v5 migrate driver.
func ToDriverURL(databaseURL string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(databaseURL, prefix); ok {
			return driverScheme + rest
		}
	}
	return databaseURL
}

func New(databaseURL string, logger *slog.Logger) (*migrate.Migrate, error) {
	if databaseURL == "" {
		return nil, errors.New("database URL is empty in configuration")
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, ToDriverURL(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to initialise migrator: %w", err)
	}
	m.Log = &slogAdapter{logger: logger.With("component", "migrate")}
	return m, nil
}

// Up applies all pending migrations. Having nothing to apply is not an error.
func Up(m Migrator, logger *slog.Logger) error {
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Info("Database migrations applied", "version", version, "dirty", dirty)
	return nil
}

type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Printf(format string, v ...any) {
	a.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (a *slogAdapter) Verbose() bool {
	return false
}
