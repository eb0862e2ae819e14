package main

import (
	"customer-service/internal/config"
	"customer-service/internal/infrastructure/logging"
	"customer-service/internal/infrastructure/migration"
	"log/slog"
	"os"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg.Logger)

	open := func() (migration.Migrator, error) {
		return migration.New(cfg.Database.URL, logger)
	}

	if err := migration.MigrateCommand(open, logger).Execute(); err != nil {
		logger.Error("Migration command failed", "error", err)
		os.Exit(1)
	}
}
