package migration

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
)

type OpenFunc func() (Migrator, error)

// MigrateCommand builds the migrate CLI. The migrator is opened only after arguments are validated.
func MigrateCommand(open OpenFunc, logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "manage the customers database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		upCommand(open, logger),
		downCommand(open, logger),
		versionCommand(open),
		forceCommand(open, logger),
	)
	return rootCmd
}

func upCommand(open OpenFunc, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(open, func(m Migrator) error {
				return Up(m, logger)
			})
		},
	}
}

func downCommand(open OpenFunc, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "down [n]",
		Short: "roll back n migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("invalid step count %q: must be a positive integer", args[0])
				}
				steps = n
			}

			return withMigrator(open, func(m Migrator) error {
				if err := m.Steps(-steps); err != nil {
					return fmt.Errorf("failed to roll back %d migration(s): %w", steps, err)
				}
				logger.Info("Rolled back migrations", "steps", steps)
				return nil
			})
		},
	}
}

func versionCommand(open OpenFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(open, func(m Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return fmt.Errorf("failed to read schema version: %w", err)
				}
				cmd.Printf("version=%d dirty=%t\n", version, dirty)
				return nil
			})
		},
	}
}

func forceCommand(open OpenFunc, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "force <version>",
		Short: "set the schema version without running migrations, clearing the dirty flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}

			return withMigrator(open, func(m Migrator) error {
				if err := m.Force(version); err != nil {
					return fmt.Errorf("failed to force version %d: %w", version, err)
				}
				logger.Info("Forced schema version", "version", version)
				return nil
			})
		},
	}
}

func withMigrator(open OpenFunc, fn func(m Migrator) error) error {
	m, err := open()
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}
