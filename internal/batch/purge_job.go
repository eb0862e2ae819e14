package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// InactiveCustomerPurger removes customers that stayed inactive since before cutoff.
type InactiveCustomerPurger interface {
	PurgeInactiveCustomers(ctx context.Context, cutoff time.Time) (int64, error)
}

type PurgeInactiveJob struct {
	purger    InactiveCustomerPurger
	retention time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

func NewPurgeInactiveJob(purger InactiveCustomerPurger, retention time.Duration, logger *slog.Logger) *PurgeInactiveJob {
	if purger == nil || logger == nil {
		panic("PurgeInactiveJob dependencies cannot be nil")
	}
	if retention <= 0 {
		panic("PurgeInactiveJob retention must be positive")
	}
	return &PurgeInactiveJob{
		purger:    purger,
		retention: retention,
		now:       time.Now,
		logger:    logger.With("job", "PurgeInactiveCustomers"),
	}
}

func (j *PurgeInactiveJob) Run(ctx context.Context) error {
	startTime := j.now()
	cutoff := startTime.Add(-j.retention).UTC()
	j.logger.InfoContext(ctx, "Starting inactive customer purge job.", slog.Time("cutoff", cutoff))

	purged, err := j.purger.PurgeInactiveCustomers(ctx, cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "Inactive customer purge failed.", slog.Any("error", err))
		return fmt.Errorf("purge job failed: %w", err)
	}

	j.logger.InfoContext(ctx, "Inactive customer purge job finished.",
		slog.Int64("customers_purged", purged),
		slog.Duration("duration", time.Since(startTime)),
	)
	return nil
}
