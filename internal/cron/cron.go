package cron

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Pruner deletes raw analytics events older than the retention window.
type Pruner interface {
	PruneEvents(ctx context.Context, retentionDays int) (int64, error)
}

// StartRetentionTask prunes once on startup and then every interval until ctx
// is cancelled. A non-positive retention disables the task. The returned
// channel closes when the loop exits.
func StartRetentionTask(ctx context.Context, p Pruner, retentionDays int, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	if retentionDays <= 0 {
		logger.Info("analytics retention disabled")
		close(done)
		return done
	}

	go func() {
		defer close(done)
		logger.Info("starting analytics retention task",
			zap.Int("retention_days", retentionDays),
			zap.Duration("interval", interval))

		prune(ctx, p, retentionDays, logger)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				prune(ctx, p, retentionDays, logger)
			}
		}
	}()
	return done
}

func prune(ctx context.Context, p Pruner, retentionDays int, logger *zap.Logger) {
	n, err := p.PruneEvents(ctx, retentionDays)
	if err != nil {
		logger.Error("failed to prune analytics events", zap.Error(err))
		return
	}
	logger.Info("pruned analytics events", zap.Int64("deleted", n))
}
