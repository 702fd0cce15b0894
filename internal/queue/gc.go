package queue

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// purgeTimeout bounds one pass over the DLQ
const purgeTimeout = 2 * time.Minute

// GarbageCollector drops dead-lettered conversion jobs once they are older
// than retention. Their results have expired from redis by then, so nobody
// can poll for them.
type GarbageCollector struct {
	dlqPurger DLQPurger
	interval  time.Duration
	retention time.Duration
	logger    *zap.Logger
}

// NewGarbageCollector returns a collector purging through purger every interval
func NewGarbageCollector(purger DLQPurger, interval, retention time.Duration, logger *zap.Logger) *GarbageCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GarbageCollector{
		dlqPurger: purger,
		interval:  interval,
		retention: retention,
		logger:    logger,
	}
}

// Start purges once, then every interval, until ctx is cancelled. A
// non-positive interval disables collection.
func (gc *GarbageCollector) Start(ctx context.Context) error {
	if gc.interval <= 0 || gc.dlqPurger == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	if err := gc.collect(ctx); err != nil {
		gc.logger.Error("dlq_gc_failed", zap.Error(err))
	}
	ticker := time.NewTicker(gc.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := gc.collect(ctx); err != nil {
				gc.logger.Error("dlq_gc_failed", zap.Error(err))
			}
		}
	}
}

func (gc *GarbageCollector) collect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, purgeTimeout)
	defer cancel()
	n, err := gc.dlqPurger.PurgeOlderThan(ctx, gc.retention)
	if err != nil {
		return fmt.Errorf("purge dead-lettered jobs: %w", err)
	}
	if n > 0 {
		gc.logger.Info("dlq_jobs_purged",
			zap.Int("count", n),
			zap.Duration("retention", gc.retention),
		)
	}
	return nil
}
