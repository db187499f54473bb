package service

import (
	"context"
	"fmt"
	"time"

	"invoice_idor/internal/logger"

	"github.com/robfig/cron/v3"
)

const defaultRetention = 24 * time.Hour

type pruner interface {
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// RetentionService drops access events older than the retention period.
type RetentionService struct {
	events    pruner
	retention time.Duration
	now       func() time.Time
}

func NewRetentionService(events pruner, retention time.Duration) *RetentionService {
	if retention <= 0 {
		retention = defaultRetention
	}
	return &RetentionService{events: events, retention: retention, now: time.Now}
}

// PruneOnce removes everything older than now minus the retention period.
func (s *RetentionService) PruneOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().UTC().Add(-s.retention)
	n, err := s.events.Prune(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune access events before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return n, nil
}

// Run schedules PruneOnce with a standard cron spec (descriptors such as
// "@every 1m" included) and blocks until ctx is cancelled.
func (s *RetentionService) Run(ctx context.Context, schedule string, log *logger.Logger) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		n, err := s.PruneOnce(ctx)
		if log == nil {
			return
		}
		if err != nil {
			log.Errorw("access_log_prune_failed", "err", err)
			return
		}
		if n > 0 {
			log.Infow("access_log_pruned", "removed", n, "retention", s.retention.String())
		}
	})
	if err != nil {
		return fmt.Errorf("parse prune schedule %q: %w", schedule, err)
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
