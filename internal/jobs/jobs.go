// Package jobs runs periodic maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/gorags/sewa-lapangan/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ExpiredCleaner removes state whose window has passed.
type ExpiredCleaner interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron    *cron.Cron
	cleaner ExpiredCleaner
}

// New registers the rate limit cleanup under schedule. Any schedule accepted by
// cron.ParseStandard works, including descriptors such as "@every 30m".
func New(schedule string, cleaner ExpiredCleaner) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		cleaner: cleaner,
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.CleanupRateLimits(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job or ctx, whichever
// ends first.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// CleanupRateLimits is the job body; it never fails the scheduler.
func (s *Scheduler) CleanupRateLimits(ctx context.Context) int64 {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := s.cleaner.CleanupExpired(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Rate limit cleanup failed", "error", err)
		return 0
	}
	if n > 0 {
		logger.InfoContext(ctx, "Removed expired rate limit rows", "rows", n)
	}
	return n
}
