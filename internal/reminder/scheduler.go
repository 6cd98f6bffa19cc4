package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/saulo-duarte/accountability-buddy/internal/config"
)

const DefaultSchedule = "@every 1m"

// Scheduler runs a sweep on a cron schedule. A sweep still running when the
// next tick fires makes that tick a no-op.
type Scheduler struct {
	cron       *cron.Cron
	dispatcher *Dispatcher
}

func NewScheduler(dispatcher *Dispatcher, schedule string, loc *time.Location) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if loc == nil {
		loc = time.Local
	}

	logger := cron.PrintfLogger(config.Logger)
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	s := &Scheduler{cron: c, dispatcher: dispatcher}
	if _, err := c.AddFunc(schedule, s.tick); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) tick() {
	ctx := context.Background()
	if _, err := s.dispatcher.Sweep(ctx); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Reminder sweep completed with errors")
	}
}

func (s *Scheduler) Start() {
	config.Logger.Info("Reminder scheduler started")
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep, or for ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		config.Logger.Info("Reminder scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
