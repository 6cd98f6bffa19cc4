package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/accountability-buddy/internal/config"
	"github.com/saulo-duarte/accountability-buddy/internal/goal"
	"github.com/sirupsen/logrus"
)

// Source is the part of the goal service a sweep needs.
type Source interface {
	DueForReminder(ctx context.Context, now time.Time) ([]goal.Goal, error)
	RecordReminderSent(ctx context.Context, id uuid.UUID) error
}

type Dispatcher struct {
	source   Source
	notifier Notifier
	now      func() time.Time
}

func NewDispatcher(source Source, notifier Notifier, now func() time.Time) *Dispatcher {
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{source: source, notifier: notifier, now: now}
}

// Sweep notifies every goal that is due and records the reminder for the ones
// that were delivered. Goals whose notification failed stay due for the next
// sweep. It returns how many reminders were recorded.
func (d *Dispatcher) Sweep(ctx context.Context) (int, error) {
	log := config.WithContext(ctx)

	due, err := d.source.DueForReminder(ctx, d.now())
	if err != nil {
		log.WithError(err).Error("Failed to list due reminders")
		return 0, fmt.Errorf("list due reminders: %w", err)
	}
	if len(due) == 0 {
		return 0, nil
	}

	sent := 0
	var errs []error
	for _, g := range due {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		fields := logrus.Fields{"goal_id": g.ID}
		if err := d.notifier.Notify(ctx, g); err != nil {
			log.WithError(err).WithFields(fields).Warn("Reminder not delivered, will retry")
			errs = append(errs, fmt.Errorf("notify %s: %w", g.ID, err))
			continue
		}
		if err := d.source.RecordReminderSent(ctx, g.ID); err != nil {
			log.WithError(err).WithFields(fields).Error("Failed to record reminder")
			errs = append(errs, fmt.Errorf("record %s: %w", g.ID, err))
			continue
		}
		sent++
	}

	log.WithFields(logrus.Fields{
		"due":    len(due),
		"sent":   sent,
		"failed": len(errs),
	}).Info("Reminder sweep finished")
	return sent, errors.Join(errs...)
}
