package reminder

import (
	"context"
	"errors"

	"github.com/saulo-duarte/accountability-buddy/internal/config"
	"github.com/saulo-duarte/accountability-buddy/internal/goal"
	"github.com/sirupsen/logrus"
)

var ErrNoNotifierSucceeded = errors.New("no notifier delivered the reminder")

type Notifier interface {
	Notify(ctx context.Context, g goal.Goal) error
}

type NotifierFunc func(ctx context.Context, g goal.Goal) error

func (f NotifierFunc) Notify(ctx context.Context, g goal.Goal) error {
	return f(ctx, g)
}

// LogNotifier writes the reminder to the application log.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, g goal.Goal) error {
	config.WithContext(ctx).WithFields(logrus.Fields{
		"goal_id":            g.ID,
		"title":              g.Title,
		"priority":           g.Priority,
		"reminder_frequency": g.ReminderFrequency,
	}).Info("Goal reminder")
	return nil
}

// MultiNotifier fans a reminder out to every notifier. It fails only when
// none of them delivered, so one broken channel does not block the others.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, g goal.Goal) error {
	if len(m) == 0 {
		return nil
	}

	log := config.WithContext(ctx)
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, g); err != nil {
			log.WithError(err).WithField("goal_id", g.ID).Warn("Reminder channel failed")
			errs = append(errs, err)
		}
	}
	if len(errs) == len(m) {
		return errors.Join(append([]error{ErrNoNotifierSucceeded}, errs...)...)
	}
	return nil
}
