package goal

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Set(t time.Time) { c.now = t }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T, start time.Time) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: start}
	return NewStore(WithClock(clock.Now), WithLocation(time.UTC)), clock
}

func sampleInput(title string) CreateGoalInput {
	return CreateGoalInput{
		Title:             title,
		Description:       "description of " + title,
		TimeFrame:         30,
		Category:          CategoryFitness,
		Priority:          PriorityHigh,
		Recurrence:        RecurrenceDaily,
		ReminderFrequency: ReminderHourly,
	}
}
