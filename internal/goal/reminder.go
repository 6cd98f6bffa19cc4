package goal

import "time"

// DueForReminder returns, in collection order, every goal that has never had
// a reminder or whose last reminder is at least one frequency interval old.
func (s *Store) DueForReminder(now time.Time) []Goal {
	return s.filter(func(g *Goal) bool {
		return reminderDue(g, now)
	})
}

func reminderDue(g *Goal, now time.Time) bool {
	if g.LastReminderSent == nil {
		return true
	}
	return now.Sub(*g.LastReminderSent) >= g.ReminderFrequency.Interval()
}
