package goal

import "time"

type Category string

const (
	CategoryFitness   Category = "fitness"
	CategoryWork      Category = "work"
	CategoryPersonal  Category = "personal"
	CategoryEducation Category = "education"
	CategoryOther     Category = "other"
)

var AllCategories = []Category{
	CategoryFitness,
	CategoryWork,
	CategoryPersonal,
	CategoryEducation,
	CategoryOther,
}

func (c Category) IsValid() bool {
	for _, v := range AllCategories {
		if c == v {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var AllPriorities = []Priority{
	PriorityHigh,
	PriorityMedium,
	PriorityLow,
}

func (p Priority) IsValid() bool {
	for _, v := range AllPriorities {
		if p == v {
			return true
		}
	}
	return false
}

type Recurrence string

const (
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceNone    Recurrence = "none"
)

var AllRecurrences = []Recurrence{
	RecurrenceDaily,
	RecurrenceWeekly,
	RecurrenceMonthly,
	RecurrenceNone,
}

func (r Recurrence) IsValid() bool {
	for _, v := range AllRecurrences {
		if r == v {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusNotStarted    Status = "not_started"
	StatusInProgress    Status = "in_progress"
	StatusPartiallyDone Status = "partially_done"
	StatusCompleted     Status = "completed"
)

var AllStatuses = []Status{
	StatusNotStarted,
	StatusInProgress,
	StatusPartiallyDone,
	StatusCompleted,
}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type ReminderFrequency string

const (
	ReminderHourly ReminderFrequency = "hourly"
	ReminderDaily  ReminderFrequency = "daily"
	ReminderWeekly ReminderFrequency = "weekly"
)

var AllReminderFrequencies = []ReminderFrequency{
	ReminderHourly,
	ReminderDaily,
	ReminderWeekly,
}

func (f ReminderFrequency) IsValid() bool {
	for _, v := range AllReminderFrequencies {
		if f == v {
			return true
		}
	}
	return false
}

// Interval is the minimum time between two reminders. Fixed durations, no
// calendar or DST adjustment.
func (f ReminderFrequency) Interval() time.Duration {
	switch f {
	case ReminderHourly:
		return time.Hour
	case ReminderDaily:
		return 24 * time.Hour
	case ReminderWeekly:
		return 7 * 24 * time.Hour
	}
	return 0
}
