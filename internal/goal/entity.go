package goal

import (
	"time"

	"github.com/google/uuid"
)

type Goal struct {
	ID                uuid.UUID         `json:"id"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	TimeFrame         int               `json:"time_frame"`
	Category          Category          `json:"category"`
	Priority          Priority          `json:"priority"`
	Recurrence        Recurrence        `json:"recurrence"`
	Status            Status            `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
	CompletedAt       *time.Time        `json:"completed_at,omitempty"`
	SubTasks          []SubTask         `json:"sub_tasks"`
	Dependencies      []uuid.UUID       `json:"dependencies"`
	ReminderFrequency ReminderFrequency `json:"reminder_frequency"`
	LastReminderSent  *time.Time        `json:"last_reminder_sent,omitempty"`
}

type SubTask struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
}

// CreateGoalInput carries the caller-supplied fields of a new goal. The store
// trusts it; validation happens at the input boundary.
type CreateGoalInput struct {
	Title             string
	Description       string
	TimeFrame         int
	Category          Category
	Priority          Priority
	Recurrence        Recurrence
	ReminderFrequency ReminderFrequency
}

// Snapshot is the persisted form of a store.
type Snapshot struct {
	Goals  []Goal `json:"goals"`
	Streak int    `json:"streak"`
}

func (g *Goal) clone() Goal {
	c := *g
	c.SubTasks = append([]SubTask{}, g.SubTasks...)
	c.Dependencies = append([]uuid.UUID{}, g.Dependencies...)
	if g.CompletedAt != nil {
		t := *g.CompletedAt
		c.CompletedAt = &t
	}
	if g.LastReminderSent != nil {
		t := *g.LastReminderSent
		c.LastReminderSent = &t
	}
	return c
}

func (g *Goal) hasDependency(id uuid.UUID) bool {
	for _, dep := range g.Dependencies {
		if dep == id {
			return true
		}
	}
	return false
}
