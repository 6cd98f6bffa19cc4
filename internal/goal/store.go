package goal

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrSubTaskNotFound = errors.New("sub-task not found")
	ErrDuplicateGoalID = errors.New("duplicate goal id")
)

type Clock func() time.Time

type StoreOption func(*Store)

func WithClock(clock Clock) StoreOption {
	return func(s *Store) {
		s.now = clock
	}
}

// WithLocation sets the zone whose calendar days the streak and stats use.
func WithLocation(loc *time.Location) StoreOption {
	return func(s *Store) {
		s.loc = loc
	}
}

// Store owns the goal collection. Mutations are exclusive; queries share a
// read lock and hand out copies, so no caller ever observes a half-applied
// mutation.
type Store struct {
	mu     sync.RWMutex
	goals  map[uuid.UUID]*Goal
	order  []uuid.UUID
	streak int
	now    Clock
	loc    *time.Location
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		goals: make(map[uuid.UUID]*Goal),
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore replaces the collection with snap, preserving its order.
func (s *Store) Restore(snap Snapshot) error {
	goals := make(map[uuid.UUID]*Goal, len(snap.Goals))
	order := make([]uuid.UUID, 0, len(snap.Goals))
	for i := range snap.Goals {
		g := snap.Goals[i].clone()
		if _, exists := goals[g.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateGoalID, g.ID)
		}
		goals[g.ID] = &g
		order = append(order, g.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = goals
	s.order = order
	s.streak = snap.Streak
	return nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Goals:  s.listLocked(),
		Streak: s.streak,
	}
}

func (s *Store) Create(in CreateGoalInput) Goal {
	g := &Goal{
		ID:                uuid.New(),
		Title:             in.Title,
		Description:       in.Description,
		TimeFrame:         in.TimeFrame,
		Category:          in.Category,
		Priority:          in.Priority,
		Recurrence:        in.Recurrence,
		Status:            StatusNotStarted,
		CreatedAt:         s.now(),
		SubTasks:          []SubTask{},
		Dependencies:      []uuid.UUID{},
		ReminderFrequency: in.ReminderFrequency,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals[g.ID] = g
	s.order = append(s.order, g.ID)
	return g.clone()
}

func (s *Store) Get(id uuid.UUID) (Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[id]
	if !ok {
		return Goal{}, ErrGoalNotFound
	}
	return g.clone(), nil
}

func (s *Store) List() []Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked()
}

func (s *Store) listLocked() []Goal {
	out := make([]Goal, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.goals[id].clone())
	}
	return out
}

// UpdateStatus sets the status and recomputes the streak. Completing a goal
// stamps CompletedAt; moving away from completed leaves it in place.
func (s *Store) UpdateStatus(id uuid.UUID, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[id]
	if !ok {
		return ErrGoalNotFound
	}

	now := s.now()
	g.Status = status
	if status == StatusCompleted {
		g.CompletedAt = &now
	}
	s.recalculateStreakLocked(now)
	return nil
}

// Delete removes the goal. Other goals keep any dependency on its id.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.goals[id]; !ok {
		return ErrGoalNotFound
	}
	delete(s.goals, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) AddSubTask(goalID uuid.UUID, title string) (SubTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[goalID]
	if !ok {
		return SubTask{}, ErrGoalNotFound
	}
	st := SubTask{ID: uuid.New(), Title: title}
	g.SubTasks = append(g.SubTasks, st)
	return st, nil
}

func (s *Store) ToggleSubTask(goalID, subTaskID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[goalID]
	if !ok {
		return ErrGoalNotFound
	}
	for i := range g.SubTasks {
		if g.SubTasks[i].ID == subTaskID {
			g.SubTasks[i].Completed = !g.SubTasks[i].Completed
			return nil
		}
	}
	return ErrSubTaskNotFound
}

// AddDependency records dependencyID on the goal. The target is not checked
// for existence, self-reference or cycles.
func (s *Store) AddDependency(goalID, dependencyID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[goalID]
	if !ok {
		return ErrGoalNotFound
	}
	if !g.hasDependency(dependencyID) {
		g.Dependencies = append(g.Dependencies, dependencyID)
	}
	return nil
}

func (s *Store) RemoveDependency(goalID, dependencyID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[goalID]
	if !ok {
		return ErrGoalNotFound
	}
	deps := g.Dependencies[:0]
	for _, dep := range g.Dependencies {
		if dep != dependencyID {
			deps = append(deps, dep)
		}
	}
	g.Dependencies = deps
	return nil
}

func (s *Store) RecordReminderSent(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[id]
	if !ok {
		return ErrGoalNotFound
	}
	now := s.now()
	g.LastReminderSent = &now
	return nil
}

func (s *Store) ByCategory(category Category) []Goal {
	return s.filter(func(g *Goal) bool { return g.Category == category })
}

func (s *Store) ByPriority(priority Priority) []Goal {
	return s.filter(func(g *Goal) bool { return g.Priority == priority })
}

func (s *Store) filter(match func(*Goal) bool) []Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Goal{}
	for _, id := range s.order {
		if g := s.goals[id]; match(g) {
			out = append(out, g.clone())
		}
	}
	return out
}
