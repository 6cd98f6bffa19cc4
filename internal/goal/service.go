package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/accountability-buddy/internal/config"
	"github.com/saulo-duarte/accountability-buddy/internal/storage"
	"github.com/sirupsen/logrus"
)

const maxSaveAttempts = 3

type Service interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, dto CreateGoalDTO) (*Goal, error)
	List(ctx context.Context) []Goal
	Get(ctx context.Context, id uuid.UUID) (*Goal, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Goal, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddSubTask(ctx context.Context, goalID uuid.UUID, title string) (*SubTask, error)
	ToggleSubTask(ctx context.Context, goalID, subTaskID uuid.UUID) error
	AddDependency(ctx context.Context, goalID, dependencyID uuid.UUID) error
	RemoveDependency(ctx context.Context, goalID, dependencyID uuid.UUID) error
	RecordReminderSent(ctx context.Context, id uuid.UUID) error
	ByCategory(ctx context.Context, category Category) []Goal
	ByPriority(ctx context.Context, priority Priority) []Goal
	DueForReminder(ctx context.Context, now time.Time) ([]Goal, error)
	DueReminders(ctx context.Context) ([]Goal, error)
	Streak(ctx context.Context) int
	Stats(ctx context.Context) DashboardStats
}

// service keeps the store in step with the durable slot. Other processes
// may write the same slot, so every call first pulls any newer snapshot and
// every save is conditional on the version it started from.
type service struct {
	mu      sync.Mutex
	version int64
	store   *Store
	repo    Repository
	now     Clock
}

func NewService(store *Store, repo Repository) Service {
	return &service{store: store, repo: repo, now: store.now}
}

func (s *service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.syncLocked(ctx, true); err != nil {
		return err
	}

	config.WithContext(ctx).WithFields(logrus.Fields{
		"goals":   len(s.store.List()),
		"streak":  s.store.CurrentStreak(),
		"version": s.version,
	}).Info("Goals restored")
	return nil
}

// syncLocked restores the stored snapshot when it is newer than the one in
// memory, or always when force is set.
func (s *service) syncLocked(ctx context.Context, force bool) error {
	log := config.WithContext(ctx)

	snap, version, err := s.repo.Load(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load goals")
		return err
	}
	if !force && version == s.version {
		return nil
	}
	if err := s.store.Restore(snap); err != nil {
		log.WithError(err).Error("Failed to restore goals")
		return err
	}
	s.version = version
	return nil
}

// refresh pulls newer state before a read. A failed load is logged and the
// read is served from memory.
func (s *service) refresh(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.syncLocked(ctx, false); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Serving goals from memory")
	}
}

// mutate applies a change on top of the latest stored snapshot and saves
// it. When the save fails the store is rolled back, so memory never holds a
// change the slot does not. A save that lost a race with another writer is
// retried against the fresh snapshot.
func (s *service) mutate(ctx context.Context, log logrus.FieldLogger, apply func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 1; ; attempt++ {
		if err := s.syncLocked(ctx, false); err != nil {
			return err
		}

		before := s.store.Snapshot()
		if err := apply(); err != nil {
			return err
		}

		version, err := s.repo.Save(ctx, s.store.Snapshot(), s.version)
		if err == nil {
			s.version = version
			return nil
		}

		if rerr := s.store.Restore(before); rerr != nil {
			log.WithError(rerr).Error("Failed to roll back goals")
		}
		if errors.Is(err, storage.ErrVersionConflict) && attempt < maxSaveAttempts {
			log.WithField("attempt", attempt).Warn("Goals changed concurrently, retrying")
			continue
		}
		log.WithError(err).Error("Failed to persist goals")
		return err
	}
}

func (s *service) notFound(log logrus.FieldLogger, err error, fields logrus.Fields, action string) error {
	if errors.Is(err, ErrGoalNotFound) || errors.Is(err, ErrSubTaskNotFound) {
		log.WithFields(fields).Warnf("Attempt to %s on unknown goal or sub-task", action)
	}
	return err
}

func (s *service) Create(ctx context.Context, dto CreateGoalDTO) (*Goal, error) {
	log := config.WithContext(ctx)

	if err := dto.Validate(); err != nil {
		log.WithError(err).Warn("Rejected goal creation")
		return nil, err
	}

	var g Goal
	err := s.mutate(ctx, log, func() error {
		g = s.store.Create(dto.toInput())
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithField("goal_id", g.ID).Info("Goal created successfully")
	return &g, nil
}

func (s *service) List(ctx context.Context) []Goal {
	s.refresh(ctx)
	return s.store.List()
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Goal, error) {
	s.refresh(ctx)
	g, err := s.store.Get(id)
	if err != nil {
		return nil, s.notFound(config.WithContext(ctx), err, logrus.Fields{"goal_id": id}, "read")
	}
	return &g, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Goal, error) {
	log := config.WithContext(ctx)

	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	var (
		g      Goal
		streak int
	)
	err := s.mutate(ctx, log, func() error {
		if err := s.store.UpdateStatus(id, status); err != nil {
			return err
		}
		streak = s.store.CurrentStreak()
		var err error
		g, err = s.store.Get(id)
		return err
	})
	if err != nil {
		return nil, s.notFound(log, err, logrus.Fields{"goal_id": id}, "update status")
	}

	log.WithFields(logrus.Fields{
		"goal_id": id,
		"status":  status,
		"streak":  streak,
	}).Info("Goal status updated")
	return &g, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	log := config.WithContext(ctx)

	err := s.mutate(ctx, log, func() error {
		return s.store.Delete(id)
	})
	if err != nil {
		return s.notFound(log, err, logrus.Fields{"goal_id": id}, "delete")
	}

	log.WithField("goal_id", id).Info("Goal deleted successfully")
	return nil
}

func (s *service) AddSubTask(ctx context.Context, goalID uuid.UUID, title string) (*SubTask, error) {
	log := config.WithContext(ctx)

	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: sub-task title is required", ErrInvalidInput)
	}

	var st SubTask
	err := s.mutate(ctx, log, func() error {
		var err error
		st, err = s.store.AddSubTask(goalID, title)
		return err
	})
	if err != nil {
		return nil, s.notFound(log, err, logrus.Fields{"goal_id": goalID}, "add sub-task")
	}

	log.WithFields(logrus.Fields{"goal_id": goalID, "sub_task_id": st.ID}).Info("Sub-task added")
	return &st, nil
}

func (s *service) ToggleSubTask(ctx context.Context, goalID, subTaskID uuid.UUID) error {
	log := config.WithContext(ctx)
	fields := logrus.Fields{"goal_id": goalID, "sub_task_id": subTaskID}

	err := s.mutate(ctx, log, func() error {
		return s.store.ToggleSubTask(goalID, subTaskID)
	})
	return s.notFound(log, err, fields, "toggle sub-task")
}

func (s *service) AddDependency(ctx context.Context, goalID, dependencyID uuid.UUID) error {
	log := config.WithContext(ctx)
	fields := logrus.Fields{"goal_id": goalID, "dependency_id": dependencyID}

	err := s.mutate(ctx, log, func() error {
		return s.store.AddDependency(goalID, dependencyID)
	})
	return s.notFound(log, err, fields, "add dependency")
}

func (s *service) RemoveDependency(ctx context.Context, goalID, dependencyID uuid.UUID) error {
	log := config.WithContext(ctx)
	fields := logrus.Fields{"goal_id": goalID, "dependency_id": dependencyID}

	err := s.mutate(ctx, log, func() error {
		return s.store.RemoveDependency(goalID, dependencyID)
	})
	return s.notFound(log, err, fields, "remove dependency")
}

func (s *service) RecordReminderSent(ctx context.Context, id uuid.UUID) error {
	log := config.WithContext(ctx)

	err := s.mutate(ctx, log, func() error {
		return s.store.RecordReminderSent(id)
	})
	return s.notFound(log, err, logrus.Fields{"goal_id": id}, "record reminder")
}

func (s *service) ByCategory(ctx context.Context, category Category) []Goal {
	s.refresh(ctx)
	return s.store.ByCategory(category)
}

func (s *service) ByPriority(ctx context.Context, priority Priority) []Goal {
	s.refresh(ctx)
	return s.store.ByPriority(priority)
}

func (s *service) DueForReminder(ctx context.Context, now time.Time) ([]Goal, error) {
	s.mu.Lock()
	err := s.syncLocked(ctx, false)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.store.DueForReminder(now), nil
}

func (s *service) DueReminders(ctx context.Context) ([]Goal, error) {
	return s.DueForReminder(ctx, s.now())
}

func (s *service) Streak(ctx context.Context) int {
	s.refresh(ctx)
	return s.store.Streak(s.now())
}

func (s *service) Stats(ctx context.Context) DashboardStats {
	s.refresh(ctx)
	return s.store.Stats(s.now())
}
