package planner

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/accountability-buddy/internal/config"
	"github.com/saulo-duarte/accountability-buddy/internal/goal"
	"github.com/sirupsen/logrus"
)

var ErrProviderUnavailable = errors.New("planner provider not configured")

// Goals is the part of the goal service the planner writes through.
type Goals interface {
	Get(ctx context.Context, id uuid.UUID) (*goal.Goal, error)
	AddSubTask(ctx context.Context, goalID uuid.UUID, title string) (*goal.SubTask, error)
}

type Service interface {
	Suggest(ctx context.Context, goalID uuid.UUID, count int) ([]goal.SubTask, error)
}

type service struct {
	provider Provider
	goals    Goals
}

func NewService(provider Provider, goals Goals) Service {
	return &service{provider: provider, goals: goals}
}

// Suggest asks the provider for sub-tasks and appends them to the goal.
func (s *service) Suggest(ctx context.Context, goalID uuid.UUID, count int) ([]goal.SubTask, error) {
	log := config.WithContext(ctx).WithField("goal_id", goalID)

	if s.provider == nil {
		return nil, ErrProviderUnavailable
	}

	g, err := s.goals.Get(ctx, goalID)
	if err != nil {
		return nil, err
	}

	count = clampCount(count)
	titles, err := s.provider.SendPrompt(ctx, systemPrompt, BuildUserPrompt(*g, count))
	if err != nil {
		log.WithError(err).Error("Failed to get suggestions")
		return nil, err
	}

	created := []goal.SubTask{}
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		if len(created) == count {
			break
		}
		st, err := s.goals.AddSubTask(ctx, goalID, title)
		if err != nil {
			log.WithError(err).Error("Failed to add suggested sub-task")
			return created, err
		}
		created = append(created, *st)
	}

	log.WithFields(logrus.Fields{
		"requested": count,
		"created":   len(created),
	}).Info("Sub-tasks suggested")
	return created, nil
}
