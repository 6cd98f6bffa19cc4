package goal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type CreateGoalDTO struct {
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	TimeFrame         int               `json:"time_frame"`
	Category          Category          `json:"category"`
	Priority          Priority          `json:"priority"`
	Recurrence        Recurrence        `json:"recurrence"`
	ReminderFrequency ReminderFrequency `json:"reminder_frequency"`
}

// Validate enforces the constraints the store relies on callers to check.
func (dto CreateGoalDTO) Validate() error {
	switch {
	case strings.TrimSpace(dto.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	case strings.TrimSpace(dto.Description) == "":
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	case dto.TimeFrame < 1:
		return fmt.Errorf("%w: time frame must be at least 1 minute", ErrInvalidInput)
	case !dto.Category.IsValid():
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, dto.Category)
	case !dto.Priority.IsValid():
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, dto.Priority)
	case !dto.Recurrence.IsValid():
		return fmt.Errorf("%w: unknown recurrence %q", ErrInvalidInput, dto.Recurrence)
	case !dto.ReminderFrequency.IsValid():
		return fmt.Errorf("%w: unknown reminder frequency %q", ErrInvalidInput, dto.ReminderFrequency)
	}
	return nil
}

func (dto CreateGoalDTO) toInput() CreateGoalInput {
	return CreateGoalInput{
		Title:             dto.Title,
		Description:       dto.Description,
		TimeFrame:         dto.TimeFrame,
		Category:          dto.Category,
		Priority:          dto.Priority,
		Recurrence:        dto.Recurrence,
		ReminderFrequency: dto.ReminderFrequency,
	}
}

type UpdateStatusDTO struct {
	Status Status `json:"status"`
}

type AddSubTaskDTO struct {
	Title string `json:"title"`
}

type AddDependencyDTO struct {
	DependencyID uuid.UUID `json:"dependency_id"`
}

type StreakResponse struct {
	Streak int `json:"streak"`
}
