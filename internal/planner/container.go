package planner

import (
	"context"

	"github.com/saulo-duarte/accountability-buddy/internal/config"
)

type PlannerContainer struct {
	Handler *Handler
	Service Service
}

// NewPlannerContainer wires the Gemini provider when an API key is set.
// Without one the routes still exist and answer 503.
func NewPlannerContainer(ctx context.Context, settings config.Settings, goals Goals) *PlannerContainer {
	var provider Provider
	if settings.GeminiAPIKey != "" {
		p, err := NewGeminiProvider(ctx, settings.GeminiAPIKey, settings.GeminiModel)
		if err != nil {
			config.WithContext(ctx).WithError(err).Warn("Planner disabled")
		} else {
			provider = p
		}
	}

	service := NewService(provider, goals)
	return &PlannerContainer{
		Handler: NewHandler(service),
		Service: service,
	}
}
