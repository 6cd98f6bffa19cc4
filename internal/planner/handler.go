package planner

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/accountability-buddy/internal/config"
	"github.com/saulo-duarte/accountability-buddy/internal/goal"
)

type SuggestRequest struct {
	Count int `json:"count"`
}

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// Register mounts the planner routes on the goal router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/{id}/suggestions", h.Suggest)
}

func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.Suggest(r.Context(), id, req.Count)
	switch {
	case err == nil:
		config.JSON(w, http.StatusCreated, created)
	case errors.Is(err, goal.ErrGoalNotFound):
		http.Error(w, "goal not found", http.StatusNotFound)
	case errors.Is(err, ErrProviderUnavailable):
		http.Error(w, "suggestions are not available", http.StatusServiceUnavailable)
	default:
		log.WithError(err).Error("Failed to suggest sub-tasks")
		http.Error(w, "failed to suggest sub-tasks", http.StatusInternalServerError)
	}
}
