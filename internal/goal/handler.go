package goal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/accountability-buddy/internal/config"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error, action string) {
	switch {
	case errors.Is(err, ErrGoalNotFound):
		http.Error(w, "goal not found", http.StatusNotFound)
	case errors.Is(err, ErrSubTaskNotFound):
		http.Error(w, "sub-task not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.WithError(err).Errorf("Failed to %s", action)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	g, err := h.service.Create(r.Context(), dto)
	if err != nil {
		writeError(w, log, err, "create goal")
		return
	}

	config.JSON(w, http.StatusCreated, g)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	if c := query.Get("category"); c != "" {
		category := Category(c)
		if !category.IsValid() {
			http.Error(w, "invalid category", http.StatusBadRequest)
			return
		}
		config.JSON(w, http.StatusOK, h.service.ByCategory(ctx, category))
		return
	}

	if p := query.Get("priority"); p != "" {
		priority := Priority(p)
		if !priority.IsValid() {
			http.Error(w, "invalid priority", http.StatusBadRequest)
			return
		}
		config.JSON(w, http.StatusOK, h.service.ByPriority(ctx, priority))
		return
	}

	config.JSON(w, http.StatusOK, h.service.List(ctx))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := parseIDParam(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	g, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, log, err, "get goal")
		return
	}

	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := parseIDParam(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, log, err, "delete goal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := parseIDParam(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	g, err := h.service.UpdateStatus(r.Context(), id, dto.Status)
	if err != nil {
		writeError(w, log, err, "update goal status")
		return
	}

	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) AddSubTask(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := parseIDParam(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var dto AddSubTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	st, err := h.service.AddSubTask(r.Context(), id, dto.Title)
	if err != nil {
		writeError(w, log, err, "add sub-task")
		return
	}

	config.JSON(w, http.StatusCreated, st)
}

func (h *Handler) ToggleSubTask(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := parseIDParam(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	subTaskID, ok := parseIDParam(r, "subTaskId")
	if !ok {
		http.Error(w, "invalid sub-task id", http.StatusBadRequest)
		return
	}

	if err := h.service.ToggleSubTask(r.Context(), id, subTaskID); err != nil {
		writeError(w, log, err, "toggle sub-task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddDependency(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := parseIDParam(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var dto AddDependencyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.DependencyID == uuid.Nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.AddDependency(r.Context(), id, dto.DependencyID); err != nil {
		writeError(w, log, err, "add dependency")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveDependency(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := parseIDParam(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	dependencyID, ok := parseIDParam(r, "dependencyId")
	if !ok {
		http.Error(w, "invalid dependency id", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveDependency(r.Context(), id, dependencyID); err != nil {
		writeError(w, log, err, "remove dependency")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RecordReminderSent(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := parseIDParam(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.service.RecordReminderSent(r.Context(), id); err != nil {
		writeError(w, log, err, "record reminder")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DueReminders(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	goals, err := h.service.DueReminders(r.Context())
	if err != nil {
		writeError(w, log, err, "list due reminders")
		return
	}

	config.JSON(w, http.StatusOK, goals)
}

func (h *Handler) Streak(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, StreakResponse{Streak: h.service.Streak(r.Context())})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.service.Stats(r.Context()))
}
