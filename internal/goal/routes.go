package goal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the goal endpoints. extra registers additional per-goal
// routes (e.g. planner suggestions) on the same router.
func Routes(h *Handler, extra ...func(chi.Router)) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/streak", h.Streak)
	r.Get("/stats", h.Stats)
	r.Get("/reminders/due", h.DueReminders)

	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Post("/{id}/subtasks", h.AddSubTask)
	r.Patch("/{id}/subtasks/{subTaskId}/toggle", h.ToggleSubTask)
	r.Post("/{id}/dependencies", h.AddDependency)
	r.Delete("/{id}/dependencies/{dependencyId}", h.RemoveDependency)
	r.Post("/{id}/reminders/sent", h.RecordReminderSent)

	for _, register := range extra {
		register(r)
	}

	return r
}
