package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/accountability-buddy/internal/auth"
	"github.com/saulo-duarte/accountability-buddy/internal/goal"
	"github.com/saulo-duarte/accountability-buddy/internal/middlewares"
	"github.com/saulo-duarte/accountability-buddy/internal/planner"
)

type RouterConfig struct {
	GoalHandler    *goal.Handler
	PlannerHandler *planner.Handler
	AuthHandler    *auth.Handler
	AllowedOrigin  string
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware(cfg.AllowedOrigin))

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/logout", cfg.AuthHandler.Logout)
		r.With(auth.AuthMiddleware).Get("/me", cfg.AuthHandler.Me)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		var extra []func(chi.Router)
		if cfg.PlannerHandler != nil {
			extra = append(extra, cfg.PlannerHandler.Register)
		}
		r.Mount("/goals", goal.Routes(cfg.GoalHandler, extra...))
	})
	return r
}
