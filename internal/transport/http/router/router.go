package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/config"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/metrics"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/transport/http/handlers"
	authmw "github.com/baechuer/real-time-ressys/services/events-api/internal/transport/http/middleware"
)

func New(
	h *handlers.EventsHandler,
	auth *authmw.AuthMiddleware,
	z *handlers.HealthHandler,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(authmw.RequestID)
	r.Use(authmw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(authmw.AccessLog)
	r.Use(authmw.Metrics)

	r.Get("/healthz", z.Healthz)
	r.Get("/readyz", z.Readyz)
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		if cfg.RLEnabled {
			r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
		}

		r.Get("/events", h.List)
		r.Get("/events/{id}", h.Get)
		r.Get("/events/{id}/attendees", h.ListAttendees)
		r.Get("/events-organized-by-user/{userId}", h.ListOrganizedBy)

		r.Group(func(r chi.Router) {
			r.Use(auth.Require)
			r.Post("/events", h.Create)
			r.Patch("/events/{id}", h.Update)
			r.Delete("/events/{id}", h.Delete)

			r.Get("/events-attendance", h.ListMine)
			r.Get("/events-attendance/{eventId}", h.GetMine)
			r.Put("/events-attendance/{eventId}", h.Answer)
		})
	})

	return r
}
