package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/secretariat-suite/engagement-service/internal/config"
	"github.com/secretariat-suite/engagement-service/internal/transport/http/handlers"
	authmw "github.com/secretariat-suite/engagement-service/internal/transport/http/middleware"
)

func New(
	events *handlers.EventsHandler,
	counters *handlers.CountersHandler,
	reconcile *handlers.ReconcileHandler,
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

	if cfg.RLEnabled {
		r.Use(httprate.Limit(
			cfg.RLLimit,
			cfg.RLWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		))
	}

	r.Get("/healthz", z.Healthz)

	r.Route("/engagement/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Require)

			r.Get("/counters/{category}", counters.Top)
			r.Get("/counters/{category}/{location_id}", counters.Get)
			r.Post("/reconcile", reconcile.Run)

			r.Post("/events", events.Create)
			r.Get("/events", events.List)
			r.Get("/events/{event_id}", events.Get)
			r.Patch("/events/{event_id}", events.Update)
			r.Post("/events/{event_id}/archive", events.Archive)
			r.Delete("/events/{event_id}", events.Delete)
		})
	})

	return r
}
