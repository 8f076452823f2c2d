package httpserver

import (
	"net/http"
	"time"

	"court-register-go/internal/auth"
	"court-register-go/internal/config"
	"court-register-go/internal/transport/httpserver/handler"
	authmw "court-register-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, authenticator *authmw.Authenticator, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.AllowedOrigins))

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/courts", func(r chi.Router) {
		r.Get("/", handlers.ListActiveCourts)
		r.Get("/all", handlers.ListAllCourts)
		r.Get("/paged", handlers.ListActiveCourtPage)
		r.Get("/all/paged", handlers.ListCourtPage)
		r.Get("/types", handlers.ListCourtTypes)
		r.Get("/buildings/sub-code/{subCode}", handlers.GetBuildingBySubCode)

		r.Route("/id/{courtId}", func(r chi.Router) {
			r.Get("/", handlers.GetCourt)
			r.Get("/buildings/main", handlers.GetMainBuilding)
			r.Get("/buildings/id/{buildingId}", handlers.GetBuilding)
			r.Get("/buildings/id/{buildingId}/contacts/id/{contactId}", handlers.GetContact)
		})
	})

	r.Route("/court-maintenance", func(r chi.Router) {
		r.Use(authenticator.Middleware)
		r.Use(authmw.RequireAuthority(auth.RoleMaintainRefData, auth.ScopeWrite))

		r.Post("/", handlers.InsertCourt)
		r.Route("/id/{courtId}", func(r chi.Router) {
			r.Put("/", handlers.UpdateCourt)
			r.Delete("/", handlers.DeleteCourt)

			r.Post("/buildings", handlers.InsertBuilding)
			r.Put("/buildings/{buildingId}", handlers.UpdateBuilding)
			r.Delete("/buildings/{buildingId}", handlers.DeleteBuilding)

			r.Post("/buildings/{buildingId}/contacts", handlers.InsertContact)
			r.Put("/buildings/{buildingId}/contacts/{contactId}", handlers.UpdateContact)
			r.Delete("/buildings/{buildingId}/contacts/{contactId}", handlers.DeleteContact)
		})
	})

	return r
}
