package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hydrowatch/hydrowatch/internal/accounts"
	"github.com/hydrowatch/hydrowatch/internal/catalog"
	"github.com/hydrowatch/hydrowatch/internal/observability"
	"github.com/hydrowatch/hydrowatch/internal/quality"
	"github.com/hydrowatch/hydrowatch/internal/reports"
	"github.com/hydrowatch/hydrowatch/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	UserHandler    *accounts.Handler
	AdminHandler   *accounts.Handler
	UserService    *accounts.Service
	AdminService   *accounts.Service
	CatalogHandler *catalog.Handler
	QualityHandler *quality.Handler
	ReportsHandler *reports.Handler
	JobHandler     *jobs.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with HydroWatch defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/user", params.UserHandler.MountRoutes)
		r.Route("/admin", func(r chi.Router) {
			params.AdminHandler.MountRoutes(r)
			if params.ReportsHandler != nil {
				r.Route("/reports", func(r chi.Router) {
					r.Use(params.AdminService.RequireToken(params.Logger))
					params.ReportsHandler.MountAdminRoutes(r)
				})
			}
		})

		r.Route("/lakes", func(r chi.Router) {
			if params.CatalogHandler != nil {
				params.CatalogHandler.MountRoutes(r)
			}
			if params.QualityHandler != nil {
				params.QualityHandler.MountLakeRoutes(r)
			}
		})
		if params.QualityHandler != nil {
			params.QualityHandler.MountOverviewRoute(r)
		}
		if params.ReportsHandler != nil {
			r.Route("/reports", func(r chi.Router) {
				r.Use(params.UserService.RequireToken(params.Logger))
				params.ReportsHandler.MountUserRoutes(r)
			})
		}
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
