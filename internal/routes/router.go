package routes

import (
	"net/http"
	"time"

	"motofibra/catalog/internal/api"
	"motofibra/catalog/internal/logging"
	"motofibra/catalog/internal/middleware"
	catalogUI "motofibra/catalog/ui"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type RouterOptions struct {
	UpSince     time.Time
	CORSOrigins []string
	// RateLimiter guards mutating routes; nil disables limiting.
	RateLimiter *middleware.RateLimiter
	// CachePinger is reported by the health check when set.
	CachePinger api.Pinger
}

func RegisterRoutes(deps *api.Dependencies, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	// global middleware
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.Logging)
	if deps.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(deps.Metrics))
	}

	r.Get("/healthCheck", api.HealthCheckHandler(deps.ReadDB, opts.CachePinger, opts.UpSince))

	limit := func(next http.Handler) http.Handler { return next }
	if opts.RateLimiter != nil {
		limit = opts.RateLimiter.Middleware
	}

	RegisterAPIRoutes(r, api.NewHandlers(deps), opts.CORSOrigins, limit)

	uiHandler := catalogUI.NewUIHandler(deps.Services.Catalog, deps.Services.Reports, deps.Services.Export)
	RegisterUIRoutes(r, uiHandler, limit)

	logging.Info("Router initialized", "cors_origins", opts.CORSOrigins, "rate_limited", opts.RateLimiter != nil)
	return r
}
