package routes

import (
	"net/http"

	"motofibra/catalog/internal/api"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RegisterAPIRoutes registers the JSON API under /api/v1. limit wraps every
// mutating route.
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, corsOrigins []string, limit func(http.Handler) http.Handler) {
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))

		v1.Get("/parts", handlers.ListPartsHandler())
		v1.Get("/parts/compare", handlers.ComparePartsHandler())
		v1.Get("/parts/{id}", handlers.GetPartHandler())
		v1.Get("/reports/categories", handlers.CategoryReportHandler())

		v1.Group(func(write chi.Router) {
			write.Use(limit)
			write.Post("/parts", handlers.CreatePartHandler())
			write.Put("/parts/{id}", handlers.UpdatePartHandler())
			write.Put("/parts/{id}/details", handlers.PutDetailsHandler())
			write.Post("/part-details", handlers.CreateDetailsHandler())
		})
	})
}
