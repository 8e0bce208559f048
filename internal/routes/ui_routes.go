package routes

import (
	"net/http"
	"path/filepath"
	"strings"

	"motofibra/catalog/internal/middleware"
	catalogUI "motofibra/catalog/ui"

	"github.com/go-chi/chi/v5"
)

// RegisterUIRoutes registers the server-rendered pages. limit wraps every
// form submission.
func RegisterUIRoutes(r chi.Router, ui *catalogUI.UIHandler, limit func(http.Handler) http.Handler) {
	r.Handle("/static/*", mimeTypeMiddleware(catalogUI.StaticHandler()))

	r.Group(func(pages chi.Router) {
		pages.Use(middleware.ThemeMiddleware)

		pages.Get("/", ui.HomeHandler)
		pages.Get("/orders", ui.OrdersHandler)

		pages.Route("/parts", func(parts chi.Router) {
			parts.Get("/", ui.ListPartsHandler)
			parts.Get("/new", ui.NewPartFormHandler)
			parts.Get("/compare", ui.CompareHandler)
			parts.Get("/export.xlsx", ui.ExportHandler)
			parts.Get("/{id}", ui.ViewPartHandler)
			parts.Get("/{id}/edit", ui.EditPartFormHandler)
			parts.Get("/{id}/details", ui.DetailsFormHandler)

			parts.With(limit).Post("/new", ui.CreatePartHandler)
			parts.With(limit).Post("/{id}/edit", ui.UpdatePartHandler)
			parts.With(limit).Post("/{id}/details", ui.SaveDetailsHandler)
		})

		pages.Get("/reports/categories", ui.CategoryReportHandler)
		pages.Post("/theme", ui.SetThemeHandler)
	})
}

// mimeTypeMiddleware wraps a file server and sets correct MIME types for various file types
func mimeTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ext := filepath.Ext(r.URL.Path)

		// Set correct MIME type for .mjs files (ES modules)
		if strings.EqualFold(ext, ".mjs") {
			w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		}

		next.ServeHTTP(w, r)
	})
}
