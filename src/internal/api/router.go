package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maksimkurb/duetctl/src/internal/domain"
)

// NewRouter creates a new HTTP router with all API endpoints.
func NewRouter(deps *domain.AppDependencies) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(Recovery)
	r.Use(Logger)
	r.Use(PrivateSubnetOnly) // Restrict access to private subnets
	r.Use(JSONContentType)

	h := NewHandler(deps)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "endpoint "+r.URL.Path)
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.CheckHealth)

		r.Get("/printers", h.GetPrinters)
		r.Route("/printers/{name}", func(r chi.Router) {
			r.Get("/", h.GetPrinter)
			r.Post("/reconnect", h.ReconnectPrinter)

			r.Get("/coordinates", h.GetCoordinates)
			r.Get("/status", h.GetMachineStatus)
			r.Post("/gcode", h.SendGCode)
			r.Get("/files", h.GetFile)

			r.Post("/endstops/clear", h.ClearEndstops)
			r.Post("/endstops/reset", h.ResetEndstops)
			r.Post("/axis-limits/reset", h.ResetAxisLimits)
		})
	})

	return r
}
