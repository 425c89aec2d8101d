package api

import "net/http"

// CheckHealth reports that the bridge is running. It does not contact any printer.
// GET /api/v1/health
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONData(w, HealthResponse{
		Healthy:  true,
		Printers: len(h.deps.PrinterNames()),
	})
}
