package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maksimkurb/duetctl/src/internal/domain"
	"github.com/maksimkurb/duetctl/src/internal/log"
)

// Handler manages all API endpoints and dependencies.
type Handler struct {
	deps *domain.AppDependencies
}

// NewHandler creates a new API handler serving the printers held by deps.
func NewHandler(deps *domain.AppDependencies) *Handler {
	return &Handler{deps: deps}
}

// withPrinter runs fn on the client of the printer named in the URL. Errors
// returned by fn are written with WritePrinterError; fn writes the success
// response itself.
func (h *Handler) withPrinter(w http.ResponseWriter, r *http.Request, fn func(client domain.PrinterClient) error) {
	printer, err := h.deps.Printer(chi.URLParam(r, "name"))
	if err != nil {
		WritePrinterError(w, err)
		return
	}

	if err := printer.Do(fn); err != nil {
		WritePrinterError(w, err)
	}
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(DataResponse{Data: data}); err != nil {
		log.Warnf("Failed to write response: %v", err)
	}
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// decodeJSON decodes JSON from the request body.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
