package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maksimkurb/duetctl/src/internal/domain"
)

// GetPrinters returns every configured printer. It never contacts a printer:
// printers that were not used yet are listed as not connected.
// GET /api/v1/printers
func (h *Handler) GetPrinters(w http.ResponseWriter, r *http.Request) {
	response := PrintersResponse{Printers: make([]*PrinterInfo, 0)}

	for _, name := range h.deps.PrinterNames() {
		printer, err := h.deps.Printer(name)
		if err != nil {
			WritePrinterError(w, err)
			return
		}

		client := printer.Client()
		if client == nil {
			response.Printers = append(response.Printers, &PrinterInfo{Name: name, URL: printer.Config.URL})
			continue
		}
		response.Printers = append(response.Printers, printerInfo(name, client))
	}

	writeJSONData(w, response)
}

// GetPrinter returns one printer.
// GET /api/v1/printers/{name}
func (h *Handler) GetPrinter(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	h.withPrinter(w, r, func(client domain.PrinterClient) error {
		writeJSONData(w, printerInfo(name, client))
		return nil
	})
}

// ReconnectPrinter replaces the printer's client, which runs firmware
// detection again. Use it after a printer was power-cycled or reflashed.
// POST /api/v1/printers/{name}/reconnect
func (h *Handler) ReconnectPrinter(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	printer, err := h.deps.Printer(name)
	if err != nil {
		WritePrinterError(w, err)
		return
	}

	client := printer.Reconnect()
	writeJSONData(w, printerInfo(name, client))
}

func printerInfo(name string, client domain.PrinterClient) *PrinterInfo {
	return &PrinterInfo{
		Name:       name,
		URL:        client.BaseURL(),
		Generation: client.Generation().String(),
		Connected:  true,
	}
}
