package api

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/maksimkurb/duetctl/src/internal/domain"
	"github.com/maksimkurb/duetctl/src/internal/duet"
)

// GetCoordinates returns the position of every axis.
// GET /api/v1/printers/{name}/coordinates
func (h *Handler) GetCoordinates(w http.ResponseWriter, r *http.Request) {
	h.withPrinter(w, r, func(client domain.PrinterClient) error {
		coords, err := client.GetCoordinates()
		if err != nil {
			return err
		}
		writeJSONData(w, CoordinatesResponse{Coordinates: coords})
		return nil
	})
}

// GetMachineStatus returns the machine status with tool and extruder counts.
// GET /api/v1/printers/{name}/status
func (h *Handler) GetMachineStatus(w http.ResponseWriter, r *http.Request) {
	h.withPrinter(w, r, func(client domain.PrinterClient) error {
		status, err := client.GetStatus()
		if err != nil {
			return err
		}
		tools, err := client.GetToolCount()
		if err != nil {
			return err
		}
		extruders, err := client.GetExtruderCount()
		if err != nil {
			return err
		}

		writeJSONData(w, MachineStatusResponse{
			Status:    status,
			Tools:     tools,
			Extruders: extruders,
		})
		return nil
	})
}

// SendGCode runs one G-code command.
// POST /api/v1/printers/{name}/gcode
func (h *Handler) SendGCode(w http.ResponseWriter, r *http.Request) {
	var req GCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteInvalidRequest(w, "Invalid request body: "+err.Error())
		return
	}

	command := strings.TrimSpace(req.Command)
	if command == "" {
		WriteInvalidRequest(w, "command is required")
		return
	}

	h.withPrinter(w, r, func(client domain.PrinterClient) error {
		if err := client.SendGCode(command); err != nil {
			return err
		}
		writeJSONData(w, GCodeResponse{Command: command, Accepted: true})
		return nil
	})
}

// GetFile returns the lines of a file on the printer.
// GET /api/v1/printers/{name}/files?path=/sys/config.g
func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		WriteInvalidRequest(w, "path query parameter is required")
		return
	}

	h.withPrinter(w, r, func(client domain.PrinterClient) error {
		lines, err := client.GetFileLines(path)
		if err != nil {
			return err
		}
		writeJSONData(w, FileResponse{Path: path, Lines: lines})
		return nil
	})
}

// ClearEndstops undefines the configured endstops and Z probe.
// POST /api/v1/printers/{name}/endstops/clear
func (h *Handler) ClearEndstops(w http.ResponseWriter, r *http.Request) {
	h.replay(w, r, domain.PrinterClient.ClearEndstops)
}

// ResetEndstops restores the endstops and Z probe from /sys/config.g.
// POST /api/v1/printers/{name}/endstops/reset
func (h *Handler) ResetEndstops(w http.ResponseWriter, r *http.Request) {
	h.replay(w, r, domain.PrinterClient.ResetEndstops)
}

// ResetAxisLimits restores the axis limits from /sys/config.g.
// POST /api/v1/printers/{name}/axis-limits/reset
func (h *Handler) ResetAxisLimits(w http.ResponseWriter, r *http.Request) {
	h.replay(w, r, domain.PrinterClient.ResetAxisLimits)
}

// replay runs a config replay helper. Rejected lines are reported in a 200
// response; any other failure is written as a printer error.
func (h *Handler) replay(w http.ResponseWriter, r *http.Request, helper func(domain.PrinterClient) error) {
	h.withPrinter(w, r, func(client domain.PrinterClient) error {
		response := ReplayResponse{Success: true, Failures: make([]*ReplayFailure, 0)}

		err := helper(client)
		var replayErrs duet.ReplayErrors
		switch {
		case err == nil:
		case stderrors.As(err, &replayErrs):
			response.Success = false
			for _, e := range replayErrs {
				response.Failures = append(response.Failures, &ReplayFailure{
					Line:       e.Line,
					Command:    e.Command,
					Error:      e.Err.Error(),
					StatusCode: duet.StatusCode(e.Err),
				})
			}
		default:
			return err
		}

		writeJSONData(w, response)
		return nil
	})
}
