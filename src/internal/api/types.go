package api

import "github.com/maksimkurb/duetctl/src/internal/duet"

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// PrinterInfo describes a configured printer and its detected firmware.
type PrinterInfo struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Generation string `json:"generation"` // "RRF2", "RRF3", "unknown"; empty when not connected
	Connected  bool   `json:"connected"`
}

// PrintersResponse returns all configured printers.
type PrintersResponse struct {
	Printers []*PrinterInfo `json:"printers"`
}

// CoordinatesResponse returns the position of every axis.
type CoordinatesResponse struct {
	Coordinates duet.Coordinates `json:"coordinates"`
}

// MachineStatusResponse returns the machine status with tool and extruder counts.
type MachineStatusResponse struct {
	Status    string `json:"status"`
	Tools     int    `json:"tools"`
	Extruders int    `json:"extruders"`
}

// GCodeRequest runs one G-code command.
type GCodeRequest struct {
	Command string `json:"command"`
}

// GCodeResponse confirms that the printer accepted a command.
type GCodeResponse struct {
	Command  string `json:"command"`
	Accepted bool   `json:"accepted"`
}

// FileResponse returns the lines of a printer file.
type FileResponse struct {
	Path  string   `json:"path"`
	Lines []string `json:"lines"`
}

// ReplayResponse reports the outcome of an endstop or axis-limit helper.
// Success is false when at least one config line was rejected.
type ReplayResponse struct {
	Success  bool             `json:"success"`
	Failures []*ReplayFailure `json:"failures"`
}

// ReplayFailure describes one rejected config line.
type ReplayFailure struct {
	Line       string `json:"line"`
	Command    string `json:"command"`
	Error      string `json:"error"`
	StatusCode int    `json:"status_code,omitempty"`
}

// HealthResponse reports that the bridge is up.
type HealthResponse struct {
	Healthy  bool `json:"healthy"`
	Printers int  `json:"printers"`
}
