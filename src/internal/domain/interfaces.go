// Package domain defines core interfaces for dependency injection and abstraction.
//
// This package contains the fundamental interfaces that enable loose coupling between
// components and facilitate testing through dependency injection.
package domain

import (
	"github.com/maksimkurb/duetctl/src/internal/config"
	"github.com/maksimkurb/duetctl/src/internal/duet"
)

// PrinterClient defines the interface for querying and commanding one Duet printer.
//
// *duet.Client implements it. The firmware generation is fixed when the client
// is created; a client that failed detection answers every query with
// errors.ErrUnsupportedFirmware.
type PrinterClient interface {
	// Generation returns the detected firmware generation.
	Generation() duet.Generation

	// BaseURL returns the printer's base URL.
	BaseURL() string

	// GetCoordinates returns the position of every axis keyed by axis letter.
	GetCoordinates() (duet.Coordinates, error)

	// GetExtruderCount returns the number of extruders.
	GetExtruderCount() (int, error)

	// GetToolCount returns the number of tools.
	GetToolCount() (int, error)

	// GetStatus returns the machine status ("idle", "processing", ...).
	GetStatus() (string, error)

	// SendGCode runs one G-code command.
	SendGCode(command string) error

	// GetFileLines downloads a file from the printer and splits it into lines.
	GetFileLines(path string) ([]string, error)

	// ClearEndstops undefines the endstops and Z probe found in /sys/config.g.
	ClearEndstops() error

	// ResetEndstops clears and then restores the endstops and Z probe from /sys/config.g.
	ResetEndstops() error

	// ResetAxisLimits re-issues the axis limits from /sys/config.g.
	ResetAxisLimits() error
}

// PrinterConnector creates a client for a configured printer. Creating a
// client runs firmware detection, so it performs network I/O.
type PrinterConnector func(printer *config.PrinterConfig) PrinterClient
