// Package mocks provides mock implementations for testing.
//
// This package should ONLY be imported in test files (_test.go).
// The Go toolchain will automatically exclude this package from production builds
// since it's not imported in any production code.
package mocks

import (
	"sync"

	"github.com/maksimkurb/duetctl/src/internal/config"
	"github.com/maksimkurb/duetctl/src/internal/domain"
	"github.com/maksimkurb/duetctl/src/internal/duet"
)

// MockPrinterClient is a mock implementation of the domain.PrinterClient interface.
//
// It allows tests to provide custom behavior for each method through function fields.
// If a function field is nil, a sensible default implementation is used: an
// idle RRF3 printer at http://printer.local with X, Y and Z at zero, one tool
// and one extruder, that accepts every command.
//
// Example usage:
//
//	mock := &MockPrinterClient{
//	    SendGCodeFunc: func(command string) error {
//	        return errors.NewCommandError("rejected", &duet.StatusError{StatusCode: 503})
//	    },
//	}
//	err := mock.SendGCode("G28")
type MockPrinterClient struct {
	GenerationValue duet.Generation
	BaseURLValue    string

	// GetCoordinatesFunc is called by GetCoordinates if not nil
	GetCoordinatesFunc func() (duet.Coordinates, error)

	// GetExtruderCountFunc is called by GetExtruderCount if not nil
	GetExtruderCountFunc func() (int, error)

	// GetToolCountFunc is called by GetToolCount if not nil
	GetToolCountFunc func() (int, error)

	// GetStatusFunc is called by GetStatus if not nil
	GetStatusFunc func() (string, error)

	// SendGCodeFunc is called by SendGCode if not nil
	SendGCodeFunc func(command string) error

	// GetFileLinesFunc is called by GetFileLines if not nil
	GetFileLinesFunc func(path string) ([]string, error)

	// ClearEndstopsFunc is called by ClearEndstops if not nil
	ClearEndstopsFunc func() error

	// ResetEndstopsFunc is called by ResetEndstops if not nil
	ResetEndstopsFunc func() error

	// ResetAxisLimitsFunc is called by ResetAxisLimits if not nil
	ResetAxisLimitsFunc func() error

	mu       sync.Mutex
	commands []string
}

// NewMockPrinterClient creates a mock of an idle RRF3 printer.
func NewMockPrinterClient() *MockPrinterClient {
	return &MockPrinterClient{
		GenerationValue: duet.Generation3,
		BaseURLValue:    "http://printer.local",
	}
}

// NewMockPrinterConnector returns a connector that hands out client for every
// printer and counts how often it was called.
func NewMockPrinterConnector(client domain.PrinterClient, calls *int) domain.PrinterConnector {
	return func(printer *config.PrinterConfig) domain.PrinterClient {
		if calls != nil {
			*calls++
		}
		return client
	}
}

// Generation returns GenerationValue.
func (m *MockPrinterClient) Generation() duet.Generation {
	return m.GenerationValue
}

// BaseURL returns BaseURLValue.
func (m *MockPrinterClient) BaseURL() string {
	return m.BaseURLValue
}

// GetCoordinates returns axis positions.
//
// If GetCoordinatesFunc is set, it calls that function.
// Otherwise, returns X, Y and Z at zero.
func (m *MockPrinterClient) GetCoordinates() (duet.Coordinates, error) {
	if m.GetCoordinatesFunc != nil {
		return m.GetCoordinatesFunc()
	}
	return duet.Coordinates{"X": 0, "Y": 0, "Z": 0}, nil
}

// GetExtruderCount returns the number of extruders.
//
// If GetExtruderCountFunc is set, it calls that function.
// Otherwise, returns 1.
func (m *MockPrinterClient) GetExtruderCount() (int, error) {
	if m.GetExtruderCountFunc != nil {
		return m.GetExtruderCountFunc()
	}
	return 1, nil
}

// GetToolCount returns the number of tools.
//
// If GetToolCountFunc is set, it calls that function.
// Otherwise, returns 1.
func (m *MockPrinterClient) GetToolCount() (int, error) {
	if m.GetToolCountFunc != nil {
		return m.GetToolCountFunc()
	}
	return 1, nil
}

// GetStatus returns the machine status.
//
// If GetStatusFunc is set, it calls that function.
// Otherwise, returns "idle".
func (m *MockPrinterClient) GetStatus() (string, error) {
	if m.GetStatusFunc != nil {
		return m.GetStatusFunc()
	}
	return "idle", nil
}

// SendGCode records command and runs it.
//
// If SendGCodeFunc is set, it calls that function.
// Otherwise, the command succeeds.
func (m *MockPrinterClient) SendGCode(command string) error {
	m.mu.Lock()
	m.commands = append(m.commands, command)
	m.mu.Unlock()

	if m.SendGCodeFunc != nil {
		return m.SendGCodeFunc(command)
	}
	return nil
}

// GetFileLines returns the lines of a printer file.
//
// If GetFileLinesFunc is set, it calls that function.
// Otherwise, returns an empty file.
func (m *MockPrinterClient) GetFileLines(path string) ([]string, error) {
	if m.GetFileLinesFunc != nil {
		return m.GetFileLinesFunc(path)
	}
	return []string{}, nil
}

// ClearEndstops calls ClearEndstopsFunc if set, otherwise succeeds.
func (m *MockPrinterClient) ClearEndstops() error {
	if m.ClearEndstopsFunc != nil {
		return m.ClearEndstopsFunc()
	}
	return nil
}

// ResetEndstops calls ResetEndstopsFunc if set, otherwise succeeds.
func (m *MockPrinterClient) ResetEndstops() error {
	if m.ResetEndstopsFunc != nil {
		return m.ResetEndstopsFunc()
	}
	return nil
}

// ResetAxisLimits calls ResetAxisLimitsFunc if set, otherwise succeeds.
func (m *MockPrinterClient) ResetAxisLimits() error {
	if m.ResetAxisLimitsFunc != nil {
		return m.ResetAxisLimitsFunc()
	}
	return nil
}

// SentCommands returns every command passed to SendGCode, in order.
func (m *MockPrinterClient) SentCommands() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.commands...)
}
