package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "error without cause",
			err:      &Error{Code: ErrCodeUnsupportedFirmware, Message: "generation unknown"},
			expected: "[UNSUPPORTED_FIRMWARE] generation unknown",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeConnection, "failed to fetch /rr_status", errors.New("connection refused")),
			expected: "[CONNECTION_ERROR] failed to fetch /rr_status: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "wrapper", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestError_Is(t *testing.T) {
	err1 := &Error{Code: ErrCodeMalformedResponse, Message: "missing coords"}
	err2 := &Error{Code: ErrCodeMalformedResponse, Message: "missing result"}
	err3 := &Error{Code: ErrCodeConnection, Message: "timeout"}

	if !err1.Is(err2) {
		t.Errorf("Expected errors with same code to match")
	}

	if err1.Is(err3) {
		t.Errorf("Expected errors with different codes to not match")
	}
}

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("get coordinates: %w", NewUnsupportedFirmwareError("http://printer is not RRF2 or RRF3"))

	if !errors.Is(err, ErrUnsupportedFirmware) {
		t.Errorf("Expected wrapped error to match ErrUnsupportedFirmware")
	}
	if errors.Is(err, ErrConnection) {
		t.Errorf("Expected wrapped error not to match ErrConnection")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("boom"), ""},
		{"domain error", NewCommandError("G28 rejected", nil), ErrCodeCommand},
		{"wrapped domain error", fmt.Errorf("ctx: %w", NewHTTPStatusError("404", nil)), ErrCodeHTTPStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewMalformedResponseError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewMalformedResponseError("failed to decode /machine/status", cause)

	if err.Code != ErrCodeMalformedResponse {
		t.Errorf("Expected code %v, got %v", ErrCodeMalformedResponse, err.Code)
	}

	if err.Message != "failed to decode /machine/status" {
		t.Errorf("Expected message 'failed to decode /machine/status', got %v", err.Message)
	}

	if err.Cause != cause {
		t.Errorf("Expected cause to be preserved")
	}
}

func TestNewPrinterNotFoundError(t *testing.T) {
	err := NewPrinterNotFoundError("voron")

	if !errors.Is(err, ErrPrinterNotFound) {
		t.Error("Expected error to match ErrPrinterNotFound")
	}
	if err.Error() != `[PRINTER_NOT_FOUND] printer "voron" is not configured` {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}
