// Package errors provides domain-specific error types for duetctl.
//
// Errors carry a code so callers can tell a dead printer from a printer that
// answered with an unexpected document, or from a G-code the firmware refused.
// Two errors with the same code match under errors.Is.
package errors

import "fmt"

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeConnection indicates a transport failure (dial error, timeout, reset).
	ErrCodeConnection ErrorCode = "CONNECTION_ERROR"

	// ErrCodeHTTPStatus indicates the printer answered a query with a non-2xx status.
	ErrCodeHTTPStatus ErrorCode = "HTTP_STATUS_ERROR"

	// ErrCodeCommand indicates the printer rejected a G-code submission.
	ErrCodeCommand ErrorCode = "COMMAND_ERROR"

	// ErrCodeMalformedResponse indicates a response that is not JSON or does not
	// carry the fields the firmware generation is expected to report.
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"

	// ErrCodeUnsupportedFirmware indicates a query on a printer whose firmware
	// generation could not be detected.
	ErrCodeUnsupportedFirmware ErrorCode = "UNSUPPORTED_FIRMWARE"

	// ErrCodePrinterNotFound indicates a printer name that is not configured.
	ErrCodePrinterNotFound ErrorCode = "PRINTER_NOT_FOUND"

	// ErrCodeConfig indicates a configuration-related error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeValidation indicates a validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Sentinels for errors.Is checks. Only the code is compared.
var (
	ErrConnection          = New(ErrCodeConnection, "printer unreachable")
	ErrHTTPStatus          = New(ErrCodeHTTPStatus, "unexpected HTTP status")
	ErrCommand             = New(ErrCodeCommand, "command rejected")
	ErrMalformedResponse   = New(ErrCodeMalformedResponse, "malformed response")
	ErrUnsupportedFirmware = New(ErrCodeUnsupportedFirmware, "unsupported or undetected firmware")
	ErrPrinterNotFound     = New(ErrCodePrinterNotFound, "printer not found")
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the outermost domain error in err's chain,
// or an empty code if there is none.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}

// NewConnectionError creates a new transport error.
func NewConnectionError(message string, cause error) *Error {
	return Wrap(ErrCodeConnection, message, cause)
}

// NewHTTPStatusError creates a new unexpected-status error.
func NewHTTPStatusError(message string, cause error) *Error {
	return Wrap(ErrCodeHTTPStatus, message, cause)
}

// NewCommandError creates a new rejected-command error.
func NewCommandError(message string, cause error) *Error {
	return Wrap(ErrCodeCommand, message, cause)
}

// NewMalformedResponseError creates a new malformed-response error.
func NewMalformedResponseError(message string, cause error) *Error {
	return Wrap(ErrCodeMalformedResponse, message, cause)
}

// NewUnsupportedFirmwareError creates a new unsupported-firmware error.
func NewUnsupportedFirmwareError(message string) *Error {
	return New(ErrCodeUnsupportedFirmware, message)
}

// NewPrinterNotFoundError creates a new unknown-printer error.
func NewPrinterNotFoundError(name string) *Error {
	return New(ErrCodePrinterNotFound, fmt.Sprintf("printer %q is not configured", name))
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}
