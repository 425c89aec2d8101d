package api

import (
	"encoding/json"
	"net/http"

	"github.com/maksimkurb/duetctl/src/internal/duet"
	"github.com/maksimkurb/duetctl/src/internal/errors"
	"github.com/maksimkurb/duetctl/src/internal/log"
)

// ErrorCode represents standard API error codes.
type ErrorCode string

const (
	// ErrCodeInvalidRequest indicates malformed or invalid request data.
	ErrCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeForbidden indicates the client is not allowed to use the API.
	ErrCodeForbidden ErrorCode = "forbidden"

	// ErrCodeInternalError indicates an internal server error.
	ErrCodeInternalError ErrorCode = "internal_error"

	// ErrCodePrinterUnreachable indicates the printer could not be reached.
	ErrCodePrinterUnreachable ErrorCode = "printer_unreachable"

	// ErrCodePrinterError indicates the printer answered with an error status or
	// an unexpected document.
	ErrCodePrinterError ErrorCode = "printer_error"

	// ErrCodeCommandRejected indicates the printer refused a G-code command.
	ErrCodeCommandRejected ErrorCode = "command_rejected"

	// ErrCodeUnsupportedFirmware indicates the printer's firmware generation was not detected.
	ErrCodeUnsupportedFirmware ErrorCode = "unsupported_firmware"
)

// APIError represents a structured API error response.
type APIError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps an APIError for JSON responses.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code ErrorCode, message string) APIError {
	return APIError{
		Code:    code,
		Message: message,
		Details: nil,
	}
}

// WithDetails adds details to an APIError.
func (e APIError) WithDetails(details map[string]interface{}) APIError {
	e.Details = details
	return e
}

// WriteError writes an error response to the HTTP response writer.
func WriteError(w http.ResponseWriter, statusCode int, err APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if encErr := json.NewEncoder(w).Encode(ErrorResponse{Error: err}); encErr != nil {
		log.Warnf("Failed to write error response: %v", encErr)
	}
}

// WriteInvalidRequest writes a 400 Bad Request error.
func WriteInvalidRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, NewAPIError(ErrCodeInvalidRequest, message))
}

// WriteNotFound writes a 404 Not Found error.
func WriteNotFound(w http.ResponseWriter, resource string) {
	WriteError(w, http.StatusNotFound, NewAPIError(ErrCodeNotFound, resource+" not found"))
}

// WriteForbidden writes a 403 Forbidden error.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// WriteInternalError writes a 500 Internal Server Error.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// WritePrinterError maps a printer error to an HTTP status:
//
//	PRINTER_NOT_FOUND     404
//	UNSUPPORTED_FIRMWARE  503
//	CONNECTION_ERROR      502
//	HTTP_STATUS_ERROR     502
//	MALFORMED_RESPONSE    502
//	COMMAND_ERROR         502, details.status_code holds the printer's status
//
// Anything else is a 500.
func WritePrinterError(w http.ResponseWriter, err error) {
	switch errors.CodeOf(err) {
	case errors.ErrCodePrinterNotFound:
		WriteError(w, http.StatusNotFound, NewAPIError(ErrCodeNotFound, err.Error()))
	case errors.ErrCodeUnsupportedFirmware:
		WriteError(w, http.StatusServiceUnavailable, NewAPIError(ErrCodeUnsupportedFirmware, err.Error()))
	case errors.ErrCodeConnection:
		WriteError(w, http.StatusBadGateway, NewAPIError(ErrCodePrinterUnreachable, err.Error()))
	case errors.ErrCodeHTTPStatus, errors.ErrCodeMalformedResponse:
		apiErr := NewAPIError(ErrCodePrinterError, err.Error())
		if code := duet.StatusCode(err); code != 0 {
			apiErr = apiErr.WithDetails(map[string]interface{}{"status_code": code})
		}
		WriteError(w, http.StatusBadGateway, apiErr)
	case errors.ErrCodeCommand:
		apiErr := NewAPIError(ErrCodeCommandRejected, err.Error()).
			WithDetails(map[string]interface{}{"status_code": duet.StatusCode(err)})
		WriteError(w, http.StatusBadGateway, apiErr)
	default:
		log.Errorf("Unexpected printer error: %v", err)
		WriteInternalError(w, err.Error())
	}
}
