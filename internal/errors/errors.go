package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrVehicleNotFound is returned when a vehicle does not exist or does
	// not belong to the acting user. The two cases are deliberately merged
	// so callers cannot probe for other users' vehicles.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrRecordNotFound is returned when a service record does not exist or
	// its vehicle does not belong to the acting user.
	ErrRecordNotFound = errors.New("service record not found")
	// ErrConcurrencyConflict is returned when a row was changed or deleted
	// between read and write. Recoverable by re-fetching and retrying.
	ErrConcurrencyConflict = errors.New("record was modified by another request")
	// ErrRecordIDMismatch is returned when the record id in the path does
	// not match the id in the body.
	ErrRecordIDMismatch = errors.New("record id mismatch")
	// ErrReportRender is returned when PDF generation fails. It only affects
	// the export operation.
	ErrReportRender = errors.New("report rendering failed")
)

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a field-level validation failure. No state change
// has happened when it is returned.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// AsValidationErrors unwraps err into ValidationErrors if it is one.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Code   string       `json:"code"`
	Fields []FieldError `json:"fields,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     []FieldError
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Code:   e.Code,
		Fields: e.Fields,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	if ve, ok := AsValidationErrors(err); ok {
		httpErr := NewHTTPError(http.StatusBadRequest, "validation failed", "VALIDATION_FAILED")
		httpErr.Fields = ve
		return httpErr
	}
	switch {
	case errors.Is(err, ErrVehicleNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "VEHICLE_NOT_FOUND")
	case errors.Is(err, ErrRecordNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RECORD_NOT_FOUND")
	case errors.Is(err, ErrConcurrencyConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "CONCURRENCY_CONFLICT")
	case errors.Is(err, ErrRecordIDMismatch):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "RECORD_ID_MISMATCH")
	case errors.Is(err, ErrReportRender):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "REPORT_RENDER_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
