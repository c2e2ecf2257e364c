package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrCFPNotFound is returned when a CFP is not found.
	ErrCFPNotFound = errors.New("cfp not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrClosingAfterEvent is returned when a CFP closes after its event date.
	ErrClosingAfterEvent = errors.New("closing date must not be after event date")
	// ErrUserInactive is returned when the authenticated user is deactivated.
	ErrUserInactive = errors.New("user is not active")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
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
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrCFPNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CFP_NOT_FOUND")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrClosingAfterEvent:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CLOSING_DATE")
	case ErrUserInactive:
		return NewHTTPError(http.StatusForbidden, err.Error(), "USER_INACTIVE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
