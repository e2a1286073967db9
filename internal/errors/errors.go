package errors

import (
	"fmt"
)

// APIError is an error that knows how it should be rendered at the HTTP boundary.
// Message is safe to show to clients; Details is only ever logged.
type APIError struct {
	Code    ErrorCode
	Message string
	Details string
	Status  int
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newAPIError(code ErrorCode, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Status:  code.StatusCode(),
	}
}

// NotFound creates a NOT_FOUND error, e.g. NotFound("Book") -> "Book not found"
func NotFound(resource string) *APIError {
	return newAPIError(ErrNotFound, fmt.Sprintf("%s not found", resource))
}

// BadRequest creates a BAD_REQUEST error
func BadRequest(message string) *APIError {
	return newAPIError(ErrBadRequest, message)
}

// InternalError creates an INTERNAL_ERROR
func InternalError(message string) *APIError {
	if message == "" {
		message = "internal server error"
	}
	return newAPIError(ErrInternalError, message)
}

// ServiceUnavailable creates a SERVICE_UNAVAILABLE error
func ServiceUnavailable(service string) *APIError {
	return newAPIError(ErrServiceUnavail, fmt.Sprintf("%s is temporarily unavailable", service))
}

// Timeout creates a TIMEOUT error
func Timeout(operation string) *APIError {
	return newAPIError(ErrTimeout, fmt.Sprintf("%s timed out", operation))
}

// WithDetails attaches server-side detail (usually the wrapped cause)
func (e *APIError) WithDetails(details string) *APIError {
	e.Details = details
	return e
}
