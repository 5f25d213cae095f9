package errors

import (
	"net/http"
	"strings"
)

// APIError is the single error shape carried from services to the HTTP
// layer. Status selects the response code; Details holds per-field
// validation messages for bad requests.
type APIError struct {
	Status  int         `json:"status"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`

	cause error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// Cause returns the underlying error of an internal failure, if any.
func (e *APIError) Cause() error {
	return e.cause
}

func New(status int, code, message string) *APIError {
	return &APIError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

func Internal(message string) *APIError {
	if message == "" {
		message = "internal server error"
	}
	return New(http.StatusInternalServerError, "internal_error", message)
}

// Wrap builds an internal error that keeps cause for server-side logging.
// The cause is never serialized.
func Wrap(cause error, message string) *APIError {
	err := Internal(message)
	err.cause = cause
	return err
}

func BadRequest(message string) *APIError {
	if message == "" {
		message = "Bad Request"
	}
	return New(http.StatusBadRequest, "bad_request", message)
}

// Invalid builds a bad request from a list of validation messages. The
// messages are joined into Message and kept individually in Details.
func Invalid(messages []string) *APIError {
	err := BadRequest(strings.Join(messages, "; "))
	err.Details = messages
	return err
}

func Unauthorized(message string) *APIError {
	if message == "" {
		message = "Unauthorized"
	}
	return New(http.StatusUnauthorized, "unauthorized", message)
}

func Forbidden(message string) *APIError {
	if message == "" {
		message = "Forbidden"
	}
	return New(http.StatusForbidden, "forbidden", message)
}

func NotFound(message string) *APIError {
	if message == "" {
		message = "Not Found"
	}
	return New(http.StatusNotFound, "not_found", message)
}

// Is reports whether err is an *APIError with the given status.
func Is(err error, status int) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr != nil && apiErr.Status == status
}
