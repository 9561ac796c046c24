package errors

import (
	"fmt"
	"maps"
	"net/http"
)

// AppError is the error type handlers render and clients classify.
type AppError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Retryable  bool           `json:"retryable"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches any *AppError with the same code, so package-level sentinels
// work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// WithCause sets the underlying error and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges details into e and returns e.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	maps.Copy(e.Details, details)
	return e
}

// WithDetail sets one detail and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	return e.WithDetails(map[string]any{key: value})
}

// New creates an AppError; Retryable follows the code.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

func newf(code ErrorCode, status int, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...), status)
}

// NotFound reports an unknown route or pipeline. id is omitted when empty.
func NotFound(resource, id string) *AppError {
	e := newf(ErrCodeNotFound, http.StatusNotFound, "The requested %s was not found.", resource).
		WithDetail("resource", resource)
	if id != "" {
		e.WithDetail("id", id)
	}
	return e
}

// InvalidInput reports a request value that cannot be used.
func InvalidInput(field, reason string) *AppError {
	e := newf(ErrCodeInvalidInput, http.StatusBadRequest, "Invalid input: %s", reason)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation reports struct or form validation failures as one message.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message, http.StatusBadRequest)
}

func MissingField(field string) *AppError {
	return newf(ErrCodeMissingField, http.StatusBadRequest, "Missing required field: %s", field).
		WithDetail("field", field)
}

// MalformedResponse reports a body from source that could not be decoded.
func MalformedResponse(source string, cause error) *AppError {
	return newf(ErrCodeMalformedResponse, http.StatusBadGateway, "Unexpected response format from %s.", source).
		WithDetail("source", source).
		WithCause(cause)
}

// ExternalServiceError reports a failed call to service.
func ExternalServiceError(service string, cause error) *AppError {
	return newf(ErrCodeExternalService, http.StatusBadGateway, "The %s service encountered an error. Please try again.", service).
		WithDetail("service", service).
		WithCause(cause)
}

func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred. Please try again or contact support.", http.StatusInternalServerError).
		WithCause(cause)
}
