package httpclient

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/kbukum/promptserve/errors"
)

// ErrorCode classifies an outbound failure.
type ErrorCode int

// Codes in order of how early the request failed.
const (
	ErrCodeTimeout ErrorCode = iota
	ErrCodeConnection
	ErrCodeAuth
	// ErrCodeNotFound is also what some backends answer for an unknown model.
	ErrCodeNotFound
	ErrCodeRateLimit
	// ErrCodeValidation covers other 4xx statuses and requests that could not be built.
	ErrCodeValidation
	ErrCodeServer
)

var codeNames = [...]string{
	ErrCodeTimeout:    "timeout",
	ErrCodeConnection: "connection",
	ErrCodeAuth:       "auth",
	ErrCodeNotFound:   "not_found",
	ErrCodeRateLimit:  "rate_limit",
	ErrCodeValidation: "validation",
	ErrCodeServer:     "server",
}

func (c ErrorCode) String() string {
	if c >= 0 && int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "unknown"
}

// Error is a classified outbound failure. StatusCode is 0 when no response
// arrived.
type Error struct {
	StatusCode int
	Code       ErrorCode
	Message    string
	// Retryable is informational; nothing in this package retries.
	Retryable bool
	Body      []byte
	Err       error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewTransportError wraps a failure that happened before any response, with
// code ErrCodeTimeout or ErrCodeConnection.
func NewTransportError(code ErrorCode, err error) *Error {
	return &Error{Code: code, Message: err.Error(), Retryable: true, Err: err}
}

// NewValidationError reports a request that could not be sent as built.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// ClassifyStatusCode maps a non-2xx status to an *Error; 2xx yields nil.
func ClassifyStatusCode(status int, body []byte) *Error {
	if status >= 200 && status < 300 {
		return nil
	}
	code, retryable := ErrCodeServer, false
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		code = ErrCodeAuth
	case status == http.StatusNotFound:
		code = ErrCodeNotFound
	case status == http.StatusTooManyRequests:
		code, retryable = ErrCodeRateLimit, true
	case status >= 400 && status < 500:
		code = ErrCodeValidation
	case status >= 500:
		retryable = true
	}
	return &Error{
		StatusCode: status,
		Code:       code,
		Message:    fmt.Sprintf("HTTP %d", status),
		Retryable:  retryable,
		Body:       body,
	}
}

// HasCode reports whether err wraps an *Error with the given code.
func HasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsTimeout reports a request that ran out of time.
func IsTimeout(err error) bool { return HasCode(err, ErrCodeTimeout) }

// IsRetryable reports whether err wraps an *Error marked retryable.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// ToAppError maps an outbound failure to the service error envelope as an
// EXTERNAL_SERVICE_ERROR naming service. The classification and upstream
// status, when known, are kept in the details.
func ToAppError(service string, err error) *apperrors.AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	appErr := apperrors.ExternalServiceError(service, err)
	var e *Error
	if errors.As(err, &e) {
		appErr.WithDetail("reason", e.Code.String())
		if e.StatusCode > 0 {
			appErr.WithDetail("upstream_status", e.StatusCode)
		}
	}
	return appErr
}
