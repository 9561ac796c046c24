package errors

// ErrorCode is the machine-readable code carried in the error envelope.
type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeRateLimited  ErrorCode = "RATE_LIMITED"
	ErrCodeTimeout      ErrorCode = "TIMEOUT"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"

	// ErrCodeMissingField is also used for an unset template variable.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// ErrCodeMalformedResponse means a peer answered 2xx with a body that
	// could not be decoded.
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"

	// ErrCodeExternalService means a model backend or the serving front failed.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

// IsRetryableCode reports whether the same request may succeed later.
// Nothing in this module retries on its own; the flag is for callers.
func IsRetryableCode(code ErrorCode) bool {
	switch code {
	case ErrCodeRateLimited, ErrCodeTimeout, ErrCodeExternalService:
		return true
	default:
		return false
	}
}
