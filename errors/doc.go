// Package errors provides structured error handling for promptserve.
// It implements error types with machine codes, HTTP status mapping, and
// retryable detection, rendered as a JSON envelope loosely following RFC 7807.
package errors
