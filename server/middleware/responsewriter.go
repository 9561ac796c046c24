package middleware

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/kbukum/promptserve/errors"
)

// statusWriter wraps http.ResponseWriter to capture the status code.
// It delegates Flush and Unwrap so SSE streaming keeps working.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.wroteHeader {
		sw.status = code
		sw.wroteHeader = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	sw.wroteHeader = true
	return sw.ResponseWriter.Write(b)
}

// Flush implements http.Flusher, required for the SSE stream endpoint.
func (sw *statusWriter) Flush() {
	if f, ok := sw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the original writer.
func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}

func writeError(w http.ResponseWriter, status int, message string) {
	code := apperrors.ErrCodeInvalidInput
	switch status {
	case http.StatusTooManyRequests:
		code = apperrors.ErrCodeRateLimited
	case http.StatusInternalServerError:
		code = apperrors.ErrCodeInternal
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apperrors.New(code, message, status).ToResponse())
}
