package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	apperrors "github.com/kbukum/promptserve/errors"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeTimeout, "timeout"},
		{ErrCodeConnection, "connection"},
		{ErrCodeAuth, "auth"},
		{ErrCodeNotFound, "not_found"},
		{ErrCodeRateLimit, "rate_limit"},
		{ErrCodeValidation, "validation"},
		{ErrCodeServer, "server"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestError_Error(t *testing.T) {
	e := &Error{StatusCode: 404, Code: ErrCodeNotFound, Message: "HTTP 404"}
	want := "httpclient: not_found (HTTP 404): HTTP 404"
	if got := e.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	e2 := &Error{Code: ErrCodeConnection, Message: "connection refused"}
	want2 := "httpclient: connection: connection refused"
	if got := e2.Error(); got != want2 {
		t.Errorf("got %q, want %q", got, want2)
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := NewValidationError("bad input")
	outer := &Error{Code: ErrCodeServer, Message: "wrapped", Err: inner}
	if outer.Unwrap() != inner {
		t.Error("Unwrap did not return inner error")
	}
}

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		code    int
		wantNil bool
		errCode ErrorCode
		retry   bool
	}{
		{200, true, 0, false},
		{201, true, 0, false},
		{204, true, 0, false},
		{400, false, ErrCodeValidation, false},
		{401, false, ErrCodeAuth, false},
		{403, false, ErrCodeAuth, false},
		{404, false, ErrCodeNotFound, false},
		{429, false, ErrCodeRateLimit, true},
		{500, false, ErrCodeServer, true},
		{502, false, ErrCodeServer, true},
		{503, false, ErrCodeServer, true},
	}
	for _, tt := range tests {
		e := ClassifyStatusCode(tt.code, nil)
		if tt.wantNil {
			if e != nil {
				t.Errorf("ClassifyStatusCode(%d): expected nil, got %v", tt.code, e)
			}
			continue
		}
		if e == nil {
			t.Errorf("ClassifyStatusCode(%d): expected error, got nil", tt.code)
			continue
		}
		if e.Code != tt.errCode {
			t.Errorf("ClassifyStatusCode(%d): code = %v, want %v", tt.code, e.Code, tt.errCode)
		}
		if e.Retryable != tt.retry {
			t.Errorf("ClassifyStatusCode(%d): retryable = %v, want %v", tt.code, e.Retryable, tt.retry)
		}
	}
}

func TestHasCode(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      ErrorCode
		retryable bool
	}{
		{"timeout", NewTransportError(ErrCodeTimeout, fmt.Errorf("timed out")), ErrCodeTimeout, true},
		{"connection", NewTransportError(ErrCodeConnection, fmt.Errorf("connection refused")), ErrCodeConnection, true},
		{"auth", ClassifyStatusCode(401, nil), ErrCodeAuth, false},
		{"not found", ClassifyStatusCode(404, nil), ErrCodeNotFound, false},
		{"rate limit", ClassifyStatusCode(429, nil), ErrCodeRateLimit, true},
		{"server", ClassifyStatusCode(500, nil), ErrCodeServer, true},
		{"validation", NewValidationError("bad"), ErrCodeValidation, false},
		{"wrapped", fmt.Errorf("call: %w", ClassifyStatusCode(502, nil)), ErrCodeServer, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !HasCode(tt.err, tt.code) {
				t.Errorf("expected code %s in %v", tt.code, tt.err)
			}
			if IsRetryable(tt.err) != tt.retryable {
				t.Errorf("retryable = %v, want %v", IsRetryable(tt.err), tt.retryable)
			}
		})
	}
	if HasCode(errors.New("plain"), ErrCodeServer) {
		t.Error("plain errors carry no code")
	}
	if !IsTimeout(NewTransportError(ErrCodeTimeout, fmt.Errorf("x"))) {
		t.Error("IsTimeout should match")
	}
}

func TestToAppError(t *testing.T) {
	if ToAppError("gemini", nil) != nil {
		t.Error("nil error should map to nil")
	}

	appErr := ToAppError("gemini", ClassifyStatusCode(503, []byte("overloaded")))
	if appErr.Code != apperrors.ErrCodeExternalService {
		t.Errorf("expected EXTERNAL_SERVICE_ERROR, got %s", appErr.Code)
	}
	if appErr.HTTPStatus != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", appErr.HTTPStatus)
	}
	if appErr.Details["reason"] != "server" || appErr.Details["upstream_status"] != 503 {
		t.Errorf("unexpected details: %v", appErr.Details)
	}
	if !HasCode(appErr, ErrCodeServer) {
		t.Error("classified error should stay reachable through the chain")
	}

	conn := ToAppError("ollama", NewTransportError(ErrCodeConnection, fmt.Errorf("connection refused")))
	if conn.Details["reason"] != "connection" {
		t.Errorf("expected connection reason, got %v", conn.Details["reason"])
	}
	if _, ok := conn.Details["upstream_status"]; ok {
		t.Error("connection failures carry no upstream status")
	}

	existing := apperrors.MissingField("topic")
	if got := ToAppError("gemini", fmt.Errorf("wrap: %w", existing)); got != existing {
		t.Error("existing AppError should be returned as-is")
	}

	plain := ToAppError("gemini", errors.New("boom"))
	if _, ok := plain.Details["reason"]; ok {
		t.Error("unclassified errors carry no reason")
	}
}
