package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/promptserve/logger"
	"github.com/kbukum/promptserve/server/middleware"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return resp.Error.Code
}

// ---------------------------------------------------------------------------
// Recovery
// ---------------------------------------------------------------------------

func TestRecovery_NoPanic(t *testing.T) {
	handler := middleware.Recovery(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestRecovery_Panic(t *testing.T) {
	handler := middleware.Recovery(logger.Nop())(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("test panic")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/essay/invoke", http.NoBody))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if code := errorCode(t, rr.Body.Bytes()); code != "INTERNAL_ERROR" {
		t.Fatalf("unexpected error code: %s", code)
	}
}

// ---------------------------------------------------------------------------
// RequestID
// ---------------------------------------------------------------------------

func TestRequestID_GeneratesID(t *testing.T) {
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.HeaderRequestID)
		if id == "" {
			t.Error("expected X-Request-Id in request headers")
		}
		if logger.RequestIDFromContext(r.Context()) != id {
			t.Error("expected request id in context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))
	if rr.Header().Get(middleware.HeaderRequestID) == "" {
		t.Error("expected X-Request-Id in response headers")
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	handler := middleware.RequestID()(http.HandlerFunc(okHandler))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", http.NoBody)
	req.Header.Set(middleware.HeaderRequestID, "custom-id-123")
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get(middleware.HeaderRequestID); got != "custom-id-123" {
		t.Fatalf("expected custom-id-123, got %s", got)
	}
}

// ---------------------------------------------------------------------------
// CORS
// ---------------------------------------------------------------------------

func TestCORS_SetHeaders(t *testing.T) {
	cfg := &middleware.CORSConfig{
		AllowedOrigins: []string{"http://localhost:8501"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
	}
	handler := middleware.CORS(cfg)(http.HandlerFunc(okHandler))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/poem/invoke", http.NoBody)
	req.Header.Set("Origin", "http://localhost:8501")
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:8501" {
		t.Fatalf("expected origin echoed, got %s", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST" {
		t.Fatalf("expected 'GET, POST', got %s", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	cfg := &middleware.CORSConfig{AllowedOrigins: []string{"*"}}
	handler := middleware.CORS(cfg)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("handler should not be called for OPTIONS preflight")
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/essay/invoke", http.NoBody)
	req.Header.Set("Origin", "http://app.local")
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for OPTIONS preflight, got %d", rr.Code)
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	cfg := &middleware.CORSConfig{AllowedOrigins: []string{"https://allowed.com"}}
	handler := middleware.CORS(cfg)(http.HandlerFunc(okHandler))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", http.NoBody)
	req.Header.Set("Origin", "https://evil.com")
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header for disallowed origin, got %s", got)
	}
}

// ---------------------------------------------------------------------------
// RequestLogger
// ---------------------------------------------------------------------------

func TestRequestLogger_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)
	handler := middleware.RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/poem/invoke", http.NoBody))

	out := buf.String()
	if !strings.Contains(out, `"status":502`) || !strings.Contains(out, `"level":"error"`) {
		t.Errorf("expected error-level log with status 502, got %s", out)
	}
}

func TestRequestLogger_SkipsHealth(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)
	called := false
	handler := middleware.RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", http.NoBody))
	if !called {
		t.Error("handler should still be called for health endpoints")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no log output for /health, got %s", buf.String())
	}
}

// ---------------------------------------------------------------------------
// BodySizeLimit
// ---------------------------------------------------------------------------

func TestBodySizeLimit_AllowsSmallBody(t *testing.T) {
	handler := middleware.BodySizeLimit("1KB")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			t.Errorf("unexpected read error: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/essay/invoke", strings.NewReader(`{"input":{"topic":"sea"}}`)))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestBodySizeLimit_RejectsDeclaredLength(t *testing.T) {
	handler := middleware.BodySizeLimit("1KB")(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("handler should not be called for an oversized body")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/essay/invoke", strings.NewReader(strings.Repeat("x", 2048))))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
}

func TestBodySizeLimit_ReadFailsPastLimit(t *testing.T) {
	var readErr error
	handler := middleware.BodySizeLimit("1KB")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/essay/invoke", strings.NewReader(strings.Repeat("x", 2048)))
	req.ContentLength = -1
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if readErr == nil {
		t.Error("expected read error past the limit")
	}
}

// ---------------------------------------------------------------------------
// RateLimit
// ---------------------------------------------------------------------------

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	handler := middleware.RateLimit(middleware.RateLimitConfig{RequestsPerMinute: 2})(http.HandlerFunc(okHandler))

	codes := make([]int, 3)
	for i := range codes {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/essay/invoke", http.NoBody)
		req.RemoteAddr = "10.0.0.1:5555"
		handler.ServeHTTP(rr, req)
		codes[i] = rr.Code
		if rr.Code == http.StatusTooManyRequests {
			if code := errorCode(t, rr.Body.Bytes()); code != "RATE_LIMITED" {
				t.Errorf("expected RATE_LIMITED, got %s", code)
			}
		}
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != 429 {
		t.Fatalf("expected [200 200 429], got %v", codes)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/essay/invoke", http.NoBody)
	req.RemoteAddr = "10.0.0.2:5555"
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("expected other client to pass, got %d", rr.Code)
	}
}

func TestRateLimit_DisabledByZero(t *testing.T) {
	handler := middleware.RateLimit(middleware.RateLimitConfig{})(http.HandlerFunc(okHandler))
	for i := 0; i < 100; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}
}

// ---------------------------------------------------------------------------
// Chain and GinWrap
// ---------------------------------------------------------------------------

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+"-before")
				next.ServeHTTP(w, r)
				order = append(order, name+"-after")
			})
		}
	}

	handler := middleware.Chain(mark("m1"), mark("m2"))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", http.NoBody))

	want := "m1-before,m2-before,handler,m2-after,m1-after"
	if got := strings.Join(order, ","); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestGinWrap_AbortsWhenMiddlewareStops(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.GinWrap(middleware.RateLimit(middleware.RateLimitConfig{RequestsPerMinute: 1})))
	hits := 0
	engine.GET("/", func(c *gin.Context) {
		hits++
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/", http.NoBody)
		req.RemoteAddr = "10.0.0.3:1"
		engine.ServeHTTP(httptest.NewRecorder(), req)
	}
	if hits != 1 {
		t.Errorf("expected handler to run once, ran %d times", hits)
	}
}

// ---------------------------------------------------------------------------
// statusWriter Flush support
// ---------------------------------------------------------------------------

type flushRecorder struct {
	http.ResponseWriter
	flushed bool
}

func (f *flushRecorder) Flush() { f.flushed = true }

func TestStatusWriter_Flush(t *testing.T) {
	fr := &flushRecorder{ResponseWriter: httptest.NewRecorder()}
	handler := middleware.RequestLogger(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(fr, httptest.NewRequest("POST", "/poem/stream", http.NoBody))
	if !fr.flushed {
		t.Error("expected Flush to be delegated to underlying writer")
	}
}
