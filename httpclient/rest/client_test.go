package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/promptserve/httpclient"
)

type invokeResponse struct {
	Output   string         `json:"output"`
	Metadata map[string]any `json:"metadata"`
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if ct := r.Header.Get("Accept"); ct != "application/json" {
			t.Errorf("expected Accept: application/json, got %s", ct)
		}
		json.NewEncoder(w).Encode(map[string]string{"type": "object"})
	}))
	defer srv.Close()

	c, err := New(httpclient.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := Get[map[string]string](context.Background(), c, "/essay/input_schema")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Data["type"] != "object" {
		t.Errorf("expected object, got %s", resp.Data["type"])
	}
}

func TestPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var body map[string]map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(invokeResponse{Output: "about " + body["input"]["topic"]})
	}))
	defer srv.Close()

	c, err := New(httpclient.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := map[string]any{"input": map[string]string{"topic": "the sea"}}
	resp, err := Post[invokeResponse](context.Background(), c, "/poem/invoke", body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Data.Output != "about the sea" {
		t.Errorf("unexpected output %q", resp.Data.Output)
	}
}

func TestNew_KeepsCallerHeaders(t *testing.T) {
	headers := map[string]string{"Accept": "text/plain"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "text/plain" {
			t.Errorf("expected caller Accept header, got %q", got)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := New(httpclient.Config{BaseURL: srv.URL, Headers: headers})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Get[map[string]any](context.Background(), c, "/"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headers) != 1 {
		t.Error("caller's header map should not be mutated")
	}
}

func TestWithHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Request-Id"); got != "abc-123" {
			t.Errorf("expected X-Request-Id=abc-123, got %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected default Accept header kept, got %q", got)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := New(httpclient.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = Get[map[string]any](context.Background(), c, "/", WithHeaders(map[string]string{"X-Request-Id": "abc-123"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_HeaderOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "text/event-stream" {
			t.Errorf("expected configured Accept to win, got %q", got)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := New(httpclient.Config{BaseURL: srv.URL, Headers: map[string]string{"Accept": "text/event-stream"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Get[map[string]any](context.Background(), c, "/"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPost_MalformedBody(t *testing.T) {
	tests := map[string]string{
		"not json": "<html>oops</html>",
		"empty":    "",
		"array":    `[1,2]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			c, err := New(httpclient.Config{BaseURL: srv.URL})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_, err = Post[map[string]any](context.Background(), c, "/", map[string]any{})
			if !IsDecode(err) {
				t.Fatalf("expected decode error, got %v", err)
			}
		})
	}
}

func TestGet_ErrorResponse_StillDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	}))
	defer srv.Close()

	c, err := New(httpclient.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := Get[map[string]string](context.Background(), c, "/nope")
	if !httpclient.HasCode(err, httpclient.ErrCodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if IsDecode(err) {
		t.Error("status errors are not decode errors")
	}
	if resp == nil || resp.Data["error"] != "not found" {
		t.Errorf("expected decoded error body, got %+v", resp)
	}
}
