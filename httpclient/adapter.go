package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/kbukum/promptserve/httpclient/sse"
)

// Adapter sends requests relative to Config.BaseURL with the configured
// auth and default headers. Every call is a single attempt.
type Adapter struct {
	config Config
	client *http.Client
	// stream shares client's transport but has no overall timeout; the
	// caller's context bounds a stream instead.
	stream *http.Client
	closed atomic.Bool
}

func New(cfg Config) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Adapter{
		config: cfg,
		client: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		stream: &http.Client{Transport: transport},
	}, nil
}

func (a *Adapter) Name() string { return a.config.Name }

// IsAvailable is false once the adapter is closed.
func (a *Adapter) IsAvailable(context.Context) bool { return !a.closed.Load() }

func (a *Adapter) Config() Config { return a.config }

// Close drops idle connections; later calls fail with ErrCodeValidation.
func (a *Adapter) Close(context.Context) error {
	a.closed.Store(true)
	a.client.CloseIdleConnections()
	return nil
}

// Do sends req and reads the whole body. For a non-2xx status both the
// response and a classified *Error are returned.
func (a *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	resp, err := a.send(ctx, a.client, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(ctx, fmt.Errorf("read response body: %w", err))
	}
	out := &Response{StatusCode: resp.StatusCode, Headers: firstValues(resp.Header), Body: body}
	if statusErr := ClassifyStatusCode(resp.StatusCode, body); statusErr != nil {
		return out, statusErr
	}
	return out, nil
}

// DoStream sends req and hands back the open body, decoded as SSE when the
// server answers text/event-stream. The caller closes the result.
func (a *Adapter) DoStream(ctx context.Context, req Request) (*StreamResponse, error) {
	resp, err := a.send(ctx, a.stream, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, ClassifyStatusCode(resp.StatusCode, body)
	}

	out := &StreamResponse{StatusCode: resp.StatusCode, Headers: firstValues(resp.Header)}
	if mt, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type")); mt == "text/event-stream" {
		out.SSE = sse.NewReader(resp.Body)
	} else {
		out.Body = resp.Body
	}
	return out, nil
}

// Ping GETs path; any transport or status error is returned.
func (a *Adapter) Ping(ctx context.Context, path string) error {
	_, err := a.Do(ctx, Request{Method: http.MethodGet, Path: path})
	return err
}

func (a *Adapter) send(ctx context.Context, client *http.Client, req Request) (*http.Response, error) {
	if a.closed.Load() {
		return nil, NewValidationError("adapter closed")
	}
	httpReq, err := a.newRequest(ctx, req)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	return resp, nil
}

func (a *Adapter) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, a.resolve(req.Path), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	h := httpReq.Header
	h.Set("User-Agent", a.config.UserAgent)
	for _, set := range []map[string]string{a.config.Headers, req.Headers} {
		for k, v := range set {
			h.Set(k, v)
		}
	}
	if contentType != "" && h.Get("Content-Type") == "" {
		h.Set("Content-Type", contentType)
	}

	auth := a.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	auth.apply(httpReq)
	return httpReq, nil
}

// resolve joins path onto the base URL unless path is already absolute.
func (a *Adapter) resolve(path string) string {
	if a.config.BaseURL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(a.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// classifyTransportError tells an expired deadline apart from a refused or
// dropped connection.
func classifyTransportError(ctx context.Context, err error) *Error {
	var netErr net.Error
	if ctx.Err() != nil || (errors.As(err, &netErr) && netErr.Timeout()) {
		return NewTransportError(ErrCodeTimeout, err)
	}
	return NewTransportError(ErrCodeConnection, err)
}

// encodeBody sends readers and byte slices as-is, strings as text/plain
// and anything else as JSON.
func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}

func firstValues(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		out[k] = h.Get(k)
	}
	return out
}
