package rest

import (
	"context"
	"encoding/json"
	"maps"
	"net/http"

	"github.com/kbukum/promptserve/httpclient"
)

// Client sends and receives JSON over an httpclient.Adapter.
type Client struct {
	http *httpclient.Adapter
}

// New builds the adapter with JSON Content-Type and Accept headers unless
// cfg sets its own.
func New(cfg httpclient.Config) (*Client, error) {
	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	maps.Copy(headers, cfg.Headers)
	cfg.Headers = headers

	a, err := httpclient.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{http: a}, nil
}

// HTTP exposes the adapter for streaming and lifecycle calls.
func (c *Client) HTTP() *httpclient.Adapter { return c.http }

// RequestOption adjusts one request.
type RequestOption func(*httpclient.Request)

// WithHeaders sets per-request headers on top of the client defaults.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *httpclient.Request) { r.Headers = headers }
}

// Response is a decoded reply.
type Response[T any] struct {
	StatusCode int
	Headers    map[string]string
	Data       T
}

func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*Response[T], error) {
	return send[T](ctx, c, httpclient.Request{Method: http.MethodGet, Path: path}, opts)
}

func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*Response[T], error) {
	return send[T](ctx, c, httpclient.Request{Method: http.MethodPost, Path: path, Body: body}, opts)
}

// send decodes the body into T. On a status error the response is returned
// with the error when the error body happens to decode as T; a 2xx body
// that does not decode is a *DecodeError.
func send[T any](ctx context.Context, c *Client, req httpclient.Request, opts []RequestOption) (*Response[T], error) {
	for _, opt := range opts {
		opt(&req)
	}

	resp, err := c.http.Do(ctx, req)
	if resp == nil {
		return nil, err
	}
	var data T
	decodeErr := json.Unmarshal(resp.Body, &data)
	out := &Response[T]{StatusCode: resp.StatusCode, Headers: resp.Headers, Data: data}
	switch {
	case err != nil && decodeErr == nil:
		return out, err
	case err != nil:
		return nil, err
	case decodeErr != nil:
		return nil, &DecodeError{StatusCode: resp.StatusCode, Body: resp.Body, Err: decodeErr}
	}
	return out, nil
}
