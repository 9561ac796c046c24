package httpclient

import (
	"io"

	"github.com/kbukum/promptserve/httpclient/sse"
)

// Request is one outbound call.
type Request struct {
	Method string
	// Path is joined onto the adapter's BaseURL unless it is an absolute URL.
	Path string
	// Headers override the adapter's default headers.
	Headers map[string]string
	Query   map[string]string
	// Body may be an io.Reader, []byte, string, or any JSON-encodable value.
	Body any
	// Auth replaces the adapter's auth for this call.
	Auth *AuthConfig
}

// Response is the result of an HTTP request.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}


// StreamResponse is an open streaming response. SSE is set for
// text/event-stream bodies, Body for everything else (NDJSON).
type StreamResponse struct {
	StatusCode int
	Headers    map[string]string
	SSE        sse.Reader
	Body       io.ReadCloser
}

// Close closes the underlying body.
func (r *StreamResponse) Close() error {
	switch {
	case r.SSE != nil:
		return r.SSE.Close()
	case r.Body != nil:
		return r.Body.Close()
	}
	return nil
}
