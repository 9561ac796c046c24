// Package httpclient provides a configurable HTTP adapter with built-in
// authentication, default headers, error classification and streaming
// support (SSE and raw bodies such as NDJSON).
//
// Subpackages provide protocol-specific convenience layers:
//
//   - rest: JSON-focused REST client with generic typed methods
//   - sse: Server-Sent Events reader
//
// Every call is a single attempt. Failures are returned as *Error and can be
// turned into the service error envelope with ToAppError.
//
//	a, err := httpclient.New(httpclient.Config{
//	    BaseURL: "http://localhost:11434",
//	    Timeout: 120 * time.Second,
//	})
//
//	resp, err := a.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/api/tags",
//	})
package httpclient
