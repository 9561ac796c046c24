// Package rest provides a JSON-focused REST client built on the HTTP adapter.
//
// It inherits auth, default headers and error classification from httpclient
// and adds typed convenience methods:
//
//	client, _ := rest.New(httpclient.Config{BaseURL: "http://localhost:8000"})
//
//	resp, err := rest.Post[map[string]any](ctx, client, "/essay/invoke", body)
//
// A 2xx response whose body does not decode is reported as *DecodeError, so
// callers can tell a malformed reply apart from a transport failure.
package rest
