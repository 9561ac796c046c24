// Package server provides the HTTP server shared by both binaries: a Gin
// engine behind h2c, a handler-level middleware stack (server/middleware)
// and probe endpoints (server/endpoint).
//
// # Middleware
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation
//   - RequestLogger: request logging with status and duration
//   - CORS: cross-origin resource sharing
//   - RateLimit: optional per-client sliding window
//   - BodySizeLimit: request body size limit
//
// # Endpoints
//
//   - /health: component health aggregation
//   - /ready: readiness probe
//   - /alive: liveness probe
//   - /info: build information
package server
