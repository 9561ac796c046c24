// Package component defines the lifecycle interfaces shared by the HTTP
// server, the model backends and the telemetry exporters.
//
// Components are registered with a Registry, started in registration order,
// stopped in reverse, and report health for the /health endpoint.
package component
