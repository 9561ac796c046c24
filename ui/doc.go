// Package ui serves the writer's browser page: an Essay panel and a Poem
// panel, each with one topic input. A submission calls the serving front
// through client.Call and renders that panel's outcome.
//
// Routes:
//
//	GET  /       both panels, empty
//	POST /essay  essay panel with a result, warning or error notice
//	POST /poem   poem panel with a result, warning or error notice
package ui
