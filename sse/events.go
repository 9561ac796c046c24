package sse

// Event names sent on pipeline streams.
const (
	// EventMetadata opens a stream and carries the run id.
	EventMetadata = "metadata"

	// EventData carries one output chunk.
	EventData = "data"

	// EventError carries the error envelope and ends the stream.
	EventError = "error"

	// EventEnd marks a stream that completed normally.
	EventEnd = "end"
)
