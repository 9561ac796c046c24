// Package sse writes Server-Sent Events to an HTTP response.
//
// A stream handler opens a Writer, sends one event per output chunk and
// finishes with an end event:
//
//	w, err := sse.NewWriter(c.Writer)
//	w.Event(sse.EventMetadata, map[string]string{"run_id": id})
//	for chunk := range chunks {
//	    w.Event(sse.EventData, chunk)
//	}
//	w.Event(sse.EventEnd, nil)
//
// The reading side lives in httpclient/sse.
package sse
