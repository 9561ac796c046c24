package sse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/promptserve/logger"
)

// ErrStreamingUnsupported is returned when the ResponseWriter cannot flush.
var ErrStreamingUnsupported = errors.New("sse: streaming not supported")

// Writer sends events on one response.
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewWriter sets the event-stream headers and lifts the server write
// deadline for this response. It fails if w cannot flush.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}

	// Model streams can outlive the server's WriteTimeout.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		logger.Warn("sse: could not disable write deadline", logger.Fields(logger.FieldError, err.Error()))
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &Writer{w: w, flusher: flusher}, nil
}

// Event writes one event and flushes it. data is JSON-encoded unless it is
// a string or []byte; nil sends an empty data line.
func (w *Writer) Event(event string, data any) error {
	var payload []byte
	switch v := data.(type) {
	case nil:
	case []byte:
		payload = v
	case string:
		payload = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("sse: encode %s event: %w", event, err)
		}
		payload = b
	}

	var b strings.Builder
	if event != "" {
		b.WriteString("event: ")
		b.WriteString(event)
		b.WriteByte('\n')
	}
	// Multi-line payloads need one data field per line.
	for _, line := range strings.Split(string(payload), "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if _, err := w.w.Write([]byte(b.String())); err != nil {
		return err
	}
	w.flusher.Flush()
	return nil
}

// KeepAlive writes a comment line so proxies keep the connection open.
func (w *Writer) KeepAlive() error {
	if _, err := fmt.Fprintf(w.w, ": keepalive %d\n\n", time.Now().Unix()); err != nil {
		return err
	}
	w.flusher.Flush()
	return nil
}
