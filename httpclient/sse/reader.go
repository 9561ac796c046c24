// Package sse decodes text/event-stream response bodies.
package sse

import (
	"bufio"
	"io"
	"strings"
)

// Event is one dispatched server-sent event.
type Event struct {
	// Event is the "event:" type; empty for plain data events.
	Event string
	// Data joins the event's "data:" lines with "\n".
	Data string
	ID   string
}

// Reader yields events until io.EOF.
type Reader interface {
	Next() (*Event, error)
	Close() error
}

// maxLineSize bounds one line; streamed model candidates can exceed
// bufio's 64KB default.
const maxLineSize = 1 << 20

type streamReader struct {
	body  io.ReadCloser
	lines *bufio.Scanner
}

// NewReader decodes events from body. Closing the reader closes body.
func NewReader(body io.ReadCloser) Reader {
	lines := bufio.NewScanner(body)
	lines.Buffer(nil, maxLineSize)
	return &streamReader{body: body, lines: lines}
}

// Next returns the next event that carries data. Events with no data lines
// are dropped, and a final event cut off by EOF is still returned.
func (r *streamReader) Next() (*Event, error) {
	var (
		ev   Event
		data []string
	)
	for r.lines.Scan() {
		line := r.lines.Text()
		if line == "" {
			if data != nil {
				ev.Data = strings.Join(data, "\n")
				return &ev, nil
			}
			ev = Event{}
			continue
		}
		name, value := splitField(line)
		switch name {
		case "":
			// comment line
		case "data":
			data = append(data, value)
		case "event":
			ev.Event = value
		case "id":
			ev.ID = value
		}
	}
	if err := r.lines.Err(); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, io.EOF
	}
	ev.Data = strings.Join(data, "\n")
	return &ev, nil
}

func (r *streamReader) Close() error { return r.body.Close() }

// splitField splits "name: value". A line without a colon is a field with
// an empty value; a line starting with a colon has an empty name.
func splitField(line string) (name, value string) {
	name, value, _ = strings.Cut(line, ":")
	return name, strings.TrimPrefix(value, " ")
}
