package llm

import (
	"bufio"
	"context"
	"io"

	apperrors "github.com/kbukum/promptserve/errors"
	"github.com/kbukum/promptserve/httpclient"
	"github.com/kbukum/promptserve/httpclient/sse"
)

const maxNDJSONLine = 1 << 20

// readStream dispatches to the appropriate stream reader based on the dialect's format.
func (a *Adapter) readStream(ctx context.Context, resp *httpclient.StreamResponse, ch chan<- StreamChunk) {
	defer close(ch)
	defer func() { _ = resp.Close() }()

	switch a.dialect.StreamFormat() {
	case StreamSSE:
		a.readSSEStream(ctx, resp.SSE, ch)
	case StreamNDJSON:
		a.readNDJSONStream(ctx, resp.Body, ch)
	}
}

func (a *Adapter) readSSEStream(ctx context.Context, reader sse.Reader, ch chan<- StreamChunk) {
	if reader == nil {
		a.sendErr(ctx, ch, ErrNoSSEReader)
		return
	}

	for {
		event, err := reader.Next()
		if err != nil {
			if err != io.EOF {
				a.sendErr(ctx, ch, httpclient.ToAppError(a.name, httpclient.NewTransportError(httpclient.ErrCodeConnection, err)))
			}
			return
		}
		if event.Data == "" {
			continue
		}
		if !a.emit(ctx, ch, []byte(event.Data)) {
			return
		}
	}
}

func (a *Adapter) readNDJSONStream(ctx context.Context, body io.ReadCloser, ch chan<- StreamChunk) {
	if body == nil {
		a.sendErr(ctx, ch, ErrNoStreamBody)
		return
	}

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxNDJSONLine)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !a.emit(ctx, ch, line) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		a.sendErr(ctx, ch, httpclient.ToAppError(a.name, httpclient.NewTransportError(httpclient.ErrCodeConnection, err)))
	}
}

// emit parses one chunk and forwards it. It reports whether reading should continue.
func (a *Adapter) emit(ctx context.Context, ch chan<- StreamChunk, data []byte) bool {
	content, done, err := a.dialect.ParseStreamChunk(data)
	if err != nil {
		a.sendErr(ctx, ch, apperrors.MalformedResponse(a.name, err))
		return false
	}
	select {
	case ch <- StreamChunk{Content: content, Done: done}:
	case <-ctx.Done():
		return false
	}
	return !done
}

// sendErr delivers a terminal error unless the consumer has gone away.
func (a *Adapter) sendErr(ctx context.Context, ch chan<- StreamChunk, err error) {
	select {
	case ch <- StreamChunk{Err: err}:
	case <-ctx.Done():
	}
}
