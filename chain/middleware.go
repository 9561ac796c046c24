package chain

import (
	"context"
	"time"

	"github.com/kbukum/promptserve/logger"
	"github.com/kbukum/promptserve/observability"
	"github.com/kbukum/promptserve/util"
)

// Middleware wraps a Runnable with cross-cutting behavior.
type Middleware func(Runnable) Runnable

// Chain composes middlewares; the first one is outermost.
//
// Chain(a, b)(r) is equivalent to a(b(r)).
func Chain(middlewares ...Middleware) Middleware {
	return func(inner Runnable) Runnable {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// wrapped forwards the metadata methods to the inner Runnable.
type wrapped struct {
	inner Runnable
}

func (w wrapped) Name() string         { return w.inner.Name() }
func (w wrapped) InputSchema() Schema  { return w.inner.InputSchema() }
func (w wrapped) OutputSchema() Schema { return w.inner.OutputSchema() }

// WithTracing runs every invocation inside a chain.invoke span (chain.stream
// for streams) and records the pipeline metrics. The run id is read from
// the context; see logger.ContextWithRunID.
func WithTracing(metrics *observability.Metrics) Middleware {
	return func(inner Runnable) Runnable {
		return &tracing{wrapped: wrapped{inner}, metrics: metrics}
	}
}

type tracing struct {
	wrapped
	metrics *observability.Metrics
}

func (t *tracing) Invoke(ctx context.Context, input any) (out any, err error) {
	ctx, op := observability.StartOperation(ctx, observability.SpanChainInvoke, t.Name(), logger.RunIDFromContext(ctx), t.metrics)
	defer func() { op.End(ctx, err) }()
	return t.inner.Invoke(ctx, input)
}

func (t *tracing) Stream(ctx context.Context, input any) (<-chan Chunk, error) {
	ctx, op := observability.StartOperation(ctx, observability.SpanChainStream, t.Name(), logger.RunIDFromContext(ctx), t.metrics)
	src, err := t.inner.Stream(ctx, input)
	if err != nil {
		op.End(ctx, err)
		return nil, err
	}

	out := make(chan Chunk)
	go func() {
		defer close(out)
		var streamErr error
		defer func() { op.End(ctx, streamErr) }()
		for c := range src {
			if c.Err != nil {
				streamErr = c.Err
			}
			select {
			case out <- c:
			case <-ctx.Done():
				streamErr = ctx.Err()
				return
			}
		}
	}()
	return out, nil
}

const previewRunes = 80

// WithLogging logs each invocation with its run id and duration. Failures
// are logged at error level.
func WithLogging(log *logger.Logger) Middleware {
	return func(inner Runnable) Runnable {
		return &logging{wrapped: wrapped{inner}, log: log}
	}
}

type logging struct {
	wrapped
	log *logger.Logger
}

func (l *logging) Invoke(ctx context.Context, input any) (any, error) {
	start := time.Now()
	out, err := l.inner.Invoke(ctx, input)
	l.done(ctx, "invoke", start, err, "output_preview", util.Preview(Text(out), previewRunes))
	return out, err
}

func (l *logging) Stream(ctx context.Context, input any) (<-chan Chunk, error) {
	start := time.Now()
	src, err := l.inner.Stream(ctx, input)
	if err != nil {
		l.done(ctx, "stream", start, err)
		return nil, err
	}

	out := make(chan Chunk)
	go func() {
		defer close(out)
		var streamErr error
		defer func() { l.done(ctx, "stream", start, streamErr) }()
		for c := range src {
			if c.Err != nil {
				streamErr = c.Err
			}
			select {
			case out <- c:
			case <-ctx.Done():
				streamErr = ctx.Err()
				return
			}
		}
	}()
	return out, nil
}

func (l *logging) done(ctx context.Context, op string, start time.Time, err error, kvs ...any) {
	fields := logger.DurationFields(op, time.Since(start))
	for k, v := range logger.Fields(kvs...) {
		fields[k] = v
	}
	fields["pipeline"] = l.Name()
	log := l.log.WithContext(ctx)
	if err != nil {
		fields[logger.FieldError] = err.Error()
		log.Error("pipeline failed", fields)
		return
	}
	log.Info("pipeline completed", fields)
}
