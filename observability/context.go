package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/promptserve/errors"
)

// Operation tracks one pipeline run: its span, its timing and the metric
// instruments it reports to.
type Operation struct {
	Pipeline  string
	RunID     string
	StartTime time.Time

	span    trace.Span
	metrics *Metrics
}

type operationContextKey struct{}

// StartOperation starts a span named spanName and counts the run as active.
// metrics may be nil.
func StartOperation(ctx context.Context, spanName, pipeline, runID string, metrics *Metrics) (context.Context, *Operation) {
	ctx, span := StartSpan(ctx, spanName, trace.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
		attribute.String(AttrRunID, runID),
	))
	op := &Operation{
		Pipeline:  pipeline,
		RunID:     runID,
		StartTime: time.Now(),
		span:      span,
		metrics:   metrics,
	}
	metrics.RecordInvokeStart(ctx, pipeline)
	return context.WithValue(ctx, operationContextKey{}, op), op
}

// OperationFromContext returns the Operation started on ctx, or nil.
func OperationFromContext(ctx context.Context) *Operation {
	if op, ok := ctx.Value(operationContextKey{}).(*Operation); ok {
		return op
	}
	return nil
}

// End closes the span and records the outcome. err decides the status;
// AppErrors contribute their code.
func (op *Operation) End(ctx context.Context, err error) {
	duration := op.Duration()
	status := "ok"

	if err != nil {
		status = "error"
		code := string(apperrors.ErrCodeInternal)
		if appErr, ok := apperrors.AsAppError(err); ok {
			code = string(appErr.Code)
		}
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, err.Error())
		op.span.SetAttributes(
			attribute.String(AttrErrorCode, code),
			attribute.String(AttrErrorMessage, err.Error()),
		)
		op.metrics.RecordError(ctx, op.Pipeline, code)
	}

	op.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	op.span.End()

	op.metrics.RecordInvokeEnd(ctx, op.Pipeline, status, duration)
}

// Span returns the operation's span.
func (op *Operation) Span() trace.Span { return op.span }

// Duration returns the elapsed time since the operation started.
func (op *Operation) Duration() time.Duration {
	return time.Since(op.StartTime)
}
