package logger

import "context"

type contextKey string

const (
	ctxRequestID contextKey = FieldRequestID
	ctxRunID     contextKey = FieldRunID
	ctxTraceID   contextKey = FieldTraceID
	ctxSpanID    contextKey = FieldSpanID
)

// ContextWithRequestID stores the inbound request id for WithContext.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxRequestID, id)
}

// ContextWithRunID stores a pipeline run id for WithContext.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxRunID, id)
}

// ContextWithTrace stores trace and span ids for WithContext.
func ContextWithTrace(ctx context.Context, traceID, spanID string) context.Context {
	ctx = context.WithValue(ctx, ctxTraceID, traceID)
	return context.WithValue(ctx, ctxSpanID, spanID)
}

// RequestIDFromContext returns the request id stored in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	s, _ := ctx.Value(ctxRequestID).(string)
	return s
}

// RunIDFromContext returns the run id stored in ctx, or "".
func RunIDFromContext(ctx context.Context) string {
	s, _ := ctx.Value(ctxRunID).(string)
	return s
}
