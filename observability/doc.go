// Package observability wires OpenTelemetry tracing and metrics for the
// serving front. Export is over OTLP/HTTP and is switched on by setting
// telemetry.endpoint; without it spans and instruments go to the global
// no-op providers.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, info, cfg)
//	defer tp.Shutdown(ctx)
//
//	ctx, op := observability.StartOperation(ctx, observability.SpanChainInvoke, "essay", runID, metrics)
//	defer func() { op.End(ctx, err) }()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, info, cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter(observability.InstrumentationName))
//	metrics.RecordInvokeEnd(ctx, "essay", "ok", duration)
//
// Both are usually managed by Component, which is registered with the
// application lifecycle.
package observability
