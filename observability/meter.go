package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/promptserve/logger"
)

// InitMeter installs a global meter provider pushing to cfg.Endpoint every
// cfg.ExportInterval. The caller shuts it down on exit.
func InitMeter(ctx context.Context, info ServiceInfo, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(info)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.ExportInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.ExportInterval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", info.Name,
		"endpoint", cfg.Endpoint,
		"interval", cfg.ExportInterval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the pipeline instruments. A nil *Metrics records nothing.
type Metrics struct {
	invokeTotal    metric.Int64Counter
	invokeDuration metric.Float64Histogram
	invokeActive   metric.Int64UpDownCounter
	errorTotal     metric.Int64Counter
	tokenTotal     metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	invokeTotal, err := meter.Int64Counter("pipeline.invoke.total",
		metric.WithDescription("Pipeline invocations by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.invoke.total counter: %w", err)
	}

	invokeDuration, err := meter.Float64Histogram("pipeline.invoke.duration",
		metric.WithDescription("Duration of pipeline invocations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.invoke.duration histogram: %w", err)
	}

	invokeActive, err := meter.Int64UpDownCounter("pipeline.invoke.active",
		metric.WithDescription("Invocations currently waiting on a model"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.invoke.active gauge: %w", err)
	}

	errorTotal, err := meter.Int64Counter("pipeline.error.total",
		metric.WithDescription("Failed invocations by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.error.total counter: %w", err)
	}

	tokenTotal, err := meter.Int64Counter("llm.token.total",
		metric.WithDescription("Tokens reported by model backends"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating llm.token.total counter: %w", err)
	}

	return &Metrics{
		invokeTotal:    invokeTotal,
		invokeDuration: invokeDuration,
		invokeActive:   invokeActive,
		errorTotal:     errorTotal,
		tokenTotal:     tokenTotal,
	}, nil
}

// RecordInvokeStart increments the active invocation count.
func (m *Metrics) RecordInvokeStart(ctx context.Context, pipeline string) {
	if m == nil {
		return
	}
	m.invokeActive.Add(ctx, 1, metric.WithAttributes(attribute.String("pipeline", pipeline)))
}

// RecordInvokeEnd decrements active invocations and records the outcome.
func (m *Metrics) RecordInvokeEnd(ctx context.Context, pipeline, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.invokeActive.Add(ctx, -1, metric.WithAttributes(attribute.String("pipeline", pipeline)))
	m.invokeTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("status", status),
	))
	m.invokeDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("pipeline", pipeline),
	))
}

// RecordError counts a failure by error code.
func (m *Metrics) RecordError(ctx context.Context, pipeline, code string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("code", code),
	))
}

// RecordTokens adds prompt and completion token counts. Zero counts are skipped.
func (m *Metrics) RecordTokens(ctx context.Context, model string, prompt, completion int) {
	if m == nil {
		return
	}
	if prompt > 0 {
		m.tokenTotal.Add(ctx, int64(prompt), metric.WithAttributes(
			attribute.String("model", model),
			attribute.String("kind", "prompt"),
		))
	}
	if completion > 0 {
		m.tokenTotal.Add(ctx, int64(completion), metric.WithAttributes(
			attribute.String("model", model),
			attribute.String("kind", "completion"),
		))
	}
}
