package observability

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/promptserve/component"
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component owns the tracer and meter providers. With no endpoint it still
// hands out Metrics, bound to the global no-op meter.
type Component struct {
	info    ServiceInfo
	config  Config
	tp      *sdktrace.TracerProvider
	mp      *sdkmetric.MeterProvider
	metrics *Metrics
}

// NewComponent creates a telemetry component.
func NewComponent(info ServiceInfo, cfg Config) *Component {
	cfg.ApplyDefaults()
	return &Component{info: info, config: cfg}
}

// Name returns the component name.
func (c *Component) Name() string { return "telemetry" }

// Start installs the providers when an endpoint is configured and creates
// the pipeline instruments.
func (c *Component) Start(ctx context.Context) error {
	if err := c.config.Validate(); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	if c.config.Enabled() {
		tp, err := InitTracer(ctx, c.info, c.config)
		if err != nil {
			return err
		}
		c.tp = tp

		mp, err := InitMeter(ctx, c.info, c.config)
		if err != nil {
			return errors.Join(err, tp.Shutdown(ctx))
		}
		c.mp = mp
	}

	m, err := NewMetrics(Meter(InstrumentationName))
	if err != nil {
		return err
	}
	c.metrics = m
	return nil
}

// Stop flushes and shuts down both providers.
func (c *Component) Stop(ctx context.Context) error {
	var errs []error
	if c.mp != nil {
		errs = append(errs, c.mp.Shutdown(ctx))
	}
	if c.tp != nil {
		errs = append(errs, c.tp.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// Health is always healthy; export failures surface in the exporter's own logs.
func (c *Component) Health(_ context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if !c.config.Enabled() {
		h.Message = "disabled"
	}
	return h
}

// Describe reports the collector endpoint.
func (c *Component) Describe() component.Description {
	details := "disabled"
	if c.config.Enabled() {
		details = fmt.Sprintf("otlp/http %s (sample %.2f)", c.config.Endpoint, c.config.SampleRate)
	}
	return component.Description{Name: "Telemetry", Type: "telemetry", Details: details}
}

// Metrics returns the pipeline instruments. Nil before Start.
func (c *Component) Metrics() *Metrics { return c.metrics }
