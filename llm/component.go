package llm

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kbukum/promptserve/component"
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component wraps an Adapter with lifecycle management and health reporting.
// The adapter is created in Start.
type Component struct {
	config  Config
	adapter *Adapter
}

// NewComponent creates an LLM component from config.
func NewComponent(cfg Config) *Component {
	cfg.ApplyDefaults()
	return &Component{config: cfg}
}

// Name returns the component name.
func (c *Component) Name() string { return c.config.Name }

// Start creates the adapter. A backend that is not reachable yet does not
// fail startup; it shows up in Health instead.
func (c *Component) Start(_ context.Context) error {
	a, err := New(c.config)
	if err != nil {
		return fmt.Errorf("llm %s: %w", c.config.Name, err)
	}
	c.adapter = a
	return nil
}

// Stop closes the adapter.
func (c *Component) Stop(ctx context.Context) error {
	if c.adapter == nil {
		return nil
	}
	return c.adapter.Close(ctx)
}

// Health probes the provider's health endpoint, when the dialect has one.
func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if c.adapter == nil {
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
		return h
	}
	if err := c.adapter.Ping(ctx); err != nil {
		h.Status = component.StatusUnhealthy
		h.Message = err.Error()
	}
	return h
}

// Describe returns the model and host for the startup summary.
func (c *Component) Describe() component.Description {
	base := c.config.BaseURL
	if c.adapter != nil {
		base = c.adapter.BaseURL()
	}
	host := base
	if u, err := url.Parse(base); err == nil && u.Host != "" {
		host = u.Host
	}
	return component.Description{
		Name:    c.Name(),
		Type:    "llm",
		Details: fmt.Sprintf("%s @ %s", c.config.Model, host),
	}
}

// Adapter returns the underlying adapter. Must be called after Start.
func (c *Component) Adapter() *Adapter {
	return c.adapter
}
