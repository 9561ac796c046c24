package httpclient

import (
	"context"

	"github.com/kbukum/promptserve/component"
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component owns an Adapter for the application lifecycle. With a
// HealthPath it doubles as a reachability probe for the remote service:
// a failed probe reports degraded, since callers still get a classified
// error for each request.
type Component struct {
	config  Config
	adapter *Adapter
}

func NewComponent(cfg Config) *Component { return &Component{config: cfg} }

// Name defaults to "http".
func (c *Component) Name() string {
	if c.config.Name != "" {
		return c.config.Name
	}
	return "http"
}

func (c *Component) Start(context.Context) error {
	a, err := New(c.config)
	if err != nil {
		return err
	}
	c.adapter = a
	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	if c.adapter == nil {
		return nil
	}
	return c.adapter.Close(ctx)
}

func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if c.adapter == nil || !c.adapter.IsAvailable(ctx) {
		h.Status, h.Message = component.StatusUnhealthy, "adapter not started"
		return h
	}
	if c.config.HealthPath == "" {
		return h
	}
	if err := c.adapter.Ping(ctx, c.config.HealthPath); err != nil {
		h.Status, h.Message = component.StatusDegraded, err.Error()
	}
	return h
}

func (c *Component) Describe() component.Description {
	return component.Description{Name: c.Name(), Type: "upstream", Details: c.config.BaseURL + c.config.HealthPath}
}

// Adapter is nil until Start.
func (c *Component) Adapter() *Adapter { return c.adapter }
