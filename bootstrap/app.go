package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kbukum/promptserve/component"
	"github.com/kbukum/promptserve/logger"
)

const defaultGracefulTimeout = 15 * time.Second

// App owns one binary's components and lifecycle hooks. C is the binary's
// config type.
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger
	Summary    *Summary

	gracefulTimeout time.Duration
	onConfigure     []func(ctx context.Context, app *App[C]) error
	onStart         []Hook
	onReady         []Hook
	onStop          []Hook
}

// NewApp applies defaults to cfg and validates it. A validation error is a
// startup configuration error: nothing has been started and the caller
// should exit non-zero.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.GetServiceConfig()

	o := appOptions{gracefulTimeout: defaultGracefulTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		logger.Init(&base.Logging)
		o.logger = logger.GetGlobalLogger()
	} else {
		logger.SetGlobalLogger(o.logger)
	}

	summary := NewSummary(base.Name, base.Version)
	if o.summaryOut != nil {
		summary.out = o.summaryOut
	}
	return &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(),
		Logger:          o.logger,
		Summary:         summary,
		gracefulTimeout: o.gracefulTimeout,
	}, nil
}

func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// StartComponent registers c and starts it immediately. It is meant for
// OnConfigure callbacks, e.g. an HTTP server that must not listen before
// its routes are mounted.
func (a *App[C]) StartComponent(ctx context.Context, c component.Component) error {
	if err := a.Components.Register(c); err != nil {
		return err
	}
	return a.Components.Start(ctx, c.Name())
}

// OnConfigure adds a callback that runs once registered components have
// started. Routes and pipelines are wired here.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// ReadyCheck fails if any component reports other than healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var bad []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status == component.StatusHealthy {
			continue
		}
		s := h.Name + "=" + string(h.Status)
		if h.Message != "" {
			s += "(" + h.Message + ")"
		}
		bad = append(bad, s)
	}
	if len(bad) == 0 {
		return nil
	}
	return fmt.Errorf("unhealthy components: [%s]", strings.Join(bad, " "))
}

// Run starts everything, blocks until SIGINT, SIGTERM or ctx is done, then
// stops everything. A failed startup still stops what did start.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		if stopErr := a.stop(); stopErr != nil {
			a.Logger.Error("Cleanup after failed startup", logger.ErrorFields("stop", stopErr))
		}
		return err
	}
	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)
	return a.stop()
}

func (a *App[C]) startup(ctx context.Context) error {
	began := time.Now()
	a.Logger.Info("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	phases := []struct {
		name string
		run  func(context.Context) error
	}{
		{"initialization", a.Components.StartAll},
		{"onStart hook", func(ctx context.Context) error { return runHooks(ctx, a.onStart) }},
		{"configuration", a.configure},
		{"ready check", func(ctx context.Context) error {
			// A local model that is not running yet only degrades its own routes.
			if err := a.ReadyCheck(ctx); err != nil {
				a.Logger.Warn("Ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
			}
			return nil
		}},
		{"onReady hook", func(ctx context.Context) error { return runHooks(ctx, a.onReady) }},
	}
	for _, p := range phases {
		if err := p.run(ctx); err != nil {
			return fmt.Errorf("%s failed: %w", p.name, err)
		}
	}

	a.Summary.SetStartupDuration(time.Since(began))
	a.Summary.Display(ctx, a.Components)
	return nil
}

func (a *App[C]) configure(ctx context.Context) error {
	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// WaitForSignal blocks until SIGINT or SIGTERM arrives, returning it, or
// until ctx is done, returning nil.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case sig := <-sigs:
		a.Logger.Info("Received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Shutdown stops hooks and components for callers that drive their own
// lifecycle instead of calling Run.
func (a *App[C]) Shutdown() error { return a.stop() }

// stop runs OnStop hooks, then stops components in reverse start order,
// all within the graceful timeout.
func (a *App[C]) stop() error {
	a.Logger.Info("Shutting down application", logger.Fields("timeout", a.gracefulTimeout.String()))
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	hookErr := runHooks(ctx, a.onStop)
	if hookErr != nil {
		a.Logger.Error("OnStop hook error", logger.Fields(logger.FieldError, hookErr.Error()))
	}
	stopErr := a.Components.StopAll(ctx)
	if stopErr != nil {
		a.Logger.Error("Shutdown completed with errors", logger.Fields(logger.FieldError, stopErr.Error()))
	}
	a.Logger.Info("Application shutdown complete")
	return errors.Join(hookErr, stopErr)
}
