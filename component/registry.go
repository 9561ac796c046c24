package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/promptserve/logger"
)

// stopTimeout bounds each component's Stop within the caller's deadline.
const stopTimeout = 10 * time.Second

type slot struct {
	c       Component
	running bool
}

// Registry starts components in registration order and stops them in
// reverse. Register dependencies first.
type Registry struct {
	mu     sync.RWMutex
	slots  []*slot
	byName map[string]*slot
	log    *logger.Logger
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*slot),
		log:    logger.GetGlobalLogger().WithComponent("component"),
	}
}

// Register fails if a component with the same name exists.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("component %s already registered", name)
	}
	s := &slot{c: c}
	r.slots = append(r.slots, s)
	r.byName[name] = s
	r.log.Debug("Component registered", logger.Fields(logger.FieldComponent, name))
	return nil
}

// StartAll starts every component not yet running and stops at the first
// failure. What did start stays running for StopAll.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Info("Starting all components", logger.Fields("count", len(r.slots)))
	for _, s := range r.slots {
		if err := r.start(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Start starts one registered component; it is a no-op if it already runs.
// Components that need the others configured first are started this way.
func (r *Registry) Start(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("component %s not registered", name)
	}
	return r.start(ctx, s)
}

func (r *Registry) start(ctx context.Context, s *slot) error {
	if s.running {
		return nil
	}
	name := s.c.Name()
	if err := s.c.Start(ctx); err != nil {
		r.log.Error("Component start failed", logger.Fields(logger.FieldComponent, name, logger.FieldError, err.Error()))
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	s.running = true
	r.log.Debug("Component started", logger.Fields(logger.FieldComponent, name))
	return nil
}

// StopAll stops running components in reverse registration order and
// joins their errors.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for i := len(r.slots) - 1; i >= 0; i-- {
		s := r.slots[i]
		if !s.running {
			continue
		}
		if err := r.stop(ctx, s.c); err != nil {
			errs = append(errs, err)
		}
		s.running = false
	}
	return errors.Join(errs...)
}

func (r *Registry) stop(ctx context.Context, c Component) error {
	ctx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()

	name := c.Name()
	if err := c.Stop(ctx); err != nil {
		r.log.Error("Component stop failed", logger.Fields(logger.FieldComponent, name, logger.FieldError, err.Error()))
		return fmt.Errorf("failed to stop %s: %w", name, err)
	}
	r.log.Info("Component stopped", logger.Fields(logger.FieldComponent, name))
	return nil
}

// HealthAll asks every registered component, running or not.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	out := make([]Health, 0)
	for _, c := range r.All() {
		out = append(out, c.Health(ctx))
	}
	return out
}

// Get returns the named component or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.byName[name]; ok {
		return s.c
	}
	return nil
}

// All lists components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Component, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.c
	}
	return out
}
