package bootstrap

import (
	"context"
	"fmt"
)

// Hook is a lifecycle callback.
type Hook func(ctx context.Context) error

// OnStart hooks run after all components have started and before
// OnConfigure callbacks.
func (a *App[C]) OnStart(hooks ...Hook) { a.onStart = append(a.onStart, hooks...) }

// OnReady hooks run after the ready check, right before Run blocks.
func (a *App[C]) OnReady(hooks ...Hook) { a.onReady = append(a.onReady, hooks...) }

// OnStop hooks run first during shutdown, while components are still up.
func (a *App[C]) OnStop(hooks ...Hook) { a.onStop = append(a.onStop, hooks...) }

// runHooks stops at the first failing hook.
func runHooks(ctx context.Context, hooks []Hook) error {
	for i, hook := range hooks {
		if err := hook(ctx); err != nil {
			return fmt.Errorf("hook %d: %w", i, err)
		}
	}
	return nil
}
