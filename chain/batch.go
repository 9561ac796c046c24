package chain

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kbukum/promptserve/logger"
)

// BatchOption configures Batch.
type BatchOption func(*batchOptions)

type batchOptions struct {
	runIDs []string
}

// WithRunIDs tags the i-th invocation's context with runIDs[i].
func WithRunIDs(runIDs []string) BatchOption {
	return func(o *batchOptions) { o.runIDs = runIDs }
}

// Batch invokes r once per input concurrently. Outputs keep the order of
// inputs. The first failure cancels the remaining calls and is returned.
func Batch(ctx context.Context, r Runnable, inputs []any, opts ...BatchOption) ([]any, error) {
	var o batchOptions
	for _, opt := range opts {
		opt(&o)
	}

	outputs := make([]any, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		ictx := gctx
		if i < len(o.runIDs) {
			ictx = logger.ContextWithRunID(gctx, o.runIDs[i])
		}
		g.Go(func() error {
			out, err := r.Invoke(ictx, in)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
