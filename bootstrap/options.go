package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/promptserve/logger"
)

// Option configures NewApp.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout time.Duration
	summaryOut      io.Writer
}

// WithLogger replaces the logger NewApp would build from the config's
// logging section. It also becomes the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithGracefulTimeout bounds the whole shutdown; the default is 15s.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) { o.gracefulTimeout = d }
}

// WithSummaryOutput sends the startup summary to w instead of stdout.
func WithSummaryOutput(w io.Writer) Option {
	return func(o *appOptions) { o.summaryOut = w }
}
