package llm

import "context"

// Provider is what pipelines need from a model backend. *Adapter implements it.
type Provider interface {
	Name() string
	IsAvailable(ctx context.Context) bool
	Execute(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
	Stream(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error)
}

var _ Provider = (*Adapter)(nil)
