package chain

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/promptserve/llm"
	"github.com/kbukum/promptserve/observability"
)

// Mode selects the output shape of a Model.
type Mode int

const (
	// ModeChat returns a Message mapping.
	ModeChat Mode = iota
	// ModeText returns the completion as a plain string.
	ModeText
)

func (m Mode) String() string {
	if m == ModeText {
		return "text"
	}
	return "chat"
}

// Model is a Runnable that calls one model backend per invocation.
type Model struct {
	name     string
	provider llm.Provider
	mode     Mode
	metrics  *observability.Metrics
}

var _ Runnable = (*Model)(nil)

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithTokenMetrics reports token usage from each call to m.
func WithTokenMetrics(m *observability.Metrics) ModelOption {
	return func(model *Model) { model.metrics = m }
}

// NewModel wraps provider as a Runnable named name.
func NewModel(name string, provider llm.Provider, mode Mode, opts ...ModelOption) *Model {
	m := &Model{name: name, provider: provider, mode: mode}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the pipeline name.
func (m *Model) Name() string { return m.name }

// Mode returns the output mode.
func (m *Model) Mode() Mode { return m.mode }

// Invoke converts input to messages, makes one backend call and shapes the
// result according to the mode. Backend errors are returned unchanged.
func (m *Model) Invoke(ctx context.Context, input any) (any, error) {
	msgs, err := ToMessages(input)
	if err != nil {
		return nil, err
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanModelCall, trace.WithAttributes(
		attribute.String(observability.AttrPipeline, m.name),
		attribute.String("llm.provider", m.provider.Name()),
	))
	defer span.End()

	resp, err := m.provider.Execute(ctx, llm.CompletionRequest{Messages: msgs})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.String(observability.AttrModel, resp.Model),
		attribute.Int("llm.tokens.total", resp.Usage.TotalTokens),
	)
	m.metrics.RecordTokens(ctx, resp.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	if m.mode == ModeText {
		return resp.Content, nil
	}
	return messageFrom(resp), nil
}

func messageFrom(resp llm.CompletionResponse) Message {
	meta := map[string]any{"model_name": resp.Model}
	if resp.FinishReason != "" {
		meta["finish_reason"] = resp.FinishReason
	}
	msg := Message{Content: resp.Content, Type: TypeAI, ResponseMetadata: meta}
	if resp.Usage.TotalTokens > 0 {
		msg.UsageMetadata = &UsageMetadata{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}
	return msg
}

// Stream yields one chunk per backend delta: a string in text mode, an
// AIMessageChunk Message in chat mode.
func (m *Model) Stream(ctx context.Context, input any) (<-chan Chunk, error) {
	msgs, err := ToMessages(input)
	if err != nil {
		return nil, err
	}
	src, err := m.provider.Stream(ctx, llm.CompletionRequest{Messages: msgs})
	if err != nil {
		return nil, err
	}

	out := make(chan Chunk)
	go func() {
		defer close(out)
		for c := range src {
			var chunk Chunk
			switch {
			case c.Err != nil:
				chunk.Err = c.Err
			case c.Content == "":
				continue
			case m.mode == ModeText:
				chunk.Output = c.Content
			default:
				chunk.Output = Message{Content: c.Content, Type: TypeAIChunk, ResponseMetadata: map[string]any{}}
			}
			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// InputSchema accepts a string, one message object or a list of them.
func (m *Model) InputSchema() Schema {
	message := Schema{
		"type": "object",
		"properties": Schema{
			"content": Schema{"type": "string"},
			"role":    Schema{"type": "string", "enum": []string{llm.RoleUser, llm.RoleAssistant, llm.RoleSystem}},
			"type":    Schema{"type": "string", "enum": []string{TypeHuman, TypeAI, TypeSystem}},
		},
		"required": []string{"content"},
	}
	return Schema{
		"title": titleCase(m.name) + "Input",
		"anyOf": []any{
			Schema{"type": "string"},
			message,
			Schema{"type": "array", "items": Schema{"anyOf": []any{Schema{"type": "string"}, message}}},
		},
	}
}

// OutputSchema is a string in text mode and a message object in chat mode.
func (m *Model) OutputSchema() Schema {
	title := titleCase(m.name) + "Output"
	if m.mode == ModeText {
		return Schema{"title": title, "type": "string"}
	}
	return Schema{
		"title": title,
		"type":  "object",
		"properties": Schema{
			"content":           Schema{"type": "string"},
			"type":              Schema{"type": "string", "enum": []string{TypeAI, TypeAIChunk}},
			"response_metadata": Schema{"type": "object"},
			"usage_metadata":    Schema{"type": "object"},
		},
		"required": []string{"content", "type"},
	}
}
