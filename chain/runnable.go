package chain

import "context"

// Runnable is one invocable pipeline.
type Runnable interface {
	// Name identifies the pipeline in logs, spans and schema titles.
	Name() string
	// Invoke runs the pipeline once and returns its output: a string or a Message.
	Invoke(ctx context.Context, input any) (any, error)
	// Stream runs the pipeline and yields partial outputs. The channel is
	// closed at the end of the stream; an error is delivered as the last chunk.
	Stream(ctx context.Context, input any) (<-chan Chunk, error)
	// InputSchema describes accepted input as JSON Schema.
	InputSchema() Schema
	// OutputSchema describes the output as JSON Schema.
	OutputSchema() Schema
}

// Chunk is one piece of a streamed output.
type Chunk struct {
	// Output has the same shape as the pipeline's Invoke output, holding
	// only the newly generated text.
	Output any
	Err    error
}

// Schema is a JSON Schema document.
type Schema map[string]any

// Message types, as they appear in the "type" field.
const (
	TypeAI      = "ai"
	TypeAIChunk = "AIMessageChunk"
	TypeHuman   = "human"
	TypeSystem  = "system"
)

// Message is the output of a chat-mode model.
type Message struct {
	Content          string         `json:"content"`
	Type             string         `json:"type"`
	ResponseMetadata map[string]any `json:"response_metadata"`
	UsageMetadata    *UsageMetadata `json:"usage_metadata,omitempty"`
}

// UsageMetadata reports token counts for one model call.
type UsageMetadata struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Text returns the text of a pipeline output: the string itself, a
// Message's content, or "" for anything else.
func Text(output any) string {
	switch v := output.(type) {
	case string:
		return v
	case Message:
		return v.Content
	case *Message:
		if v != nil {
			return v.Content
		}
	}
	return ""
}
