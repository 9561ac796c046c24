package llm

// Roles understood by every dialect.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single chat message.
type Message struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// CompletionRequest is the universal input for all LLM providers.
type CompletionRequest struct {
	// Model overrides the adapter's default model.
	Model string `json:"model,omitempty" yaml:"model"`
	// Messages is the conversation history.
	Messages []Message `json:"messages" yaml:"messages"`
	// SystemPrompt is prepended as a system message.
	SystemPrompt string `json:"system_prompt,omitempty" yaml:"system_prompt"`
	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature"`
	// MaxTokens limits the response length. 0 means provider default.
	MaxTokens int `json:"max_tokens,omitempty" yaml:"max_tokens"`
	// Stream requests streaming mode. Set automatically by Adapter.Stream().
	Stream bool `json:"stream,omitempty" yaml:"stream"`
	// Extra holds provider-specific fields that don't fit the universal schema.
	Extra map[string]any `json:"extra,omitempty" yaml:"extra"`
}

// CompletionResponse is the universal output from all LLM providers.
type CompletionResponse struct {
	Content      string `json:"content"`
	Model        string `json:"model"`
	FinishReason string `json:"finish_reason,omitempty"`
	Usage        Usage  `json:"usage"`
}

// StreamChunk is a single piece of a streamed response.
type StreamChunk struct {
	Content string `json:"content"`
	// Done marks the final chunk.
	Done bool `json:"done"`
	// Err is set when a streaming error occurs; it is always the last chunk.
	Err error `json:"-"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
