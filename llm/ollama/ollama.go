// Package ollama implements the llm.Dialect for a local Ollama server's
// native chat API.
package ollama

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kbukum/promptserve/httpclient"
	"github.com/kbukum/promptserve/llm"
)

const (
	// Name is the registered dialect name.
	Name = "ollama"

	// DefaultModel is the model used when the request names none.
	DefaultModel = "llama3.2"

	defaultBaseURL = "http://localhost:11434"
)

func init() {
	llm.RegisterDialect(Name, &Dialect{})
}

// Dialect maps llm requests to POST /api/chat.
type Dialect struct{}

var _ llm.Dialect = (*Dialect)(nil)

// Name returns the dialect identifier.
func (d *Dialect) Name() string { return Name }

// DefaultBaseURL returns Ollama's default listen address.
func (d *Dialect) DefaultBaseURL() string { return defaultBaseURL }

// ChatPath is the same for blocking and streaming calls; the body's stream flag decides.
func (d *Dialect) ChatPath(string, bool) string { return "/api/chat" }

// HealthPath lists local models, which answers as soon as the server is up.
func (d *Dialect) HealthPath() string { return "/api/tags" }

// StreamFormat is NDJSON, one chat response object per line.
func (d *Dialect) StreamFormat() llm.StreamFormat { return llm.StreamNDJSON }

// Auth returns a bearer token for servers behind an authenticating proxy.
func (d *Dialect) Auth(apiKey string) *httpclient.AuthConfig {
	if apiKey == "" {
		return nil
	}
	return httpclient.BearerAuth(apiKey)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type options struct {
	Temperature *float64 `json:"temperature,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   any           `json:"format,omitempty"`
	Options  *options      `json:"options,omitempty"`
}

type chatResponse struct {
	Model           string      `json:"model"`
	Message         chatMessage `json:"message"`
	Done            bool        `json:"done"`
	DoneReason      string      `json:"done_reason,omitempty"`
	PromptEvalCount int         `json:"prompt_eval_count,omitempty"`
	EvalCount       int         `json:"eval_count,omitempty"`
	Error           string      `json:"error,omitempty"`
}

// BuildRequest maps the request to a chat call. Sampling settings go under
// "options"; Extra["format"] is passed through for JSON mode.
func (d *Dialect) BuildRequest(req llm.CompletionRequest) (any, error) {
	msgs := make([]chatMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		msgs = append(msgs, chatMessage{Role: llm.RoleSystem, Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		role := m.Role
		if role == "" {
			role = llm.RoleUser
		}
		msgs = append(msgs, chatMessage{Role: role, Content: m.Content})
	}
	if len(msgs) == 0 {
		return nil, errors.New("ollama: at least one message is required")
	}

	model := req.Model
	if model == "" {
		model = DefaultModel
	}
	out := chatRequest{Model: model, Messages: msgs, Stream: req.Stream}
	if format, ok := req.Extra["format"]; ok {
		out.Format = format
	}
	if req.Temperature != 0 || req.MaxTokens != 0 {
		opts := &options{NumPredict: req.MaxTokens}
		if req.Temperature != 0 {
			t := req.Temperature
			opts.Temperature = &t
		}
		out.Options = opts
	}
	return out, nil
}

// ParseResponse maps a non-streamed chat response.
func (d *Dialect) ParseResponse(body []byte) (*llm.CompletionResponse, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ollama: decode response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("ollama: %s", resp.Error)
	}
	return &llm.CompletionResponse{
		Content:      resp.Message.Content,
		Model:        resp.Model,
		FinishReason: resp.DoneReason,
		Usage: llm.Usage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		},
	}, nil
}

// ParseStreamChunk reads one NDJSON line. An in-band error ends the stream.
func (d *Dialect) ParseStreamChunk(data []byte) (string, bool, error) {
	var resp chatResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", false, fmt.Errorf("ollama: decode chunk: %w", err)
	}
	if resp.Error != "" {
		return "", false, fmt.Errorf("ollama: %s", resp.Error)
	}
	return resp.Message.Content, resp.Done, nil
}

// ErrorMessage reads {"error":"..."}.
func (d *Dialect) ErrorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) != nil {
		return ""
	}
	return e.Error
}
