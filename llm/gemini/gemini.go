// Package gemini implements the llm.Dialect for the Google Generative
// Language API (generateContent and streamGenerateContent).
package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/kbukum/promptserve/httpclient"
	"github.com/kbukum/promptserve/llm"
)

const (
	// Name is the registered dialect name.
	Name = "gemini"

	// DefaultModel is the model used when the config names none.
	DefaultModel = "gemini-2.5-flash"

	defaultBaseURL = "https://generativelanguage.googleapis.com"
	apiKeyHeader   = "x-goog-api-key"
	roleModel      = "model"
)

func init() {
	llm.RegisterDialect(Name, &Dialect{})
}

// Dialect maps llm requests to the v1beta generateContent API.
type Dialect struct{}

var _ llm.Dialect = (*Dialect)(nil)

// Name returns the dialect identifier.
func (d *Dialect) Name() string { return Name }

// DefaultBaseURL returns the public API host.
func (d *Dialect) DefaultBaseURL() string { return defaultBaseURL }

// HealthPath is empty; Gemini availability is not probed.
func (d *Dialect) HealthPath() string { return "" }

// StreamFormat is SSE because ChatPath requests alt=sse.
func (d *Dialect) StreamFormat() llm.StreamFormat { return llm.StreamSSE }

// ChatPath puts the model in the path. Streaming asks for SSE framing.
func (d *Dialect) ChatPath(model string, stream bool) string {
	if model == "" {
		model = DefaultModel
	}
	path := "/v1beta/models/" + url.PathEscape(model)
	if stream {
		return path + ":streamGenerateContent?alt=sse"
	}
	return path + ":generateContent"
}

// Auth sends the key in the x-goog-api-key header rather than the query string.
func (d *Dialect) Auth(apiKey string) *httpclient.AuthConfig {
	if apiKey == "" {
		return nil
	}
	return httpclient.APIKeyAuthHeader(apiKey, apiKeyHeader)
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type usageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type generateResponse struct {
	Candidates     []candidate   `json:"candidates"`
	UsageMetadata  usageMetadata `json:"usageMetadata"`
	ModelVersion   string        `json:"modelVersion"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

// BuildRequest folds system messages into systemInstruction and renames the
// assistant role to "model".
func (d *Dialect) BuildRequest(req llm.CompletionRequest) (any, error) {
	var system []part
	if req.SystemPrompt != "" {
		system = append(system, part{Text: req.SystemPrompt})
	}

	contents := make([]content, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case llm.RoleSystem:
			system = append(system, part{Text: m.Content})
		case llm.RoleAssistant, roleModel:
			contents = append(contents, content{Role: roleModel, Parts: []part{{Text: m.Content}}})
		case llm.RoleUser, "":
			contents = append(contents, content{Role: llm.RoleUser, Parts: []part{{Text: m.Content}}})
		default:
			return nil, fmt.Errorf("gemini: unsupported role %q", m.Role)
		}
	}
	if len(contents) == 0 {
		return nil, errors.New("gemini: at least one user or model message is required")
	}

	out := generateRequest{Contents: contents}
	if len(system) > 0 {
		out.SystemInstruction = &content{Parts: system}
	}
	if req.Temperature != 0 || req.MaxTokens != 0 {
		gc := &generationConfig{MaxOutputTokens: req.MaxTokens}
		if req.Temperature != 0 {
			t := req.Temperature
			gc.Temperature = &t
		}
		out.GenerationConfig = gc
	}
	return out, nil
}

// ParseResponse joins the text parts of the first candidate.
func (d *Dialect) ParseResponse(body []byte) (*llm.CompletionResponse, error) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("gemini: prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return nil, errors.New("gemini: response has no candidates")
	}

	c := resp.Candidates[0]
	return &llm.CompletionResponse{
		Content:      joinParts(c.Content.Parts),
		Model:        resp.ModelVersion,
		FinishReason: c.FinishReason,
		Usage: llm.Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		},
	}, nil
}

// ParseStreamChunk reads one SSE payload. Each payload is a complete
// generateContent response holding the next text delta; a finish reason ends the stream.
func (d *Dialect) ParseStreamChunk(data []byte) (string, bool, error) {
	var resp generateResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", false, fmt.Errorf("gemini: decode chunk: %w", err)
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", false, fmt.Errorf("gemini: prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", false, nil
	}
	c := resp.Candidates[0]
	return joinParts(c.Content.Parts), c.FinishReason != "", nil
}

// ErrorMessage reads {"error":{"message":...}}.
func (d *Dialect) ErrorMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &e) != nil {
		return ""
	}
	return e.Error.Message
}

func joinParts(parts []part) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
