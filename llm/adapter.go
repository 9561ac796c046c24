package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/kbukum/promptserve/errors"
	"github.com/kbukum/promptserve/httpclient"
	"github.com/kbukum/promptserve/httpclient/rest"
)

// Sentinel errors.
var (
	ErrNoDialect    = errors.New("llm: dialect is required")
	ErrNoSSEReader  = errors.New("llm: expected SSE stream but got no SSE reader")
	ErrNoStreamBody = errors.New("llm: expected stream body but got nil")
)

// Adapter is a config-driven LLM client that works with any provider via the
// Dialect pattern. It composes the REST client (auth, headers, timeout, error
// classification) with a Dialect that handles provider-specific mapping.
//
// Failures are returned as *errors.AppError: transport and upstream status
// errors as EXTERNAL_SERVICE_ERROR, undecodable replies as MALFORMED_RESPONSE.
// Each call is a single attempt.
type Adapter struct {
	rest      *rest.Client
	dialect   Dialect
	name      string
	model     string
	baseURL   string
	temp      float64
	maxTokens int
}

// New creates an LLM adapter from config using the global dialect registry.
// The config's Dialect field must match a registered dialect name.
func New(cfg Config) (*Adapter, error) {
	dialect, err := GetDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	return newAdapter(dialect, cfg)
}

// NewWithDialect creates an LLM adapter with an explicit dialect instance.
func NewWithDialect(dialect Dialect, cfg Config) (*Adapter, error) {
	if dialect == nil {
		return nil, ErrNoDialect
	}
	if cfg.Dialect == "" {
		cfg.Dialect = dialect.Name()
	}
	return newAdapter(dialect, cfg)
}

func newAdapter(dialect Dialect, cfg Config) (*Adapter, error) {
	cfg.ApplyDefaults()
	if cfg.BaseURL == "" {
		cfg.BaseURL = dialect.DefaultBaseURL()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := rest.New(httpclient.Config{
		Name:    cfg.Name,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    dialect.Auth(cfg.APIKey),
		Headers: cfg.Headers,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create rest client: %w", err)
	}

	return &Adapter{
		rest:      client,
		dialect:   dialect,
		name:      cfg.Name,
		model:     cfg.Model,
		baseURL:   cfg.BaseURL,
		temp:      cfg.Temperature,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Name returns the adapter name.
func (a *Adapter) Name() string { return a.name }

// Model returns the default model.
func (a *Adapter) Model() string { return a.model }

// BaseURL returns the provider base URL in use.
func (a *Adapter) BaseURL() string { return a.baseURL }

// Dialect returns the dialect used by this adapter.
func (a *Adapter) Dialect() Dialect { return a.dialect }

// REST returns the underlying REST client.
func (a *Adapter) REST() *rest.Client { return a.rest }

// IsAvailable checks if the LLM provider is reachable. Without a dialect
// health endpoint it only reports whether the adapter is open.
func (a *Adapter) IsAvailable(ctx context.Context) bool {
	return a.Ping(ctx) == nil
}

// Ping probes the dialect's health endpoint and returns the failure, if any.
func (a *Adapter) Ping(ctx context.Context) error {
	if !a.rest.HTTP().IsAvailable(ctx) {
		return fmt.Errorf("llm: %s adapter closed", a.name)
	}
	if hp := a.dialect.HealthPath(); hp != "" {
		return a.rest.HTTP().Ping(ctx, hp)
	}
	return nil
}

// Close releases resources.
func (a *Adapter) Close(ctx context.Context) error { return a.rest.HTTP().Close(ctx) }

// Execute sends a completion request and returns the full response.
func (a *Adapter) Execute(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	a.applyDefaults(&req)
	req.Stream = false

	body, err := a.dialect.BuildRequest(req)
	if err != nil {
		return CompletionResponse{}, apperrors.InvalidInput("messages", fmt.Sprintf("build request: %v", err)).WithCause(err)
	}

	resp, err := rest.Post[json.RawMessage](ctx, a.rest, a.dialect.ChatPath(req.Model, false), body)
	if err != nil {
		return CompletionResponse{}, a.upstreamError(err)
	}

	result, err := a.dialect.ParseResponse(resp.Data)
	if err != nil {
		return CompletionResponse{}, apperrors.MalformedResponse(a.name, err)
	}
	if result.Model == "" {
		result.Model = req.Model
	}
	return *result, nil
}

// Stream sends a completion request and returns a channel of streamed chunks.
// The channel is closed when the stream ends, fails or ctx is cancelled.
func (a *Adapter) Stream(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error) {
	a.applyDefaults(&req)
	req.Stream = true

	body, err := a.dialect.BuildRequest(req)
	if err != nil {
		return nil, apperrors.InvalidInput("messages", fmt.Sprintf("build request: %v", err)).WithCause(err)
	}

	streamResp, err := a.rest.HTTP().DoStream(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   a.dialect.ChatPath(req.Model, true),
		Body:   body,
	})
	if err != nil {
		return nil, a.upstreamError(err)
	}

	ch := make(chan StreamChunk)
	go a.readStream(ctx, streamResp, ch)
	return ch, nil
}

func (a *Adapter) applyDefaults(req *CompletionRequest) {
	if req.Model == "" {
		req.Model = a.model
	}
	if req.Temperature == 0 {
		req.Temperature = a.temp
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = a.maxTokens
	}
}

// upstreamError maps a transport or status failure to the error envelope,
// keeping the provider's own message when the body carries one.
func (a *Adapter) upstreamError(err error) error {
	if rest.IsDecode(err) {
		return apperrors.MalformedResponse(a.name, err)
	}
	appErr := httpclient.ToAppError(a.name, err)
	var hErr *httpclient.Error
	if errors.As(err, &hErr) && len(hErr.Body) > 0 {
		if msg := strings.TrimSpace(a.dialect.ErrorMessage(hErr.Body)); msg != "" {
			appErr.WithDetail("upstream_message", msg)
		}
	}
	return appErr
}
