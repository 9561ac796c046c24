package client

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/kbukum/promptserve/httpclient"
	"github.com/kbukum/promptserve/httpclient/rest"
	"github.com/kbukum/promptserve/logger"

	apperrors "github.com/kbukum/promptserve/errors"
)

const (
	serviceName     = "promptserve"
	headerRequestID = "X-Request-Id"
)

// Invoker is what Call needs from a client.
type Invoker interface {
	Invoke(ctx context.Context, path string, input any) (Output, error)
}

// Client posts invocation requests to the serving front. Each call is one
// request; nothing is retried.
type Client struct {
	cfg  Config
	rest *rest.Client
	log  *logger.Logger
}

var _ Invoker = (*Client)(nil)

// New creates a Client.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rc, err := rest.New(httpclient.Config{
		Name:    serviceName,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{cfg: cfg, rest: rc, log: log.WithComponent("client")}, nil
}

// Config returns the applied configuration.
func (c *Client) Config() Config { return c.cfg }

// Close releases idle connections.
func (c *Client) Close(ctx context.Context) error { return c.rest.HTTP().Close(ctx) }

// Invoke posts {"input": input} to path and decodes the output. A request
// id in ctx is forwarded as X-Request-Id so both fronts log the same id. Transport
// failures match ErrTransport; bodies that are not a JSON object match
// ErrMalformedResponse.
func (c *Client) Invoke(ctx context.Context, path string, input any) (Output, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var opts []rest.RequestOption
	if id := logger.RequestIDFromContext(ctx); id != "" {
		opts = append(opts, rest.WithHeaders(map[string]string{headerRequestID: id}))
	}
	resp, err := rest.Post[json.RawMessage](ctx, c.rest, path, map[string]any{"input": input}, opts...)
	if err != nil {
		if rest.IsDecode(err) {
			return Output{}, c.malformed(path, err)
		}
		return Output{}, httpclient.ToAppError(serviceName, err).WithDetail("path", path)
	}

	body := bytes.TrimSpace(resp.Data)
	if len(body) == 0 || body[0] != '{' {
		return Output{}, c.malformed(path, nil)
	}
	var env Response
	if err := json.Unmarshal(body, &env); err != nil {
		return Output{}, c.malformed(path, err)
	}

	if env.Output.Kind == KindOther {
		c.log.Warn("invoke output is neither text nor a message; showing empty text", logger.Fields(
			"path", path,
			"output", string(env.Output.Raw()),
		))
	}
	return env.Output, nil
}

func (c *Client) malformed(path string, cause error) error {
	return apperrors.MalformedResponse(serviceName, cause).WithDetail("path", path)
}

// Essay invokes the essay pipeline for topic.
func (c *Client) Essay(ctx context.Context, topic string) (Output, error) {
	return c.Invoke(ctx, c.cfg.EssayPath, map[string]string{"topic": topic})
}

// Poem invokes the poem pipeline for topic.
func (c *Client) Poem(ctx context.Context, topic string) (Output, error) {
	return c.Invoke(ctx, c.cfg.PoemPath, map[string]string{"topic": topic})
}
