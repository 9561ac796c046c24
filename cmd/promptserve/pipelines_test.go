package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/promptserve/llm"
	"github.com/kbukum/promptserve/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type echoProvider struct {
	name  string
	calls []string
}

func (p *echoProvider) Name() string { return p.name }

func (p *echoProvider) IsAvailable(context.Context) bool { return true }

func (p *echoProvider) Execute(_ context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	p.calls = append(p.calls, req.Messages[0].Content)
	return llm.CompletionResponse{Content: p.name + ": " + req.Messages[0].Content, Model: p.name}, nil
}

func (p *echoProvider) Stream(context.Context, llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	ch := make(chan llm.StreamChunk)
	close(ch)
	return ch, nil
}

func invoke(t *testing.T, r http.Handler, path, body string) map[string]any {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestMountPipelines(t *testing.T) {
	hosted := &echoProvider{name: "gemini"}
	local := &echoProvider{name: "ollama"}
	r := gin.New()
	mountPipelines(r, hosted, local, nil, logger.Nop())

	essay := invoke(t, r, "/essay/invoke", `{"input":{"topic":"oceans"}}`)
	msg, ok := essay["output"].(map[string]any)
	require.True(t, ok, "essay output should be a message")
	assert.Equal(t, "gemini: Write a 100-word essay about oceans.", msg["content"])

	poem := invoke(t, r, "/poem/invoke", `{"input":{"topic":"the sea"}}`)
	assert.Equal(t, "ollama: Write a 100-word poem about the sea suitable for a 5-year-old child.", poem["output"])

	direct := invoke(t, r, "/gemini/invoke", `{"input":"hello"}`)
	msg, ok = direct["output"].(map[string]any)
	require.True(t, ok, "gemini output should be a message")
	assert.Equal(t, "gemini: hello", msg["content"])

	assert.Len(t, hosted.calls, 2)
	assert.Len(t, local.calls, 1)
}

func TestPipelines_Order(t *testing.T) {
	var names []string
	for _, p := range pipelines(&echoProvider{name: "a"}, &echoProvider{name: "b"}, nil) {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"gemini", "essay", "poem"}, names)
}

func TestTemplates(t *testing.T) {
	assert.Equal(t, []string{"topic"}, essayTemplate.Variables())
	assert.Equal(t, []string{"topic"}, poemTemplate.Variables())
}
