package llm

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kbukum/promptserve/httpclient"
)

// StreamFormat indicates how a provider delivers streaming responses.
type StreamFormat int

const (
	// StreamNDJSON uses newline-delimited JSON (one JSON object per line), as Ollama does.
	StreamNDJSON StreamFormat = iota
	// StreamSSE uses Server-Sent Events, as Gemini does with alt=sse.
	StreamSSE
)

// Dialect maps universal LLM types to/from a specific provider's HTTP format.
//
// Dialects live in their own packages (llm/gemini, llm/ollama) and register
// themselves from init, so importing a dialect package makes it available to
// New by name.
type Dialect interface {
	// Name returns the dialect identifier (e.g., "ollama", "gemini").
	Name() string

	// DefaultBaseURL is used when the config leaves BaseURL empty.
	DefaultBaseURL() string

	// ChatPath returns the endpoint for a completion. Providers that put the
	// model or the stream mode in the URL use the arguments; the path may
	// carry a query string.
	ChatPath(model string, stream bool) string

	// HealthPath returns the health-check endpoint path. Empty means no health endpoint.
	HealthPath() string

	// Auth returns the authentication for apiKey, or nil when the provider needs none.
	Auth(apiKey string) *httpclient.AuthConfig

	// BuildRequest maps a universal CompletionRequest to the provider's JSON request body.
	BuildRequest(req CompletionRequest) (any, error)

	// ParseResponse maps the provider's JSON response body to a universal CompletionResponse.
	ParseResponse(body []byte) (*CompletionResponse, error)

	// StreamFormat returns how this provider delivers streaming data.
	StreamFormat() StreamFormat

	// ParseStreamChunk extracts content from a single stream data chunk.
	// Returns the text content and whether the stream is complete.
	ParseStreamChunk(data []byte) (content string, done bool, err error)

	// ErrorMessage extracts the provider's error message from an error body,
	// or returns "" when there is none.
	ErrorMessage(body []byte) string
}

var (
	dialectsMu sync.RWMutex
	dialects   = map[string]Dialect{}
)

// RegisterDialect adds a dialect to the global registry. Dialect packages
// call it from init:
//
//	func init() {
//	    llm.RegisterDialect(Name, &Dialect{})
//	}
func RegisterDialect(name string, d Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[name] = d
}

// GetDialect retrieves a dialect by name from the global registry.
func GetDialect(name string) (Dialect, error) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("llm: unknown dialect %q (forgot to import driver?)", name)
	}
	return d, nil
}

// Dialects returns the sorted names of all registered dialects.
func Dialects() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
