package llm

import (
	"time"

	"github.com/kbukum/promptserve/validation"
)

const defaultTimeout = 120 * time.Second

// Config holds configuration for creating an LLM adapter.
// The Dialect field selects the provider mapping.
type Config struct {
	// Name identifies this adapter instance. Defaults to the dialect name.
	Name string `yaml:"name" mapstructure:"name"`

	// Dialect selects the provider mapping ("gemini", "ollama").
	// Must match a dialect registered via RegisterDialect.
	Dialect string `yaml:"dialect" mapstructure:"dialect" validate:"required"`

	// BaseURL is the provider's API base URL. Defaults to the dialect's.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// Model is the default model (e.g., "gemini-2.5-flash", "llama3.2").
	Model string `yaml:"model" mapstructure:"model" validate:"required"`

	// APIKey is handed to the dialect's Auth. Never logged.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// Temperature is the default sampling temperature. 0 means provider default.
	Temperature float64 `yaml:"temperature" mapstructure:"temperature" validate:"gte=0,lte=2"`

	// MaxTokens is the default maximum tokens for responses. 0 means provider default.
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens" validate:"gte=0"`

	// Timeout bounds a non-streaming request. Defaults to 120s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are additional HTTP headers sent with every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Name == "" {
		c.Name = c.Dialect
	}
}

// Validate checks the configuration with its struct tags.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
