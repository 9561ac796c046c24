package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/promptserve/version"
)

const (
	defaultTimeout = 30 * time.Second
	defaultProduct = "promptserve"
)

// Config configures the HTTP adapter.
type Config struct {
	// Name identifies the adapter in logs, health reports and the User-Agent.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a whole non-streaming request. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth configures default authentication applied to all requests.
	// Individual requests can override this.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// UserAgent overrides the default "promptserve/<version> (...)" agent.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// HealthPath, when set, is probed with GET by Component.Health.
	HealthPath string `yaml:"health_path" mapstructure:"health_path"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent(defaultProduct)
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	return nil
}
