package client

import (
	"time"

	"github.com/kbukum/promptserve/validation"
)

// Config configures a Client.
type Config struct {
	// BaseURL is the serving front, e.g. http://localhost:8000.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
	// Timeout is the wait ceiling for one call. Defaults to 120s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	// EssayPath and PoemPath are the invoke routes used by Essay and Poem.
	EssayPath string `yaml:"essay_path" mapstructure:"essay_path"`
	PoemPath  string `yaml:"poem_path" mapstructure:"poem_path"`
}

// ApplyDefaults fills in the documented defaults.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8000"
	}
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
	if c.EssayPath == "" {
		c.EssayPath = "/essay/invoke"
	}
	if c.PoemPath == "" {
		c.PoemPath = "/poem/invoke"
	}
}

// Validate checks the config.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
