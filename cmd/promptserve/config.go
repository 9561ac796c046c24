package main

import (
	"errors"
	"fmt"

	"github.com/kbukum/promptserve/config"
	"github.com/kbukum/promptserve/llm"
	"github.com/kbukum/promptserve/llm/gemini"
	"github.com/kbukum/promptserve/llm/ollama"
	"github.com/kbukum/promptserve/observability"
	"github.com/kbukum/promptserve/server"
	"github.com/kbukum/promptserve/version"
)

const serviceName = "promptserve"

// apiKeyEnv holds the hosted model credential.
const apiKeyEnv = "GOOGLE_API_KEY"

var errMissingAPIKey = errors.New(apiKeyEnv + " is not set; the gemini backend needs an API key")

// Config is the serving front configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server    server.Config        `yaml:"server" mapstructure:"server"`
	Gemini    llm.Config           `yaml:"gemini" mapstructure:"gemini"`
	Ollama    llm.Config           `yaml:"ollama" mapstructure:"ollama"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Short()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()

	if c.Gemini.Dialect == "" {
		c.Gemini.Dialect = gemini.Name
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = gemini.DefaultModel
	}
	c.Gemini.ApplyDefaults()

	if c.Ollama.Dialect == "" {
		c.Ollama.Dialect = ollama.Name
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = ollama.DefaultModel
	}
	c.Ollama.ApplyDefaults()

	c.Telemetry.ApplyDefaults()
}

// Validate fails fast on a missing API key before anything starts.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if c.Gemini.APIKey == "" {
		return errMissingAPIKey
	}
	if err := c.Gemini.Validate(); err != nil {
		return fmt.Errorf("gemini: %w", err)
	}
	if err := c.Ollama.Validate(); err != nil {
		return fmt.Errorf("ollama: %w", err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	return nil
}

func loadConfig(opts *Options) (*Config, error) {
	cfg := &Config{}
	loaderOpts := append(opts.loaderOptions(), config.WithEnvAlias(apiKeyEnv, "gemini.api_key"))
	if err := config.LoadConfig(serviceName, cfg, loaderOpts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
