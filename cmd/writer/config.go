package main

import (
	"fmt"

	"github.com/kbukum/promptserve/client"
	"github.com/kbukum/promptserve/config"
	"github.com/kbukum/promptserve/server"
	"github.com/kbukum/promptserve/version"
)

const (
	serviceName = "writer"
	defaultPort = 8501
)

// Config is the browser front configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server server.Config `yaml:"server" mapstructure:"server"`
	// Client points at the serving front.
	Client client.Config `yaml:"client" mapstructure:"client"`
}

func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Short()
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	c.Server.ApplyDefaults()
	c.Client.ApplyDefaults()
}

func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Client.Validate(); err != nil {
		return fmt.Errorf("client: %w", err)
	}
	return nil
}

func loadConfig(opts *Options) (*Config, error) {
	cfg := &Config{}
	if err := config.LoadConfig(serviceName, cfg, opts.loaderOptions()...); err != nil {
		return nil, err
	}
	return cfg, nil
}
