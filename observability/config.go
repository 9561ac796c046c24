package observability

import (
	"time"

	"github.com/kbukum/promptserve/validation"
)

// Config is the telemetry section of a binary's config file.
//
//	telemetry:
//	  endpoint: localhost:4318
//	  insecure: true
type Config struct {
	// Endpoint is the OTLP HTTP collector host:port. Empty disables export.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure uses plain HTTP to the collector.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// SampleRate is the trace sampling ratio in [0, 1].
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	// ExportInterval is how often metrics are pushed.
	ExportInterval time.Duration `yaml:"export_interval" mapstructure:"export_interval" validate:"gte=0"`
}

// ApplyDefaults fills in sampling and export interval.
func (c *Config) ApplyDefaults() {
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.ExportInterval == 0 {
		c.ExportInterval = 15 * time.Second
	}
}

// Validate checks ranges.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// Enabled reports whether telemetry is exported.
func (c *Config) Enabled() bool {
	return c.Endpoint != ""
}

// ServiceInfo identifies the service in exported telemetry.
type ServiceInfo struct {
	Name        string
	Version     string
	Environment string
}
