package bootstrap

import (
	"github.com/kbukum/promptserve/config"
)

// Config is the constraint for application configuration types. Any struct
// embedding config.ServiceConfig satisfies it through promoted methods;
// binaries override ApplyDefaults and Validate to cover their own sections.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
