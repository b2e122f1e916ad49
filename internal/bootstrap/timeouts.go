package bootstrap

import (
	"time"

	"github.com/yigit/coursefeedback/internal/config"
	"github.com/yigit/coursefeedback/internal/pkg/helpers"
)

const (
	defaultKafkaWriteTimeout = 5 * time.Second
	defaultReadTimeout       = 10 * time.Second
	defaultWriteTimeout      = 10 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

// Timeouts are the parsed HTTP server timeouts
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Idle     time.Duration
	Shutdown time.Duration
}

// ServerTimeouts parses the server section, falling back to defaults for bad values
func ServerTimeouts(cfg *config.Config) Timeouts {
	return Timeouts{
		Read:     helpers.ParseDuration(cfg.Server.ReadTimeout, defaultReadTimeout),
		Write:    helpers.ParseDuration(cfg.Server.WriteTimeout, defaultWriteTimeout),
		Idle:     helpers.ParseDuration(cfg.Server.IdleTimeout, defaultIdleTimeout),
		Shutdown: helpers.ParseDuration(cfg.Server.ShutdownTimeout, defaultShutdownTimeout),
	}
}
