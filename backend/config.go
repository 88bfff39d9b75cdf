package backend

import (
	"time"

	"github.com/kbukum/slikit/resilience"
	"github.com/kbukum/slikit/validation"
)

// Config configures a backend HTTP client.
type Config struct {
	// BaseURL is the backend's root URL, without a trailing slash.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// Timeout bounds each individual HTTP request.
	Timeout time.Duration `mapstructure:"timeout"`
	// Retry shapes the per-call retry policy.
	Retry resilience.RetryConfig `mapstructure:"retry"`
	// BreakerFailures is the consecutive failure count that opens the
	// circuit. Zero uses the breaker default.
	BreakerFailures int `mapstructure:"breaker_failures" validate:"omitempty,min=1"`
	// BreakerTimeout is the open period before the breaker probes again.
	BreakerTimeout time.Duration `mapstructure:"breaker_timeout"`
}

// ApplyDefaults fills unset fields with production defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry = resilience.DefaultRetryConfig()
	}
	if c.BreakerTimeout <= 0 {
		c.BreakerTimeout = 30 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
