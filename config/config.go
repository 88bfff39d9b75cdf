package config

import (
	"fmt"

	"github.com/kbukum/slikit/backend"
	"github.com/kbukum/slikit/logger"
	"github.com/kbukum/slikit/observability"
	"github.com/kbukum/slikit/server"
	"github.com/kbukum/slikit/timeseries"
)

// SLIConfig locates the indicator declaration file.
type SLIConfig struct {
	// File is the path to the YAML declaration file.
	File string `mapstructure:"file"`
}

// Config is the full daemon configuration.
type Config struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`

	Logging   logger.Config        `mapstructure:"logging"`
	Backend   backend.Config       `mapstructure:"backend"`
	Ingest    backend.Config       `mapstructure:"ingest"`
	Server    server.Config        `mapstructure:"server"`
	Telemetry observability.Config `mapstructure:"telemetry"`
	SLIs      SLIConfig            `mapstructure:"slis"`

	// Resolutions adds custom resolution names to the built-in table,
	// e.g. {"10m": "10m", "1mo": "4w2d"}.
	Resolutions map[string]string `mapstructure:"resolutions"`
}

// ApplyDefaults fills unset fields with development defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "slid"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}

	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()

	c.Backend.ApplyDefaults()
	// Ingest falls back to the query backend when not configured separately.
	if c.Ingest.BaseURL == "" {
		c.Ingest = c.Backend
	}
	c.Ingest.ApplyDefaults()

	c.Server.ApplyDefaults()

	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.Name
	}
	if c.Telemetry.ServiceVersion == "" && c.Version != "" {
		c.Telemetry.ServiceVersion = c.Version
	}
	if c.Telemetry.Environment == "" {
		c.Telemetry.Environment = c.Environment
	}
	c.Telemetry.ApplyDefaults()
}

// Validate checks the configuration for use.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Backend.Validate(); err != nil {
		return fmt.Errorf("config.backend: %w", err)
	}
	if err := c.Ingest.Validate(); err != nil {
		return fmt.Errorf("config.ingest: %w", err)
	}
	return nil
}

// DefineResolutions registers configured custom resolutions in the
// resolution table. Must run before any SLI pipelines are built.
func (c *Config) DefineResolutions() error {
	for name, value := range c.Resolutions {
		if err := timeseries.Define(name, value); err != nil {
			return fmt.Errorf("config.resolutions[%s]: %w", name, err)
		}
	}
	return nil
}
