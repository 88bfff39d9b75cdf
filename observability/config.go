package observability

import "time"

// Config configures OTLP export for both metrics and traces.
type Config struct {
	// ServiceName identifies this process in exported telemetry.
	ServiceName string `mapstructure:"service_name"`
	// ServiceVersion is the build version attached to the resource.
	ServiceVersion string `mapstructure:"service_version"`
	// Environment is the deployment environment (development, staging, production).
	Environment string `mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `mapstructure:"endpoint"`
	// Insecure allows plain HTTP connections to the collector.
	Insecure bool `mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `mapstructure:"interval"`
	// SampleRate is the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate" validate:"omitempty,min=0,max=1"`
	// Enabled turns telemetry export on. When false the global noop
	// providers stay in place.
	Enabled bool `mapstructure:"enabled"`
}

// ApplyDefaults fills unset fields with development defaults.
func (c *Config) ApplyDefaults() {
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.0.0"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.Interval <= 0 {
		c.Interval = 15 * time.Second
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// DefaultConfig returns development defaults for serviceName.
func DefaultConfig(serviceName string) Config {
	cfg := Config{ServiceName: serviceName, Insecure: true, Enabled: true}
	cfg.ApplyDefaults()
	return cfg
}
