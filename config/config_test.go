package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kbukum/slikit/timeseries"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
name: slid
environment: production
backend:
  base_url: http://metrics.internal:9090
  timeout: 5s
server:
  addr: ":9999"
  enabled: true
slis:
  file: /etc/slid/slis.yml
`)

	cfg, err := Load(WithConfigFile(path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Name != "slid" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Environment != "production" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if cfg.Debug {
		t.Error("Debug must stay off outside development")
	}
	if cfg.Backend.BaseURL != "http://metrics.internal:9090" {
		t.Errorf("Backend.BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 5*time.Second {
		t.Errorf("Backend.Timeout = %v", cfg.Backend.Timeout)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.SLIs.File != "/etc/slid/slis.yml" {
		t.Errorf("SLIs.File = %q", cfg.SLIs.File)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
backend:
  base_url: http://localhost:9090
`)

	cfg, err := Load(WithConfigFile(path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Name != "slid" {
		t.Errorf("Name = %q, want default", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("Debug should default on in development")
	}
	if cfg.Ingest.BaseURL != cfg.Backend.BaseURL {
		t.Errorf("Ingest.BaseURL = %q, want backend fallback", cfg.Ingest.BaseURL)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Logging.ServiceName != "slid" {
		t.Errorf("Logging.ServiceName = %q", cfg.Logging.ServiceName)
	}
	if cfg.Telemetry.ServiceName != "slid" {
		t.Errorf("Telemetry.ServiceName = %q", cfg.Telemetry.ServiceName)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
backend:
  base_url: http://from-file:9090
`)
	t.Setenv("BACKEND_BASE_URL", "http://from-env:9090")

	cfg, err := Load(WithConfigFile(path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.BaseURL != "http://from-env:9090" {
		t.Errorf("Backend.BaseURL = %q, want env override", cfg.Backend.BaseURL)
	}
}

func TestLoadRejectsInvalidEnvironment(t *testing.T) {
	path := writeConfigFile(t, `
environment: qa
backend:
  base_url: http://localhost:9090
`)

	if _, err := Load(WithConfigFile(path)); err == nil {
		t.Fatal("expected error for unknown environment")
	}
}

func TestLoadRejectsMissingBackend(t *testing.T) {
	path := writeConfigFile(t, `
name: slid
`)

	if _, err := Load(WithConfigFile(path)); err == nil {
		t.Fatal("expected error for missing backend.base_url")
	}
}

func TestDefineResolutions(t *testing.T) {
	cfg := &Config{Resolutions: map[string]string{"90m": "1h30m"}}
	if err := cfg.DefineResolutions(); err != nil {
		t.Fatalf("DefineResolutions: %v", err)
	}

	d, ok := timeseries.Resolution("90m").Duration()
	if !ok {
		t.Fatal("custom resolution not registered")
	}
	if d != 90*time.Minute {
		t.Errorf("duration = %v", d)
	}
}

func TestDefineResolutionsRejectsBadValue(t *testing.T) {
	cfg := &Config{Resolutions: map[string]string{"bad": "ninety minutes"}}
	if err := cfg.DefineResolutions(); err == nil {
		t.Fatal("expected error for unparseable duration")
	}
}
