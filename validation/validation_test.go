package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/slikit/errors"
)

func TestValidateStructTags(t *testing.T) {
	type backendConfig struct {
		BaseURL string `mapstructure:"base_url" validate:"required,url"`
		Timeout int    `mapstructure:"timeout" validate:"min=1"`
	}

	err := Validate(backendConfig{BaseURL: "http://localhost:9090", Timeout: 5})
	if err != nil {
		t.Fatalf("valid struct rejected: %v", err)
	}

	err = Validate(backendConfig{BaseURL: "", Timeout: 0})
	if err == nil {
		t.Fatal("expected error for invalid struct")
	}
	if !errors.IsConfigError(err) {
		t.Errorf("expected config error, got %v", err)
	}
	if !strings.Contains(err.Error(), "base_url") {
		t.Errorf("error should name base_url: %v", err)
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("error should name timeout: %v", err)
	}
}

func TestValidatorCollectsErrors(t *testing.T) {
	v := New()
	v.Required("metric", "").
		Percentile("percentile", 150).
		OneOf("spec", "weird", []string{"direct", "derived"})

	if !v.HasErrors() {
		t.Fatal("expected errors")
	}
	if got := len(v.Errors()); got != 3 {
		t.Errorf("errors = %d, want 3", got)
	}

	err := v.Error()
	if err == nil {
		t.Fatal("Error() returned nil with failures recorded")
	}
	if errors.CodeOf(err) != errors.ErrCodeInvalidSpec {
		t.Errorf("code = %v, want %v", errors.CodeOf(err), errors.ErrCodeInvalidSpec)
	}
}

func TestValidatorPassesCleanInput(t *testing.T) {
	v := New()
	v.Required("metric", "request.latency").
		MetricName("metric", "request.latency").
		Percentile("percentile", 95).
		OneOf("spec", "derived", []string{"direct", "derived"})

	if err := v.Error(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMetricNamePattern(t *testing.T) {
	valid := []string{"latency", "request.latency", "request.latency.1h.p95", "cpu_usage.5m.p99_9"}
	for _, name := range valid {
		if err := New().MetricName("metric", name).Error(); err != nil {
			t.Errorf("MetricName(%q) rejected: %v", name, err)
		}
	}

	invalid := []string{".latency", "latency.", "a..b", "la tency", "1latency"}
	for _, name := range invalid {
		if err := New().MetricName("metric", name).Error(); err == nil {
			t.Errorf("MetricName(%q) accepted, want rejection", name)
		}
	}
}
