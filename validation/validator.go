package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kbukum/slikit/errors"
)

// metricNamePattern accepts dotted metric names such as
// "request.latency" or "request.latency.1h.p95".
var metricNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z0-9_]+)*$`)

// Validator collects validation errors across multiple checks.
type Validator struct {
	errors []FieldError
}

// FieldError is a validation failure for a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{errors: make([]FieldError, 0)}
}

// AddError records a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns the collected field errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Error returns an invalid-spec error describing all failures, or nil.
func (v *Validator) Error() error {
	if !v.HasErrors() {
		return nil
	}
	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return errors.InvalidSpec(strings.Join(messages, "; ")).
		WithDetail("fields", v.errors)
}

// Required checks that a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// MetricName checks that a non-empty string is a well-formed metric name.
func (v *Validator) MetricName(field, value string) *Validator {
	if value == "" {
		return v
	}
	if !metricNamePattern.MatchString(value) {
		v.AddError(field, "must be a dotted metric name")
	}
	return v
}

// Percentile checks that a value is a usable percentile rank.
func (v *Validator) Percentile(field string, value float64) *Validator {
	if value <= 0 || value >= 100 {
		v.AddError(field, "must be between 0 and 100 exclusive")
	}
	return v
}

// OneOf checks that a non-empty value is among the allowed set.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Min checks that a number meets a minimum value.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	if value < minVal {
		v.AddError(field, fmt.Sprintf("must be at least %d", minVal))
	}
	return v
}

// Custom records an error when condition is false.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

// Required validates a single required field and returns an error if empty.
func Required(field, value string) error {
	return New().Required(field, value).Error()
}
