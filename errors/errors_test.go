package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestInvalidSpec(t *testing.T) {
	err := InvalidSpec("metric is required")
	if err.Code != ErrCodeInvalidSpec {
		t.Errorf("Code = %s", err.Code)
	}
	if err.Retryable {
		t.Error("config errors must not be retryable")
	}
	if !strings.Contains(err.Error(), "metric is required") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestUnknownSpecKind(t *testing.T) {
	err := UnknownSpecKind("gauge-ish")
	if err.Code != ErrCodeUnknownSpecKind {
		t.Errorf("Code = %s", err.Code)
	}
	if err.Details["kind"] != "gauge-ish" {
		t.Errorf("Details = %v", err.Details)
	}
}

func TestQueryFailed_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := QueryFailed("checkout.latency", cause)
	if !stderrors.Is(err, cause) {
		t.Error("cause should be unwrappable")
	}
	if !err.Retryable {
		t.Error("query failures should be retryable")
	}
}

func TestIsConfigError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{InvalidSpec("x"), true},
		{UnknownSpecKind("x"), true},
		{UnknownResolution("2x"), true},
		{MissingField("metric"), true},
		{QueryFailed("m", nil), false},
		{IngestFailed("m", nil), false},
		{stderrors.New("plain"), false},
		{fmt.Errorf("wrapped: %w", MissingField("name")), true},
	}
	for _, c := range cases {
		if got := IsConfigError(c.err); got != c.want {
			t.Errorf("IsConfigError(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(ConnectionFailed(nil)) {
		t.Error("connection failures should be retryable")
	}
	if IsRetryable(AggregateFailed(nil)) {
		t.Error("aggregate failures should not be retryable")
	}
	if IsRetryable(stderrors.New("plain")) {
		t.Error("plain errors are not retryable")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(Timeout("query")); got != ErrCodeTimeout {
		t.Errorf("CodeOf = %s", got)
	}
	if got := CodeOf(stderrors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
}

func TestWithDetail(t *testing.T) {
	err := StageFailed("multiplex", nil).WithDetail("sli", "checkout")
	if err.Details["sli"] != "checkout" {
		t.Errorf("Details = %v", err.Details)
	}
	if err.Details["stage"] != "multiplex" {
		t.Errorf("Details = %v", err.Details)
	}
}
