package resilience

import (
	"context"
	stderrors "errors"
	"math"
	"math/rand"
	"time"

	"github.com/kbukum/slikit/errors"
)

// RetryConfig controls attempt count and backoff shape.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int `mapstructure:"max_attempts" validate:"omitempty,min=1"`
	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
	// MaxBackoff caps the exponential growth.
	MaxBackoff time.Duration `mapstructure:"max_backoff"`
	// BackoffFactor is the exponential multiplier between attempts.
	BackoffFactor float64 `mapstructure:"backoff_factor"`
	// Jitter randomizes each backoff by +/- this fraction (0.0 to 1.0).
	Jitter float64 `mapstructure:"jitter" validate:"omitempty,min=0,max=1"`
	// RetryIf decides whether an error is worth another attempt.
	RetryIf func(error) bool `mapstructure:"-"`
	// OnRetry is invoked before sleeping between attempts.
	OnRetry func(attempt int, err error, backoff time.Duration) `mapstructure:"-"`
}

// DefaultRetryConfig returns the defaults used for backend calls.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		BackoffFactor:  2.0,
		Jitter:         0.1,
		RetryIf:        DefaultRetryIf,
	}
}

// DefaultRetryIf retries transport-level failures and anything the errors
// package classifies as retryable. Context cancellation and spec or
// validation problems are never retried.
func DefaultRetryIf(err error) bool {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.IsConfigError(err) {
		return false
	}
	if errors.CodeOf(err) != "" {
		return errors.IsRetryable(err)
	}
	return true
}

// Retry runs fn up to cfg.MaxAttempts times with exponential backoff,
// returning the first successful result or the last error.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 100 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Second
	}
	if cfg.BackoffFactor <= 0 {
		cfg.BackoffFactor = 2.0
	}
	if cfg.RetryIf == nil {
		cfg.RetryIf = DefaultRetryIf
	}

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !cfg.RetryIf(err) {
			return zero, err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		backoff := backoffFor(attempt, cfg)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, backoff)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, lastErr
}

// RetryFunc is Retry for functions that return only an error.
func RetryFunc(ctx context.Context, cfg RetryConfig, fn func() error) error {
	_, err := Retry(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

func backoffFor(attempt int, cfg RetryConfig) time.Duration {
	backoff := float64(cfg.InitialBackoff) * math.Pow(cfg.BackoffFactor, float64(attempt-1))

	if cfg.Jitter > 0 {
		span := backoff * cfg.Jitter
		backoff += (rand.Float64()*2 - 1) * span
	}
	if backoff > float64(cfg.MaxBackoff) {
		backoff = float64(cfg.MaxBackoff)
	}
	if backoff < 0 {
		backoff = float64(cfg.InitialBackoff)
	}
	return time.Duration(backoff)
}
