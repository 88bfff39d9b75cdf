// Package resilience provides retry and circuit breaker primitives used by
// the metric backend clients. Retryability decisions default to the error
// classification in the errors package.
package resilience
