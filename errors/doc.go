// Package errors provides unified error handling for slikit.
// It implements structured error types with machine-readable codes,
// retryable detection, and a split between configuration errors
// (raised synchronously while building a pipeline) and stream errors
// (raised asynchronously by a running stage).
package errors
