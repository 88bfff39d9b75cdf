package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the unified slikit error type.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error with automatic retryable detection.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// CodeOf returns the error code of err, or empty string if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsConfigError reports whether err is a configuration error raised
// while building a pipeline, as opposed to a runtime stream error.
func IsConfigError(err error) bool {
	return IsConfigCode(CodeOf(err))
}

// IsRetryable reports whether err can be retried.
func IsRetryable(err error) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Retryable
	}
	return false
}

// --- Configuration error constructors ---

// InvalidSpec creates an Error for a stream spec with a missing or invalid field.
func InvalidSpec(reason string) *Error {
	return &Error{
		Code: ErrCodeInvalidSpec, Message: fmt.Sprintf("invalid stream spec: %s", reason),
	}
}

// UnknownSpecKind creates an Error for a stream spec with an unrecognized kind tag.
func UnknownSpecKind(kind string) *Error {
	return &Error{
		Code: ErrCodeUnknownSpecKind, Message: fmt.Sprintf("unknown stream spec kind: %q", kind),
		Details: map[string]any{"kind": kind},
	}
}

// UnknownResolution creates an Error for a resolution name absent from the table.
func UnknownResolution(resolution string) *Error {
	return &Error{
		Code: ErrCodeUnknownResolution, Message: fmt.Sprintf("unknown resolution: %q", resolution),
		Details: map[string]any{"resolution": resolution},
	}
}

// MissingField creates an Error for a missing required field.
func MissingField(field string) *Error {
	return &Error{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("missing required field: %s", field),
		Details: map[string]any{"field": field},
	}
}

// AlreadyRegistered creates an Error for a duplicate SLI name.
func AlreadyRegistered(name string) *Error {
	return &Error{
		Code: ErrCodeAlreadyRegistered, Message: fmt.Sprintf("SLI %q already registered", name),
		Details: map[string]any{"name": name},
	}
}

// NotRegistered creates an Error for an unknown SLI or resource name.
func NotRegistered(kind, name string) *Error {
	return &Error{
		Code: ErrCodeNotRegistered, Message: fmt.Sprintf("%s %q not registered", kind, name),
		Details: map[string]any{"name": name},
	}
}

// --- Stream error constructors ---

// QueryFailed creates an Error for a backend metric query failure.
func QueryFailed(metric string, cause error) *Error {
	return &Error{
		Code: ErrCodeQueryFailed, Message: fmt.Sprintf("querying metric %q failed", metric),
		Retryable: true, Details: map[string]any{"metric": metric}, Cause: cause,
	}
}

// IngestFailed creates an Error for a failure publishing a datapoint.
func IngestFailed(metric string, cause error) *Error {
	return &Error{
		Code: ErrCodeIngestFailed, Message: fmt.Sprintf("publishing metric %q failed", metric),
		Retryable: true, Details: map[string]any{"metric": metric}, Cause: cause,
	}
}

// AggregateFailed creates an Error for a failed user aggregation function.
func AggregateFailed(cause error) *Error {
	return &Error{
		Code: ErrCodeAggregateFailed, Message: "aggregation function failed",
		Cause: cause,
	}
}

// StageFailed creates an Error for a generic stage failure.
func StageFailed(stage string, cause error) *Error {
	return &Error{
		Code: ErrCodeStageFailed, Message: fmt.Sprintf("stage %q failed", stage),
		Details: map[string]any{"stage": stage}, Cause: cause,
	}
}

// --- Transport error constructors ---

// ConnectionFailed creates an Error for a failed backend connection.
func ConnectionFailed(cause error) *Error {
	return &Error{
		Code: ErrCodeConnectionFailed, Message: "unable to connect to metrics backend",
		Retryable: true, Cause: cause,
	}
}

// Timeout creates an Error for a request that timed out.
func Timeout(operation string) *Error {
	return &Error{
		Code: ErrCodeTimeout, Message: fmt.Sprintf("operation %q timed out", operation),
		Retryable: true, Details: map[string]any{"operation": operation},
	}
}

// BackendUnavailable creates an Error for a backend that rejected the request.
func BackendUnavailable(status int) *Error {
	return &Error{
		Code: ErrCodeBackendUnavailable, Message: fmt.Sprintf("metrics backend unavailable (status %d)", status),
		Retryable: true, Details: map[string]any{"status": status},
	}
}
