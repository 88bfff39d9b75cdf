package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors. These abort pipeline construction for the
// declaring SLI only and are never retryable.
const (
	// ErrCodeInvalidSpec indicates a stream spec with a missing or invalid field.
	ErrCodeInvalidSpec ErrorCode = "INVALID_SPEC"
	// ErrCodeUnknownSpecKind indicates a stream spec with an unrecognized kind tag.
	ErrCodeUnknownSpecKind ErrorCode = "UNKNOWN_SPEC_KIND"
	// ErrCodeUnknownResolution indicates a resolution name absent from the resolution table.
	ErrCodeUnknownResolution ErrorCode = "UNKNOWN_RESOLUTION"
	// ErrCodeMissingField indicates a required declaration field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeAlreadyRegistered indicates a duplicate SLI name.
	ErrCodeAlreadyRegistered ErrorCode = "ALREADY_REGISTERED"
	// ErrCodeNotRegistered indicates an unknown SLI or resource name.
	ErrCodeNotRegistered ErrorCode = "NOT_REGISTERED"
)

// Stream errors. Raised asynchronously by a pipeline stage; reported to
// the monitor and contained at the stage boundary.
const (
	// ErrCodeQueryFailed indicates a backend metric query failure.
	ErrCodeQueryFailed ErrorCode = "QUERY_FAILED"
	// ErrCodeIngestFailed indicates a failure publishing a datapoint.
	ErrCodeIngestFailed ErrorCode = "INGEST_FAILED"
	// ErrCodeAggregateFailed indicates the user aggregation function failed.
	ErrCodeAggregateFailed ErrorCode = "AGGREGATE_FAILED"
	// ErrCodeStageFailed indicates a generic stage failure.
	ErrCodeStageFailed ErrorCode = "STAGE_FAILED"
)

// Transport errors.
const (
	// ErrCodeConnectionFailed indicates a failed connection to the backend.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeBackendUnavailable indicates the backend rejected the request as unavailable.
	ErrCodeBackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeQueryFailed:        true,
	ErrCodeIngestFailed:       true,
	ErrCodeConnectionFailed:   true,
	ErrCodeTimeout:            true,
	ErrCodeBackendUnavailable: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

var configCodes = map[ErrorCode]bool{
	ErrCodeInvalidSpec:       true,
	ErrCodeUnknownSpecKind:   true,
	ErrCodeUnknownResolution: true,
	ErrCodeMissingField:      true,
	ErrCodeAlreadyRegistered: true,
	ErrCodeNotRegistered:     true,
}

// IsConfigCode returns true if the error code indicates a configuration
// error raised during pipeline construction.
func IsConfigCode(code ErrorCode) bool {
	return configCodes[code]
}
