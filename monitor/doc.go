// Package monitor receives pipeline stage failures and records them
// without interrupting the stream that raised them. Every report lands
// in the structured log and in OpenTelemetry counters keyed by SLI name
// and stage.
package monitor
