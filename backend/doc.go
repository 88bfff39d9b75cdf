// Package backend provides clients for the metric backend's REST API:
// a Querier that reads raw datapoints, a Publisher that writes computed
// results back, and a Poll source that turns a metric into a live stream.
//
// All calls go through retry with exponential backoff and a circuit
// breaker, so a flapping backend degrades to carried-forward values
// upstream instead of cascading failures.
package backend
