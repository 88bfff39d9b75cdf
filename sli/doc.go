// Package sli builds and runs Service Level Indicator pipelines.
//
// An SLI is declared once — a name, a set of input stream specs, and an
// aggregation function — and registered. When started, the declaration
// resolves its specs into live polling streams, multiplexes them into
// clock-aligned value tuples, aggregates each tuple, and publishes the
// result back to the metric backend as a gauge under the "sli." prefix.
//
// Failures are contained per stage: a source outage, a throwing
// aggregator, or a failed publish is reported to the monitor and logged,
// but never stops sibling sources or other pipelines.
package sli
