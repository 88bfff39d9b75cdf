// Package stream provides lazy, pull-based composition of datapoint
// streams. A Stream[T] does no work until values are pulled via Collect,
// Drain, or ForEach, so a pipeline can be fully wired before it starts.
//
// Beyond the usual operators (Map, Filter, Tap, Buffer) the package adds
// two building blocks for clock-driven pipelines:
//
//   - Multiplex combines N independently-timed named streams into one
//     stream of aligned N-tuples, emitting on clock ticks with
//     carry-forward semantics.
//   - OnError attaches an error hook to any stream, containing failures
//     at the stage boundary: the hook observes the error and the stream
//     ends cleanly instead of propagating it downstream.
package stream
