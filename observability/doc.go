// Package observability wires OpenTelemetry metrics and tracing for the
// daemon. Pipeline-level instruments live in the monitor package; this
// package owns provider setup and span helpers.
//
//	mp, err := observability.InitMeter(ctx, cfg)
//	defer mp.Shutdown(ctx)
//
//	tp, err := observability.InitTracer(ctx, cfg)
//	defer tp.Shutdown(ctx)
package observability
