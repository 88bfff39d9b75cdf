package sli

import (
	"github.com/kbukum/slikit/backend"
	"github.com/kbukum/slikit/clock"
	"github.com/kbukum/slikit/errors"
	"github.com/kbukum/slikit/logger"
	"github.com/kbukum/slikit/monitor"
	"github.com/kbukum/slikit/stream"
	"github.com/kbukum/slikit/timeseries"
)

// SampleListener receives each successfully published SLI sample, for
// live streaming to admin clients.
type SampleListener interface {
	Sample(sli string, point timeseries.Datapoint)
}

// PipelineContext carries the shared resources a pipeline needs. It is
// passed explicitly into dynamic input functions and every build step.
type PipelineContext struct {
	Clock   clock.Clock
	Backend backend.Querier
	Ingest  backend.Publisher
	Monitor monitor.Reporter
	Log     *logger.Logger

	// Events is optional; when set it sees every published sample.
	Events SampleListener
}

// Resolve turns a spec into a named live stream of datapoints.
//
// Direct specs validate their fields and start a polling stream with a
// lookback of twice the resolution, so the multiplexer has history to
// align against. Derived specs rewrite into the direct spec for their
// percentile series and resolve that. Validation failures surface as
// configuration errors before any stream exists.
func Resolve(spec Spec, pctx *PipelineContext) (stream.Named[timeseries.Datapoint], error) {
	var zero stream.Named[timeseries.Datapoint]

	switch spec.Kind {
	case SpecDirect:
		if spec.Metric == "" {
			return zero, errors.MissingField("metric")
		}
		if spec.Resolution == "" {
			return zero, errors.MissingField("resolution")
		}
		interval, ok := spec.Resolution.Duration()
		if !ok {
			return zero, errors.UnknownResolution(string(spec.Resolution))
		}

		start := pctx.Clock.Now().Add(-2 * interval)
		name := spec.Metric + "@" + string(spec.Resolution)
		return stream.Named[timeseries.Datapoint]{
			Name:   name,
			Stream: backend.Poll(pctx.Backend, pctx.Clock, spec.Metric, interval, start),
		}, nil

	case SpecDerived:
		if spec.Metric == "" {
			return zero, errors.MissingField("metric")
		}
		if spec.Percentile <= 0 || spec.Percentile >= 100 {
			return zero, errors.InvalidSpec("percentile must be between 0 and 100 exclusive").
				WithDetail("percentile", spec.Percentile)
		}
		return Resolve(Direct(spec.derivedName(), spec.Resolution), pctx)

	default:
		return zero, errors.UnknownSpecKind(string(spec.Kind))
	}
}
