package sli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/slikit/errors"
	"github.com/kbukum/slikit/logger"
	"github.com/kbukum/slikit/stream"
	"github.com/kbukum/slikit/timeseries"
)

// Pipeline is one running instance of a declaration: sources feeding the
// multiplexer, the aggregator, and the sink chain, all driven by the
// shared clock.
type Pipeline struct {
	// ID uniquely identifies this instance in logs.
	ID     string
	decl   *Declaration
	cancel context.CancelFunc
	done   chan struct{}
}

// sample carries an aggregation result through the sink chain. ok is
// false when the aggregator failed for that tick and the tick must not
// reach the ingest stage.
type sample struct {
	value float64
	ok    bool
}

// Start builds the pipeline and begins processing. Configuration
// problems (bad specs, unknown resolutions) fail synchronously before
// anything runs; runtime failures are contained per stage afterward.
// The returned handle stops the pipeline.
func (d *Declaration) Start(ctx context.Context, pctx *PipelineContext) (*Pipeline, error) {
	if d.Aggregate == nil {
		return nil, errors.MissingField("aggregate")
	}

	p := &Pipeline{
		ID:   uuid.NewString(),
		decl: d,
		done: make(chan struct{}),
	}
	log := pctx.Log.WithComponent("sli.pipeline").WithFields(logger.Fields(
		logger.FieldSLI, d.Name,
		logger.FieldPipeline, p.ID,
	))

	specs, err := d.resolveInputs(ctx, pctx)
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, errors.MissingField("inputs")
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	sources := make([]stream.Named[float64], len(specs))
	interval := time.Duration(0)
	for i, spec := range specs {
		src, err := Resolve(spec, pctx)
		if err != nil {
			cancel()
			return nil, err
		}
		if dur, ok := spec.Resolution.Duration(); ok && (interval == 0 || dur < interval) {
			interval = dur
		}
		sources[i] = instrumentSource(runCtx, src, d.Name, pctx, log)
	}

	tuples := stream.OnError(
		stream.Multiplex(pctx.Clock, interval, sources...),
		func(err error) {
			pctx.Monitor.Report(runCtx, d.Name, "multiplex", errors.StageFailed("multiplex", err))
		})

	out := aggregateStage(runCtx, tuples, d, pctx, log)
	drained := sinkChain(runCtx, out, d, pctx, log)

	go func() {
		defer close(p.done)
		if err := drained.Run(runCtx); err != nil && runCtx.Err() == nil {
			log.WithError(err).Error("pipeline terminated")
		}
	}()

	log.Info("pipeline started", logger.Fields(
		"sources", len(sources),
		"interval", interval.String(),
	))
	return p, nil
}

// Stop tears the pipeline down and waits for the drain goroutine.
func (p *Pipeline) Stop(ctx context.Context) error {
	p.cancel()
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("pipeline %s did not stop: %w", p.decl.Name, ctx.Err())
	}
}

// Done exposes pipeline completion, mainly for tests.
func (p *Pipeline) Done() <-chan struct{} {
	return p.done
}

// instrumentSource attaches the inbound logging tap and the error
// handler to one raw source, and projects datapoints to values. A
// failed source is reported exactly once and stops emitting; its last
// value carries forward inside the multiplexer.
func instrumentSource(ctx context.Context, src stream.Named[timeseries.Datapoint], sliName string, pctx *PipelineContext, log *logger.Logger) stream.Named[float64] {
	stage := "source:" + src.Name

	logged := stream.Tap(src.Stream, func(_ context.Context, dp timeseries.Datapoint) error {
		log.Debug("inbound datapoint", logger.Fields(
			logger.FieldStream, src.Name,
			logger.FieldValue, dp.Value,
			logger.FieldTick, dp.Time,
		))
		return nil
	})

	values := stream.Map(logged, func(_ context.Context, dp timeseries.Datapoint) (float64, error) {
		return dp.Value, nil
	})

	contained := stream.OnError(values, func(err error) {
		pctx.Monitor.Report(ctx, sliName, stage, err)
	})

	return stream.Named[float64]{Name: src.Name, Stream: contained}
}

// aggregateStage applies the user aggregation to each tuple. A failing
// or panicking aggregator yields a skipped tick: one monitor report, no
// value downstream.
func aggregateStage(ctx context.Context, tuples *stream.Stream[[]float64], d *Declaration, pctx *PipelineContext, log *logger.Logger) *stream.Stream[float64] {
	samples := stream.Map(tuples, func(_ context.Context, tuple []float64) (sample, error) {
		recordTick(ctx, pctx.Monitor, d.Name)
		v, err := runAggregate(d.Aggregate, tuple)
		if err != nil {
			pctx.Monitor.Report(ctx, d.Name, "aggregate", errors.AggregateFailed(err))
			return sample{}, nil
		}
		log.Debug("tuple aggregated", logger.Fields(
			"inputs", len(tuple),
			logger.FieldValue, v,
		))
		return sample{value: v, ok: true}, nil
	})

	kept := stream.Filter(samples, func(s sample) bool { return s.ok })
	return stream.Map(kept, func(_ context.Context, s sample) (float64, error) {
		return s.value, nil
	})
}

// runAggregate shields the pipeline from a panicking user function.
func runAggregate(fn AggregateFunc, values []float64) (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("aggregate panicked: %v", r)
		}
	}()
	return fn(values)
}

// recordTick feeds the tick counter when the monitor supports it.
func recordTick(ctx context.Context, r interface{}, sli string) {
	if tr, ok := r.(interface {
		RecordTick(ctx context.Context, sli string)
	}); ok {
		tr.RecordTick(ctx, sli)
	}
}
