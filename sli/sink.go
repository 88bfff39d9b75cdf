package sli

import (
	"context"

	"github.com/kbukum/slikit/logger"
	"github.com/kbukum/slikit/stream"
	"github.com/kbukum/slikit/timeseries"
)

// sinkChain wires the three output stages: publish each value to the
// backend, log it, and drain whatever remains so upstream stages never
// block on a missing consumer. A failed publish is reported and the
// pipeline moves on to the next tick.
func sinkChain(ctx context.Context, values *stream.Stream[float64], d *Declaration, pctx *PipelineContext, log *logger.Logger) *stream.Runnable {
	metric := d.Metric()

	ingested := stream.Tap(values, func(tapCtx context.Context, v float64) error {
		point := timeseries.Datapoint{Time: pctx.Clock.Now(), Value: v}
		if err := pctx.Ingest.Publish(tapCtx, metric, timeseries.Gauge, []timeseries.Datapoint{point}); err != nil {
			pctx.Monitor.Report(ctx, d.Name, "ingest", err)
			return nil
		}
		recordPublish(ctx, pctx.Monitor, d.Name, 1)
		if pctx.Events != nil {
			pctx.Events.Sample(d.Name, point)
		}
		return nil
	})

	logged := stream.Tap(ingested, func(_ context.Context, v float64) error {
		log.Debug("outbound datapoint", logger.Fields(
			logger.FieldMetric, metric,
			logger.FieldValue, v,
			logger.FieldTick, pctx.Clock.Now(),
		))
		return nil
	})

	buffered := stream.Buffer(logged, 1)
	return stream.Drain(buffered, func(context.Context, float64) error {
		return nil
	})
}

// recordPublish feeds the publish counter when the monitor supports it.
func recordPublish(ctx context.Context, r interface{}, sli string, points int) {
	if pr, ok := r.(interface {
		RecordPublish(ctx context.Context, sli string, points int)
	}); ok {
		pr.RecordPublish(ctx, sli, points)
	}
}
