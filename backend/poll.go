package backend

import (
	"context"
	"time"

	"github.com/kbukum/slikit/clock"
	"github.com/kbukum/slikit/stream"
	"github.com/kbukum/slikit/timeseries"
)

// Poll turns a backend metric into a live stream of datapoints.
//
// The first query runs immediately from start; afterwards the source
// re-queries on every clock tick, advancing a watermark past the newest
// point seen so each datapoint is emitted exactly once. A tick that
// finds no new points emits nothing and waits for the next tick.
func Poll(q Querier, clk clock.Clock, metric string, interval time.Duration, start time.Time) *stream.Stream[timeseries.Datapoint] {
	return stream.New(func(ctx context.Context) stream.Iterator[timeseries.Datapoint] {
		pollCtx, cancel := context.WithCancel(ctx)
		return &pollIter{
			q:         q,
			metric:    metric,
			watermark: start,
			primed:    false,
			ticks:     clk.Tick(pollCtx, interval),
			cancel:    cancel,
		}
	})
}

type pollIter struct {
	q         Querier
	metric    string
	watermark time.Time
	primed    bool
	pending   []timeseries.Datapoint
	ticks     <-chan time.Time
	cancel    context.CancelFunc
}

func (it *pollIter) Next(ctx context.Context) (timeseries.Datapoint, bool, error) {
	var zero timeseries.Datapoint
	for {
		if len(it.pending) > 0 {
			p := it.pending[0]
			it.pending = it.pending[1:]
			return p, true, nil
		}

		if it.primed {
			select {
			case _, open := <-it.ticks:
				if !open {
					return zero, false, nil
				}
			case <-ctx.Done():
				return zero, false, ctx.Err()
			}
		}
		it.primed = true

		points, err := it.q.Query(ctx, it.metric, it.watermark)
		if err != nil {
			return zero, false, err
		}
		for _, p := range points {
			if p.Time.Before(it.watermark) {
				continue
			}
			it.pending = append(it.pending, p)
		}
		if len(it.pending) > 0 {
			last := it.pending[len(it.pending)-1]
			it.watermark = last.Time.Add(time.Millisecond)
		}
	}
}

func (it *pollIter) Close() error {
	it.cancel()
	return nil
}
