package sli

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/slikit/clock"
	"github.com/kbukum/slikit/logger"
	"github.com/kbukum/slikit/monitor"
	"github.com/kbukum/slikit/timeseries"
)

// fakeQuerier serves one scripted batch per metric on the first query
// and nothing afterwards, recording every call.
type fakeQuerier struct {
	mu      sync.Mutex
	batches map[string][]timeseries.Datapoint
	served  map[string]bool
	failAfterServe map[string]error
	calls   []queryCall
}

type queryCall struct {
	metric string
	from   time.Time
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		batches:        make(map[string][]timeseries.Datapoint),
		served:         make(map[string]bool),
		failAfterServe: make(map[string]error),
	}
}

func (f *fakeQuerier) addPoint(metric string, at time.Time, value float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches[metric] = append(f.batches[metric], timeseries.Datapoint{Time: at, Value: value})
}

func (f *fakeQuerier) Query(_ context.Context, metric string, from time.Time) ([]timeseries.Datapoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, queryCall{metric: metric, from: from})
	if f.served[metric] {
		if err := f.failAfterServe[metric]; err != nil {
			return nil, err
		}
		return nil, nil
	}
	f.served[metric] = true
	return f.batches[metric], nil
}

func (f *fakeQuerier) queries() []queryCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]queryCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// fakePublisher records every publish.
type fakePublisher struct {
	mu      sync.Mutex
	publishes []publishCall
}

type publishCall struct {
	metric string
	typ    timeseries.MetricType
	points []timeseries.Datapoint
}

func (f *fakePublisher) Publish(_ context.Context, metric string, typ timeseries.MetricType, points []timeseries.Datapoint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.publishes = append(f.publishes, publishCall{metric: metric, typ: typ, points: points})
	return nil
}

func (f *fakePublisher) all() []publishCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]publishCall, len(f.publishes))
	copy(out, f.publishes)
	return out
}

// testContext assembles a PipelineContext over the fakes.
func testContext(q *fakeQuerier, pub *fakePublisher, m *clock.Manual, rec *monitor.Recorder) *PipelineContext {
	return &PipelineContext{
		Clock:   m,
		Backend: q,
		Ingest:  pub,
		Monitor: rec,
		Log:     logger.NewDefault("test"),
	}
}
