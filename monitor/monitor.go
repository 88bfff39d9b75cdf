package monitor

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kbukum/slikit/errors"
	"github.com/kbukum/slikit/logger"
)

// Reporter receives contained stage failures. Implementations must not
// block the caller; pipelines report inline from their hot path.
type Reporter interface {
	// Report records a failure raised by stage inside the pipeline of sli.
	Report(ctx context.Context, sli, stage string, err error)
}

// Monitor is the production Reporter. It logs every failure and counts
// it in OpenTelemetry, keyed by SLI and stage.
type Monitor struct {
	log *logger.Logger

	errorTotal   metric.Int64Counter
	tickTotal    metric.Int64Counter
	publishTotal metric.Int64Counter
}

// New creates a Monitor recording through the given meter.
func New(meter metric.Meter, log *logger.Logger) (*Monitor, error) {
	errorTotal, err := meter.Int64Counter("sli.pipeline.errors",
		metric.WithDescription("Contained pipeline stage failures by SLI and stage"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sli.pipeline.errors counter: %w", err)
	}

	tickTotal, err := meter.Int64Counter("sli.pipeline.ticks",
		metric.WithDescription("Aggregation ticks processed by SLI"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sli.pipeline.ticks counter: %w", err)
	}

	publishTotal, err := meter.Int64Counter("sli.pipeline.publishes",
		metric.WithDescription("Datapoints published back to the backend by SLI"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sli.pipeline.publishes counter: %w", err)
	}

	return &Monitor{
		log:          log.WithComponent("monitor"),
		errorTotal:   errorTotal,
		tickTotal:    tickTotal,
		publishTotal: publishTotal,
	}, nil
}

// Report logs the failure and increments the error counter.
func (m *Monitor) Report(ctx context.Context, sli, stage string, err error) {
	m.log.WithError(err).Error("pipeline stage failure", logger.Fields(
		logger.FieldSLI, sli,
		logger.FieldStage, stage,
		"code", string(errors.CodeOf(err)),
	))
	m.errorTotal.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("sli", sli),
			attribute.String("stage", stage),
			attribute.String("code", string(errors.CodeOf(err))),
		))
}

// RecordTick counts one completed aggregation tick for sli.
func (m *Monitor) RecordTick(ctx context.Context, sli string) {
	m.tickTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("sli", sli)))
}

// RecordPublish counts datapoints published for sli.
func (m *Monitor) RecordPublish(ctx context.Context, sli string, points int) {
	m.publishTotal.Add(ctx, int64(points),
		metric.WithAttributes(attribute.String("sli", sli)))
}

// Recorder captures reports in memory. Test helper.
type Recorder struct {
	mu      sync.Mutex
	reports []Report
}

// Report is one captured failure.
type Report struct {
	SLI   string
	Stage string
	Err   error
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Report appends the failure to the in-memory list.
func (r *Recorder) Report(_ context.Context, sli, stage string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, Report{SLI: sli, Stage: stage, Err: err})
}

// Reports returns a copy of all captured failures.
func (r *Recorder) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}
