package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/kbukum/slikit/errors"
	"github.com/kbukum/slikit/logger"
	"github.com/kbukum/slikit/resilience"
	"github.com/kbukum/slikit/timeseries"
)

// Publisher writes computed datapoints back to the backend.
type Publisher interface {
	Publish(ctx context.Context, metric string, typ timeseries.MetricType, points []timeseries.Datapoint) error
}

// Ingestor is the HTTP implementation of Publisher.
type Ingestor struct {
	cfg     Config
	http    *http.Client
	breaker *resilience.CircuitBreaker
	log     *logger.Logger
}

// NewIngestor creates a backend ingest client.
func NewIngestor(cfg Config, log *logger.Logger) *Ingestor {
	cfg.ApplyDefaults()
	breakerCfg := resilience.DefaultCircuitBreakerConfig("backend-ingest")
	if cfg.BreakerFailures > 0 {
		breakerCfg.MaxFailures = cfg.BreakerFailures
	}
	breakerCfg.Timeout = cfg.BreakerTimeout
	breakerCfg.OnStateChange = func(name string, from, to resilience.State) {
		log.Warn("circuit breaker state change", logger.Fields(
			logger.FieldComponent, name,
			"from", from.String(),
			"to", to.String(),
		))
	}

	return &Ingestor{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: resilience.NewCircuitBreaker(breakerCfg),
		log:     log.WithComponent("backend.ingest"),
	}
}

// ingestRequest is the wire shape of a publish call.
type ingestRequest struct {
	Metric string                 `json:"metric"`
	Type   timeseries.MetricType  `json:"type"`
	Points []timeseries.Datapoint `json:"points"`
}

// Publish writes points for metric. Transport failures and 5xx responses
// are retried; any remaining failure comes back as an ingest error.
func (in *Ingestor) Publish(ctx context.Context, metric string, typ timeseries.MetricType, points []timeseries.Datapoint) error {
	if len(points) == 0 {
		return nil
	}

	body, err := json.Marshal(ingestRequest{Metric: metric, Type: typ, Points: points})
	if err != nil {
		return errors.IngestFailed(metric, err)
	}
	endpoint := in.cfg.BaseURL + "/api/v1/ingest"

	err = resilience.RetryFunc(ctx, in.cfg.Retry, func() error {
		return in.breaker.Execute(func() error {
			return in.doPublish(ctx, endpoint, body)
		})
	})
	if err != nil {
		return errors.IngestFailed(metric, err)
	}

	in.log.Debug("publish complete", logger.Fields(
		logger.FieldMetric, metric,
		"points", len(points),
	))
	return nil
}

func (in *Ingestor) doPublish(ctx context.Context, endpoint string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.ConnectionFailed(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := in.http.Do(req)
	if err != nil {
		return errors.ConnectionFailed(err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	return classifyStatus(resp.StatusCode)
}
