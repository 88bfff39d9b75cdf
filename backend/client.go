package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kbukum/slikit/errors"
	"github.com/kbukum/slikit/logger"
	"github.com/kbukum/slikit/resilience"
	"github.com/kbukum/slikit/timeseries"
)

// Querier reads raw datapoints for a metric from the backend.
type Querier interface {
	// Query returns all datapoints for metric with timestamps at or
	// after from, in ascending time order.
	Query(ctx context.Context, metric string, from time.Time) ([]timeseries.Datapoint, error)
}

// Client is the HTTP implementation of Querier.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *resilience.CircuitBreaker
	log     *logger.Logger
}

// NewClient creates a backend query client.
func NewClient(cfg Config, log *logger.Logger) *Client {
	cfg.ApplyDefaults()
	breakerCfg := resilience.DefaultCircuitBreakerConfig("backend-query")
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

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: resilience.NewCircuitBreaker(breakerCfg),
		log:     log.WithComponent("backend.client"),
	}
}

// pointsResponse is the wire shape of a query result.
type pointsResponse struct {
	Points []timeseries.Datapoint `json:"points"`
}

// Query fetches datapoints at or after from. Transport failures and 5xx
// responses are retried; 4xx responses fail immediately.
func (c *Client) Query(ctx context.Context, metric string, from time.Time) ([]timeseries.Datapoint, error) {
	endpoint := fmt.Sprintf("%s/api/v1/metrics/%s/points?from=%s",
		c.cfg.BaseURL,
		url.PathEscape(metric),
		strconv.FormatInt(from.UnixMilli(), 10),
	)

	points, err := resilience.Retry(ctx, c.cfg.Retry, func() ([]timeseries.Datapoint, error) {
		var out []timeseries.Datapoint
		execErr := c.breaker.Execute(func() error {
			var err error
			out, err = c.doQuery(ctx, endpoint)
			return err
		})
		return out, execErr
	})
	if err != nil {
		return nil, errors.QueryFailed(metric, err)
	}

	c.log.Debug("query complete", logger.Fields(
		logger.FieldMetric, metric,
		"points", len(points),
	))
	return points, nil
}

func (c *Client) doQuery(ctx context.Context, endpoint string) ([]timeseries.Datapoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.ConnectionFailed(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.ConnectionFailed(err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if err := classifyStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	var body pointsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.ConnectionFailed(err)
	}
	return body.Points, nil
}

// classifyStatus maps an HTTP status to a retryable or terminal error.
func classifyStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusTooManyRequests || status >= 500:
		return errors.BackendUnavailable(status)
	default:
		return errors.InvalidSpec(fmt.Sprintf("backend rejected request with status %d", status))
	}
}
