package timeseries

import "time"

// Datapoint is a single timestamped sample flowing through a stream.
type Datapoint struct {
	Time  time.Time `json:"t"`
	Value float64   `json:"v"`
}

// MetricType categorizes a published metric.
type MetricType string

const (
	// Gauge is a point-in-time value.
	Gauge MetricType = "gauge"
	// Counter is a monotonically increasing value.
	Counter MetricType = "counter"
)
