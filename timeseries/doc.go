// Package timeseries defines the core datapoint model shared by every
// stream stage: timestamp-ordered numeric samples, metric types, and
// the named resolution table mapping sampling intervals to durations.
package timeseries
