package sli

import (
	"strconv"

	"github.com/kbukum/slikit/timeseries"
)

// SpecKind tags the variant of a stream spec.
type SpecKind string

const (
	// SpecDirect names a metric already present in the backend.
	SpecDirect SpecKind = "direct"
	// SpecDerived names a metric published under the per-percentile
	// naming convention "{metric}.{resolution}.p{percentile}".
	SpecDerived SpecKind = "derived"
)

// Spec describes how to obtain one input time series.
type Spec struct {
	Kind       SpecKind              `yaml:"spec" json:"spec"`
	Metric     string                `yaml:"metric" json:"metric"`
	Resolution timeseries.Resolution `yaml:"resolution" json:"resolution"`
	Percentile float64               `yaml:"percentile,omitempty" json:"percentile,omitempty"`
}

// Direct builds a spec for a metric stored under its own name.
func Direct(metric string, resolution timeseries.Resolution) Spec {
	return Spec{Kind: SpecDirect, Metric: metric, Resolution: resolution}
}

// Derived builds a spec for a percentile series of metric.
func Derived(metric string, resolution timeseries.Resolution, percentile float64) Spec {
	return Spec{Kind: SpecDerived, Metric: metric, Resolution: resolution, Percentile: percentile}
}

// derivedName renders the backend naming convention for a percentile
// series. The percentile keeps its shortest decimal form, so 95 and
// 99.9 come out as "p95" and "p99.9".
func (s Spec) derivedName() string {
	p := strconv.FormatFloat(s.Percentile, 'f', -1, 64)
	return s.Metric + "." + string(s.Resolution) + ".p" + p
}
