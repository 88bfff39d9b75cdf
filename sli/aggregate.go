package sli

import "fmt"

// AggregateFunc reduces one aligned tuple of input values into a single
// output value. It must be pure; it is called once per clock tick with
// values in source-declaration order.
type AggregateFunc func(values []float64) (float64, error)

// Built-in aggregators available by name to the declaration loader.

// Sum adds all inputs.
func Sum(values []float64) (float64, error) {
	var total float64
	for _, v := range values {
		total += v
	}
	return total, nil
}

// Avg returns the arithmetic mean of the inputs.
func Avg(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("avg of empty tuple")
	}
	total, _ := Sum(values)
	return total / float64(len(values)), nil
}

// Min returns the smallest input.
func Min(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("min of empty tuple")
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m, nil
}

// Max returns the largest input.
func Max(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("max of empty tuple")
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m, nil
}

// Range returns max minus min.
func Range(values []float64) (float64, error) {
	lo, err := Min(values)
	if err != nil {
		return 0, err
	}
	hi, _ := Max(values)
	return hi - lo, nil
}

// Ratio divides the first input by the second. Exactly two inputs are
// required and the divisor must be non-zero.
func Ratio(values []float64) (float64, error) {
	if len(values) != 2 {
		return 0, fmt.Errorf("ratio requires exactly 2 inputs, got %d", len(values))
	}
	if values[1] == 0 {
		return 0, fmt.Errorf("ratio divisor is zero")
	}
	return values[0] / values[1], nil
}

var builtinAggregators = map[string]AggregateFunc{
	"sum":   Sum,
	"avg":   Avg,
	"min":   Min,
	"max":   Max,
	"range": Range,
	"ratio": Ratio,
}

// AggregateByName returns a built-in aggregator by its declaration-file name.
func AggregateByName(name string) (AggregateFunc, bool) {
	fn, ok := builtinAggregators[name]
	return fn, ok
}
