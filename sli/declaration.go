package sli

import (
	"context"

	"github.com/kbukum/slikit/errors"
)

// Inputs is the sealed set of ways a declaration names its input specs:
// a static list, or a function invoked once per pipeline build.
type Inputs interface {
	isInputs()
}

// StaticInputs is a fixed list of stream specs.
type StaticInputs []Spec

func (StaticInputs) isInputs() {}

// DynamicInputs computes the spec list at build time with the pipeline
// context bound, so it may read declared resources.
type DynamicInputs func(ctx context.Context, pctx *PipelineContext) ([]Spec, error)

func (DynamicInputs) isInputs() {}

// Declaration describes one SLI: its inputs, its aggregation, and the
// metadata handed to the registry. Immutable after registration.
type Declaration struct {
	// Name is the SLI name; the output is published as "sli.<Name>".
	Name string
	// Description is free-form documentation for operators.
	Description string
	// Requires lists resource names beyond the fixed set (monitor,
	// clock, backend client, ingest client) this SLI needs.
	Requires []string
	// Inputs names the input streams.
	Inputs Inputs
	// Aggregate reduces each aligned tuple to the output value.
	Aggregate AggregateFunc
	// TestOnly excludes the declaration from production startup.
	TestOnly bool
}

// resolveInputs evaluates Inputs into a concrete spec list.
func (d *Declaration) resolveInputs(ctx context.Context, pctx *PipelineContext) ([]Spec, error) {
	switch in := d.Inputs.(type) {
	case StaticInputs:
		return in, nil
	case DynamicInputs:
		return in(ctx, pctx)
	case nil:
		return nil, errors.MissingField("inputs")
	default:
		return nil, errors.InvalidSpec("unsupported inputs type")
	}
}

// Metric is the backend name the aggregated series publishes under.
func (d *Declaration) Metric() string {
	return "sli." + d.Name
}
