// Package validation provides input validation for configuration and
// indicator definitions.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type Backend struct {
//	    BaseURL string `validate:"required,url"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("metric", spec.Metric)
//	v.Percentile("percentile", spec.Percentile)
//	err := v.Error()
package validation
