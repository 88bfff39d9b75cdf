package sli

import (
	"fmt"
	"os"

	yaml "go.yaml.in/yaml/v3"

	"github.com/kbukum/slikit/errors"
	"github.com/kbukum/slikit/timeseries"
)

// declarationFile is the YAML shape of an SLI declaration file:
//
//	slis:
//	  - name: availability
//	    description: success over total
//	    aggregate: ratio
//	    inputs:
//	      - spec: direct
//	        metric: requests.success
//	        resolution: 1h
//	      - spec: direct
//	        metric: requests.total
//	        resolution: 1h
type declarationFile struct {
	SLIs []declarationEntry `yaml:"slis"`
}

type declarationEntry struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Requires    []string    `yaml:"requires"`
	Aggregate   string      `yaml:"aggregate"`
	TestOnly    bool        `yaml:"test_only"`
	Inputs      []specEntry `yaml:"inputs"`
}

type specEntry struct {
	Spec       string  `yaml:"spec"`
	Metric     string  `yaml:"metric"`
	Resolution string  `yaml:"resolution"`
	Percentile float64 `yaml:"percentile"`
}

// LoadFile reads a declaration file and registers every SLI it contains.
// Returns the number of declarations registered. An unknown aggregator
// name or a malformed entry fails the whole load.
func LoadFile(path string, registry *Registry) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading declaration file: %w", err)
	}
	return load(data, registry)
}

func load(data []byte, registry *Registry) (int, error) {
	var file declarationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("parsing declaration file: %w", err)
	}

	count := 0
	for _, entry := range file.SLIs {
		if entry.Aggregate == "" {
			return count, errors.MissingField("aggregate").WithDetail("sli", entry.Name)
		}
		fn, ok := AggregateByName(entry.Aggregate)
		if !ok {
			return count, errors.NotRegistered("aggregate", entry.Aggregate).WithDetail("sli", entry.Name)
		}

		specs := make(StaticInputs, len(entry.Inputs))
		for i, in := range entry.Inputs {
			specs[i] = Spec{
				Kind:       SpecKind(in.Spec),
				Metric:     in.Metric,
				Resolution: timeseries.Resolution(in.Resolution),
				Percentile: in.Percentile,
			}
		}

		err := registry.Declare(Declaration{
			Name:        entry.Name,
			Description: entry.Description,
			Requires:    entry.Requires,
			Inputs:      specs,
			Aggregate:   fn,
			TestOnly:    entry.TestOnly,
		})
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
