package timeseries

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/common/model"

	"github.com/kbukum/slikit/errors"
)

// Resolution is the named sampling interval of a metric stream. It drives
// both the query cadence of a polling source and its lookback window.
type Resolution string

// Built-in resolutions.
const (
	ResFiveMinutes Resolution = "5m"
	ResHour        Resolution = "1h"
	ResDay         Resolution = "1d"
	ResWeek        Resolution = "1w"
)

var (
	resMu sync.RWMutex
	// Duration strings use the prometheus notation, which understands
	// day and week units that time.ParseDuration does not.
	resTable = map[Resolution]time.Duration{
		ResFiveMinutes: mustParseDuration("5m"),
		ResHour:        mustParseDuration("1h"),
		ResDay:         mustParseDuration("1d"),
		ResWeek:        mustParseDuration("1w"),
	}
)

// Duration returns the duration of the resolution and whether the
// resolution name is known.
func (r Resolution) Duration() (time.Duration, bool) {
	resMu.RLock()
	defer resMu.RUnlock()
	d, ok := resTable[r]
	return d, ok
}

// Define registers an additional named resolution. The value uses
// prometheus duration notation (e.g. "90s", "2h", "3d"). Defining an
// existing name overwrites it.
func Define(name, value string) error {
	if name == "" {
		return errors.MissingField("resolution name")
	}
	d, err := model.ParseDuration(value)
	if err != nil {
		return errors.UnknownResolution(name).WithCause(err).WithDetail("value", value)
	}
	resMu.Lock()
	defer resMu.Unlock()
	resTable[Resolution(name)] = time.Duration(d)
	return nil
}

// Resolutions returns the sorted names of all known resolutions.
func Resolutions() []Resolution {
	resMu.RLock()
	defer resMu.RUnlock()
	names := make([]Resolution, 0, len(resTable))
	for name := range resTable {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func mustParseDuration(s string) time.Duration {
	d, err := model.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return time.Duration(d)
}
