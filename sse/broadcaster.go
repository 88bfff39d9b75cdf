package sse

import "github.com/kbukum/slikit/timeseries"

// Broadcaster fans published samples out to subscribers. Handlers
// depend on this abstraction rather than the concrete Hub.
type Broadcaster interface {
	// Sample delivers one published SLI sample to matching clients.
	Sample(sli string, point timeseries.Datapoint)
}
