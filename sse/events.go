package sse

import "time"

// SampleEvent is the JSON payload streamed for each published sample.
type SampleEvent struct {
	SLI   string    `json:"sli"`
	Value float64   `json:"value"`
	Time  time.Time `json:"time"`
}

// ConnectedEvent is sent once when a client successfully connects.
type ConnectedEvent struct {
	ClientID string `json:"client_id"`
	SLI      string `json:"sli,omitempty"`
}

// SSE event type names.
const (
	EventTypeConnected = "connected"
	EventTypeSample    = "sample"
)
