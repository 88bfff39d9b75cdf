package di

// Component names used by the daemon wiring.
const (
	// Clock is the shared time source driving all pipelines.
	Clock = "clock"
	// Monitor is the failure reporter.
	Monitor = "monitor"
	// BackendClient is the metric query client.
	BackendClient = "backend_client"
	// IngestClient is the metric publish client.
	IngestClient = "ingest_client"
	// Events is the optional published-sample listener.
	Events = "events"
)
