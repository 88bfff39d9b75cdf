package sse

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/kbukum/slikit/logger"
	"github.com/kbukum/slikit/timeseries"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(logger.NewDefault("test"))
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

func receive(t *testing.T, c *Client) SampleEvent {
	t.Helper()
	select {
	case data, open := <-c.Events():
		if !open {
			t.Fatal("events channel closed")
		}
		var event SampleEvent
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return SampleEvent{}
}

func expectNothing(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.Events():
		t.Fatalf("unexpected event: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubFansOutToAllSubscribers(t *testing.T) {
	hub := startHub(t)

	all := NewClient("all", "")
	hub.Register(all)
	other := NewClient("other", "")
	hub.Register(other)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	hub.Sample("availability", timeseries.Datapoint{Time: at, Value: 0.99})

	for _, c := range []*Client{all, other} {
		event := receive(t, c)
		if event.SLI != "availability" || event.Value != 0.99 || !event.Time.Equal(at) {
			t.Errorf("client %s event = %+v", c.ID(), event)
		}
	}
}

func TestHubFiltersBySLI(t *testing.T) {
	hub := startHub(t)

	filtered := NewClient("filtered", "latency")
	hub.Register(filtered)

	hub.Sample("availability", timeseries.Datapoint{Value: 1})
	expectNothing(t, filtered)

	hub.Sample("latency", timeseries.Datapoint{Value: 42})
	if event := receive(t, filtered); event.SLI != "latency" || event.Value != 42 {
		t.Errorf("event = %+v", event)
	}
}

func TestHubUnregisterClosesChannel(t *testing.T) {
	hub := startHub(t)

	client := NewClient("c1", "")
	hub.Register(client)
	if hub.ClientCount() != 1 {
		t.Fatalf("count = %d", hub.ClientCount())
	}

	hub.Unregister(client)
	select {
	case _, open := <-client.Events():
		if open {
			t.Fatal("expected closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("count = %d", hub.ClientCount())
	}
}

func TestHubStopDisconnectsClients(t *testing.T) {
	hub := NewHub(logger.NewDefault("test"))
	go hub.Run()

	client := NewClient("c1", "")
	hub.Register(client)

	hub.Stop()
	select {
	case _, open := <-client.Events():
		if open {
			t.Fatal("expected closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after stop")
	}

	// After shutdown, Sample and Register must not block.
	hub.Sample("availability", timeseries.Datapoint{Value: 1})
	hub.Register(NewClient("c2", ""))
}

func TestComponentLifecycle(t *testing.T) {
	comp := NewComponent(NewHub(logger.NewDefault("test")))

	if err := comp.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	client := NewClient("c1", "")
	comp.Hub().Register(client)
	comp.Hub().Sample("availability", timeseries.Datapoint{Value: 1})
	receive(t, client)

	if err := comp.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
