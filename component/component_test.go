package component

import (
	"context"
	"errors"
	"testing"
)

type fakeComponent struct {
	name     string
	startErr error
	stopErr  error
	events   *[]string
	health   HealthStatus
}

func (f *fakeComponent) Name() string { return f.name }

func (f *fakeComponent) Start(_ context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	*f.events = append(*f.events, "start:"+f.name)
	return nil
}

func (f *fakeComponent) Stop(_ context.Context) error {
	if f.stopErr != nil {
		return f.stopErr
	}
	*f.events = append(*f.events, "stop:"+f.name)
	return nil
}

func (f *fakeComponent) Health(_ context.Context) Health {
	status := f.health
	if status == "" {
		status = StatusHealthy
	}
	return Health{Name: f.name, Status: status}
}

func TestRegistryOrdering(t *testing.T) {
	var events []string
	r := NewRegistry()
	for _, name := range []string{"backend", "slis", "server"} {
		if err := r.Register(&fakeComponent{name: name, events: &events}); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}

	ctx := context.Background()
	if err := r.StartAll(ctx); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(ctx); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := []string{
		"start:backend", "start:slis", "start:server",
		"stop:server", "stop:slis", "stop:backend",
	}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
}

func TestRegistryDuplicateName(t *testing.T) {
	var events []string
	r := NewRegistry()
	if err := r.Register(&fakeComponent{name: "backend", events: &events}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&fakeComponent{name: "backend", events: &events}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestRegistryStartFailureAborts(t *testing.T) {
	var events []string
	r := NewRegistry()
	r.Register(&fakeComponent{name: "a", events: &events})
	r.Register(&fakeComponent{name: "b", events: &events, startErr: errors.New("boom")})
	r.Register(&fakeComponent{name: "c", events: &events})

	ctx := context.Background()
	if err := r.StartAll(ctx); err == nil {
		t.Fatal("expected start failure")
	}

	// Only a started; stopping must not touch b or c.
	if err := r.StopAll(ctx); err != nil {
		t.Fatalf("StopAll: %v", err)
	}
	want := []string{"start:a", "stop:a"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
}

func TestRegistryHealthAll(t *testing.T) {
	var events []string
	r := NewRegistry()
	r.Register(&fakeComponent{name: "up", events: &events})
	r.Register(&fakeComponent{name: "down", events: &events, health: StatusUnhealthy})

	healths := r.HealthAll(context.Background())
	if len(healths) != 2 {
		t.Fatalf("healths = %d, want 2", len(healths))
	}
	if healths[0].Status != StatusHealthy || healths[1].Status != StatusUnhealthy {
		t.Errorf("healths = %v", healths)
	}
}

func TestRegistryGet(t *testing.T) {
	var events []string
	r := NewRegistry()
	c := &fakeComponent{name: "backend", events: &events}
	r.Register(c)

	if got := r.Get("backend"); got != c {
		t.Error("Get returned wrong component")
	}
	if got := r.Get("missing"); got != nil {
		t.Error("Get(missing) should be nil")
	}
}
