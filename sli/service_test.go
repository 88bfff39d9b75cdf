package sli

import (
	"context"
	"testing"
	"time"

	"github.com/kbukum/slikit/clock"
	"github.com/kbukum/slikit/component"
	"github.com/kbukum/slikit/di"
	"github.com/kbukum/slikit/errors"
	"github.com/kbukum/slikit/logger"
	"github.com/kbukum/slikit/monitor"
	"github.com/kbukum/slikit/timeseries"
)

func testContainer(q *fakeQuerier, pub *fakePublisher, m *clock.Manual, rec *monitor.Recorder) *di.Container {
	c := di.NewContainer()
	c.RegisterSingleton(di.Clock, m)
	c.RegisterSingleton(di.Monitor, rec)
	c.RegisterSingleton(di.BackendClient, q)
	c.RegisterSingleton(di.IngestClient, pub)
	return c
}

func TestServiceStartsDeclaredPipelines(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	q := newFakeQuerier()
	q.addPoint("a", base, 1)
	pub := &fakePublisher{}
	m := clock.NewManual(base)
	rec := monitor.NewRecorder()

	registry := NewRegistry()
	registry.Declare(Declaration{
		Name:      "live",
		Inputs:    StaticInputs{Direct("a", timeseries.ResHour)},
		Aggregate: Sum,
	})
	registry.Declare(Declaration{
		Name:      "lab",
		Inputs:    StaticInputs{Direct("a", timeseries.ResHour)},
		Aggregate: Sum,
		TestOnly:  true,
	})

	svc := NewService(registry, testContainer(q, pub, m, rec), logger.NewDefault("test"))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer svc.Stop(context.Background())

	running := svc.Running()
	if len(running) != 1 || running[0] != "live" {
		t.Errorf("running = %v, want only the non-test declaration", running)
	}
	if h := svc.Health(context.Background()); h.Status != component.StatusHealthy {
		t.Errorf("health = %v", h)
	}
}

func TestServiceIsolatesBuildFailures(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	q := newFakeQuerier()
	q.addPoint("a", base, 1)
	pub := &fakePublisher{}
	m := clock.NewManual(base)
	rec := monitor.NewRecorder()

	registry := NewRegistry()
	registry.Declare(Declaration{
		Name:      "good",
		Inputs:    StaticInputs{Direct("a", timeseries.ResHour)},
		Aggregate: Sum,
	})
	registry.Declare(Declaration{
		Name:      "bad",
		Inputs:    StaticInputs{Direct("a", "2fortnights")},
		Aggregate: Sum,
	})

	svc := NewService(registry, testContainer(q, pub, m, rec), logger.NewDefault("test"))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start must not fail for one bad declaration: %v", err)
	}
	defer svc.Stop(context.Background())

	running := svc.Running()
	if len(running) != 1 || running[0] != "good" {
		t.Errorf("running = %v", running)
	}

	builds := stageReports(rec, "build")
	if len(builds) != 1 {
		t.Fatalf("build reports = %d, want 1", len(builds))
	}
	if builds[0].SLI != "bad" {
		t.Errorf("report sli = %q", builds[0].SLI)
	}
	if errors.CodeOf(builds[0].Err) != errors.ErrCodeUnknownResolution {
		t.Errorf("report code = %v", errors.CodeOf(builds[0].Err))
	}

	if h := svc.Health(context.Background()); h.Status != component.StatusDegraded {
		t.Errorf("health = %v, want degraded", h.Status)
	}
}

func TestServiceChecksRequiredResources(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	q := newFakeQuerier()
	pub := &fakePublisher{}
	m := clock.NewManual(base)
	rec := monitor.NewRecorder()

	registry := NewRegistry()
	registry.Declare(Declaration{
		Name:      "needs-cache",
		Requires:  []string{"cache"},
		Inputs:    StaticInputs{Direct("a", timeseries.ResHour)},
		Aggregate: Sum,
	})

	svc := NewService(registry, testContainer(q, pub, m, rec), logger.NewDefault("test"))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer svc.Stop(context.Background())

	if len(svc.Running()) != 0 {
		t.Errorf("running = %v, want none", svc.Running())
	}
	builds := stageReports(rec, "build")
	if len(builds) != 1 || errors.CodeOf(builds[0].Err) != errors.ErrCodeNotRegistered {
		t.Errorf("build reports = %v", builds)
	}
}

func TestServiceStartFailsWithoutResources(t *testing.T) {
	registry := NewRegistry()
	svc := NewService(registry, di.NewContainer(), logger.NewDefault("test"))
	if err := svc.Start(context.Background()); err == nil {
		t.Fatal("expected error when the container is empty")
	}
}
