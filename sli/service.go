package sli

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/slikit/backend"
	"github.com/kbukum/slikit/clock"
	"github.com/kbukum/slikit/component"
	"github.com/kbukum/slikit/di"
	"github.com/kbukum/slikit/errors"
	"github.com/kbukum/slikit/logger"
	"github.com/kbukum/slikit/monitor"
)

// Service runs the registered SLI pipelines as one lifecycle component.
// Pipeline resources come from the dependency container; a declaration
// that fails to build is reported and skipped so the rest keep running.
type Service struct {
	registry  *Registry
	container *di.Container
	log       *logger.Logger

	mu        sync.Mutex
	pipelines map[string]*Pipeline
	failed    []string
}

// NewService creates the SLI service.
func NewService(registry *Registry, container *di.Container, log *logger.Logger) *Service {
	return &Service{
		registry:  registry,
		container: container,
		log:       log.WithComponent("sli.service"),
		pipelines: make(map[string]*Pipeline),
	}
}

// Name implements component.Component.
func (s *Service) Name() string { return "slis" }

// Start builds the pipeline context from the container and starts one
// pipeline per non-test declaration.
func (s *Service) Start(ctx context.Context) error {
	pctx, err := s.pipelineContext()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.registry.All() {
		if d.TestOnly {
			s.log.Debug("skipping test-only declaration", logger.Fields(logger.FieldSLI, d.Name))
			continue
		}

		var err error
		for _, resource := range d.Requires {
			if !s.container.Has(resource) {
				err = errors.NotRegistered("resource", resource)
				break
			}
		}

		var p *Pipeline
		if err == nil {
			p, err = d.Start(ctx, pctx)
		}
		if err != nil {
			// A misconfigured SLI must not take down its siblings.
			pctx.Monitor.Report(ctx, d.Name, "build", err)
			s.failed = append(s.failed, d.Name)
			continue
		}
		s.pipelines[d.Name] = p
	}

	s.log.Info("pipelines running", logger.Fields(
		"running", len(s.pipelines),
		"failed", len(s.failed),
	))
	return nil
}

// Stop tears down all running pipelines.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for name, p := range s.pipelines {
		if err := p.Stop(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(s.pipelines, name)
	}
	return firstErr
}

// Health implements component.Component. Build failures degrade the
// service without marking it unhealthy.
func (s *Service) Health(_ context.Context) component.Health {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := component.Health{Name: s.Name(), Status: component.StatusHealthy}
	if len(s.failed) > 0 {
		h.Status = component.StatusDegraded
		h.Message = fmt.Sprintf("%d declaration(s) failed to build", len(s.failed))
	}
	return h
}

// Running returns the names of currently running pipelines, for the
// admin server.
func (s *Service) Running() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.pipelines))
	for name := range s.pipelines {
		names = append(names, name)
	}
	return names
}

// pipelineContext resolves the fixed resource set from the container.
func (s *Service) pipelineContext() (*PipelineContext, error) {
	clk, err := di.Resolve[clock.Clock](s.container, di.Clock)
	if err != nil {
		return nil, err
	}
	mon, err := di.Resolve[monitor.Reporter](s.container, di.Monitor)
	if err != nil {
		return nil, err
	}
	querier, err := di.Resolve[backend.Querier](s.container, di.BackendClient)
	if err != nil {
		return nil, err
	}
	publisher, err := di.Resolve[backend.Publisher](s.container, di.IngestClient)
	if err != nil {
		return nil, err
	}

	pctx := &PipelineContext{
		Clock:   clk,
		Backend: querier,
		Ingest:  publisher,
		Monitor: mon,
		Log:     s.log,
	}
	if events, ok := di.TryResolve[SampleListener](s.container, di.Events); ok {
		pctx.Events = events
	}
	return pctx, nil
}
