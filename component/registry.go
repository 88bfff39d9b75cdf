package component

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/slikit/logger"
)

// componentEntry holds a component and its started state.
type componentEntry struct {
	component Component
	started   bool
}

// Registry manages component lifecycle with deterministic ordering.
// Components are started in registration order and stopped in reverse order.
type Registry struct {
	entries []*componentEntry
	lookup  map[string]*componentEntry
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make([]*componentEntry, 0),
		lookup:  make(map[string]*componentEntry),
	}
}

// Register adds a component. Components start in registration order, so
// register dependencies first.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.lookup[name]; exists {
		return fmt.Errorf("component %s already registered", name)
	}

	entry := &componentEntry{component: c}
	r.entries = append(r.entries, entry)
	r.lookup[name] = entry

	logger.Debug("component registered", logger.Fields(logger.FieldComponent, name))
	return nil
}

// StartAll starts all components in registration order. The first
// failure aborts startup and is returned.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger.Info("starting components", logger.Fields("count", len(r.entries)))

	for _, entry := range r.entries {
		name := entry.component.Name()
		if err := entry.component.Start(ctx); err != nil {
			logger.Error("component start failed", logger.Fields(
				logger.FieldComponent, name,
				logger.FieldError, err.Error(),
			))
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		entry.started = true
		logger.Debug("component started", logger.Fields(logger.FieldComponent, name))
	}

	logger.Info("all components started")
	return nil
}

// StopAll stops started components in reverse registration order, each
// with a bounded timeout. All components are attempted; the combined
// errors are returned.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger.Info("stopping components")

	var errs []error
	for i := len(r.entries) - 1; i >= 0; i-- {
		entry := r.entries[i]
		if !entry.started {
			continue
		}

		name := entry.component.Name()
		stopCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := entry.component.Stop(stopCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", name, err))
			logger.Error("component stop failed", logger.Fields(
				logger.FieldComponent, name,
				logger.FieldError, err.Error(),
			))
		} else {
			logger.Debug("component stopped", logger.Fields(logger.FieldComponent, name))
		}
		entry.started = false
		cancel()
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}

// HealthAll returns the health of every registered component.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]Health, 0, len(r.entries))
	for _, entry := range r.entries {
		results = append(results, entry.component.Health(ctx))
	}
	return results
}

// Get returns a registered component by name, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, exists := r.lookup[name]; exists {
		return entry.component
	}
	return nil
}

// All returns all registered components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Component, 0, len(r.entries))
	for _, entry := range r.entries {
		result = append(result, entry.component)
	}
	return result
}
