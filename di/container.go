package di

import (
	"fmt"
	"io"
	"sync"
)

// Constructor builds a component instance on first resolution.
type Constructor func() (any, error)

// registration tracks one registered component.
type registration struct {
	key         string
	constructor Constructor
	instance    any
	initialized bool
	lastErr     error
}

// Container holds lazily-constructed components keyed by name.
type Container struct {
	mu    sync.Mutex
	comps map[string]*registration
	order []string
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{comps: make(map[string]*registration)}
}

// Register registers a lazy constructor under key. Re-registering a key
// replaces the previous constructor; an already-built instance is kept.
func (c *Container) Register(key string, constructor Constructor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.comps[key]; ok {
		existing.constructor = constructor
		return
	}
	c.comps[key] = &registration{key: key, constructor: constructor}
	c.order = append(c.order, key)
}

// RegisterSingleton registers a pre-built instance under key.
func (c *Container) RegisterSingleton(key string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.comps[key]; ok {
		existing.instance = instance
		existing.initialized = true
		existing.lastErr = nil
		return
	}
	c.comps[key] = &registration{key: key, instance: instance, initialized: true}
	c.order = append(c.order, key)
}

// Has reports whether key is registered.
func (c *Container) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.comps[key]
	return ok
}

// Resolve returns the instance for key, building it on first access.
// A failed construction is retried on the next Resolve.
func (c *Container) Resolve(key string) (any, error) {
	c.mu.Lock()
	reg, ok := c.comps[key]
	if !ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("di: component %q not registered", key)
	}
	if reg.initialized {
		instance := reg.instance
		c.mu.Unlock()
		return instance, nil
	}
	constructor := reg.constructor
	c.mu.Unlock()

	if constructor == nil {
		return nil, fmt.Errorf("di: component %q has no constructor", key)
	}

	instance, err := constructor()

	c.mu.Lock()
	defer c.mu.Unlock()
	if reg.initialized {
		// Another goroutine won the race; keep its instance.
		return reg.instance, nil
	}
	if err != nil {
		reg.lastErr = err
		return nil, fmt.Errorf("di: building %q: %w", key, err)
	}
	reg.instance = instance
	reg.initialized = true
	reg.lastErr = nil
	return instance, nil
}

// Keys returns all registered keys in registration order.
func (c *Container) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Close closes built components that implement io.Closer, in reverse
// registration order. Returns the first close error encountered.
func (c *Container) Close() error {
	c.mu.Lock()
	var closers []io.Closer
	for i := len(c.order) - 1; i >= 0; i-- {
		reg := c.comps[c.order[i]]
		if !reg.initialized {
			continue
		}
		if closer, ok := reg.instance.(io.Closer); ok {
			closers = append(closers, closer)
		}
	}
	c.mu.Unlock()

	var firstErr error
	for _, closer := range closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
