package sse

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/slikit/component"
)

// Component wraps a Hub as a lifecycle-managed component so Start and
// Stop are handled by the component registry.
type Component struct {
	hub *Hub
	wg  sync.WaitGroup
	mu  sync.Mutex
}

var _ component.Component = (*Component)(nil)

// NewComponent wraps hub in a lifecycle component.
func NewComponent(hub *Hub) *Component {
	return &Component{hub: hub}
}

// Hub returns the underlying hub for route mounting and sample wiring.
func (c *Component) Hub() *Hub { return c.hub }

// Name implements component.Component.
func (c *Component) Name() string { return "sse" }

// Start launches the hub's fan-out loop in a background goroutine.
func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.hub.Run()
	}()
	return nil
}

// Stop shuts the hub down and waits for Run to return.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hub.Stop()
	c.wg.Wait()
	return nil
}

// Health implements component.Component.
func (c *Component) Health(_ context.Context) component.Health {
	return component.Health{
		Name:    c.Name(),
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("%d subscribers", c.hub.ClientCount()),
	}
}
