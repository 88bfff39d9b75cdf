package sse

import (
	"encoding/json"
	"sync"

	"github.com/kbukum/slikit/logger"
	"github.com/kbukum/slikit/timeseries"
)

// Client is one connected SSE subscriber.
type Client struct {
	id     string
	sli    string // empty subscribes to every SLI
	events chan []byte
}

// NewClient creates a subscriber. An empty sli subscribes to all SLIs.
func NewClient(id, sli string) *Client {
	return &Client{
		id:     id,
		sli:    sli,
		events: make(chan []byte, 64),
	}
}

// ID returns the client's identifier.
func (c *Client) ID() string { return c.id }

// SLI returns the SLI filter, empty for all.
func (c *Client) SLI() string { return c.sli }

// Events returns the channel the handler reads events from.
func (c *Client) Events() <-chan []byte { return c.events }

// send queues data without blocking. A full channel means the client
// is too slow and the event is dropped.
func (c *Client) send(data []byte) bool {
	select {
	case c.events <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	close(c.events)
}

// Hub manages subscriber connections and sample fan-out.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	samples    chan SampleEvent
	done       chan struct{}
	stopped    bool
	mu         sync.RWMutex
	log        *logger.Logger
}

var _ Broadcaster = (*Hub)(nil)

// NewHub creates an idle hub. Call Run to start fan-out.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		samples:    make(chan SampleEvent, 256),
		done:       make(chan struct{}),
		log:        log.WithComponent("sse"),
	}
}

// Run is the hub's event loop. It blocks until Stop is called; run it
// in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("client subscribed", logger.Fields(
				"client_id", client.id,
				logger.FieldSLI, client.sli,
				"total", total,
			))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				client.close()
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("client unsubscribed", logger.Fields(
				"client_id", client.id,
				"total", total,
			))

		case event := <-h.samples:
			h.fanOut(event)
		}
	}
}

// Stop shuts the hub down and disconnects every client. Safe to call
// more than once.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.stopped {
		h.stopped = true
		close(h.done)
	}
}

// Sample queues one published sample for fan-out. It never blocks;
// samples are dropped when the hub is saturated or stopped.
func (h *Hub) Sample(sli string, point timeseries.Datapoint) {
	event := SampleEvent{SLI: sli, Value: point.Value, Time: point.Time}
	select {
	case h.samples <- event:
	case <-h.done:
	default:
		h.log.Warn("sample dropped, hub saturated", logger.Fields(logger.FieldSLI, sli))
	}
}

// Register adds a subscriber to the hub.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a subscriber and closes its event channel.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) fanOut(event SampleEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("sample marshal failed", logger.ErrorFields("marshal", err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.sli != "" && client.sli != event.SLI {
			continue
		}
		if !client.send(data) {
			h.log.Warn("event dropped, slow client", logger.Fields(
				"client_id", client.id,
				logger.FieldSLI, event.SLI,
			))
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		client.close()
		delete(h.clients, id)
	}
}
