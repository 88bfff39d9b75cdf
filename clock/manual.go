package clock

import (
	"context"
	"sync"
	"time"
)

// Manual is a deterministic Clock for tests. Time only moves when
// Advance or Set is called, and every Advance delivers exactly one tick
// to each open subscription regardless of the requested interval.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	subs   map[int]chan time.Time
	nextID int
}

// NewManual creates a Manual clock starting at the given time.
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:  start,
		subs: make(map[int]chan time.Time),
	}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Tick registers a subscription. The interval is recorded but ticks are
// driven solely by Advance.
func (m *Manual) Tick(ctx context.Context, interval time.Duration) <-chan time.Time {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	ch := make(chan time.Time, 64)
	m.subs[id] = ch
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
		close(ch)
	}()
	return ch
}

// Advance moves the clock forward and fires one tick on every open
// subscription.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	now := m.now
	chans := make([]chan time.Time, 0, len(m.subs))
	for _, ch := range m.subs {
		chans = append(chans, ch)
	}
	m.mu.Unlock()

	for _, ch := range chans {
		select {
		case ch <- now:
		default:
			// Subscriber is not draining; drop rather than block the test.
		}
	}
}

// Set moves the clock to an absolute time without firing ticks.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Subscribers returns the number of open tick subscriptions. Tests use
// it to wait until a pipeline under test has attached to the clock.
func (m *Manual) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}
