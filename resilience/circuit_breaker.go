package resilience

import (
	"errors"
	"sync"
	"time"
)

// State is the circuit breaker state.
type State int

const (
	// StateClosed allows calls through.
	StateClosed State = iota
	// StateOpen rejects calls immediately.
	StateOpen
	// StateHalfOpen allows a limited number of probe calls.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned when a call is rejected without being attempted.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig configures a circuit breaker.
type CircuitBreakerConfig struct {
	// Name identifies the breaker in logs and state change callbacks.
	Name string
	// MaxFailures is the consecutive failure count that opens the circuit.
	MaxFailures int
	// Timeout is the open period before probing in half-open.
	Timeout time.Duration
	// HalfOpenMaxCalls is the number of probe calls allowed while half-open.
	HalfOpenMaxCalls int
	// OnStateChange is invoked on every transition.
	OnStateChange func(name string, from, to State)
}

// DefaultCircuitBreakerConfig returns the defaults used for backend calls.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxFailures:      5,
		Timeout:          30 * time.Second,
		HalfOpenMaxCalls: 1,
	}
}

// CircuitBreaker fails fast once a downstream dependency is deemed
// unhealthy, then probes it periodically until it recovers.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu            sync.Mutex
	state         State
	failures      int
	successes     int
	lastFailure   time.Time
	halfOpenCalls int
}

// NewCircuitBreaker creates a circuit breaker in the closed state.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.MaxFailures <= 0 {
		config.MaxFailures = 5
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.HalfOpenMaxCalls <= 0 {
		config.HalfOpenMaxCalls = 1
	}
	return &CircuitBreaker{config: config, state: StateClosed}
}

// Execute runs fn through the breaker. Returns ErrCircuitOpen without
// calling fn when the circuit is open.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allow() {
		return ErrCircuitOpen
	}
	err := fn()
	cb.record(err)
	return err
}

// State returns the current state, applying the open-to-half-open timeout.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.current()
}

// Reset forces the breaker back to closed.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.transition(StateClosed)
	cb.failures = 0
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.current() {
	case StateClosed:
		return true
	case StateHalfOpen:
		if cb.halfOpenCalls < cb.config.HalfOpenMaxCalls {
			cb.halfOpenCalls++
			return true
		}
		return false
	default:
		return false
	}
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		switch cb.current() {
		case StateClosed:
			cb.failures = 0
		case StateHalfOpen:
			cb.successes++
			if cb.successes >= cb.config.HalfOpenMaxCalls {
				cb.transition(StateClosed)
			}
		}
		return
	}

	cb.failures++
	cb.lastFailure = time.Now()
	switch cb.current() {
	case StateClosed:
		if cb.failures >= cb.config.MaxFailures {
			cb.transition(StateOpen)
		}
	case StateHalfOpen:
		cb.transition(StateOpen)
	}
}

// current must be called with mu held.
func (cb *CircuitBreaker) current() State {
	if cb.state == StateOpen && time.Since(cb.lastFailure) >= cb.config.Timeout {
		cb.transition(StateHalfOpen)
	}
	return cb.state
}

func (cb *CircuitBreaker) transition(to State) {
	if cb.state == to {
		return
	}
	from := cb.state
	cb.state = to
	cb.successes = 0
	cb.halfOpenCalls = 0
	if to == StateClosed {
		cb.failures = 0
	}
	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(cb.config.Name, from, to)
	}
}
