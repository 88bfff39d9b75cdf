package stream

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/slikit/clock"
)

// Multiplex combines N named streams into one stream of aligned N-tuples,
// one tuple per clock tick, in source-declaration order.
//
// The combiner is driven by the clock rather than by arrival order of any
// one input: a pump goroutine per source keeps the most recent value, and
// each tick snapshots the held values into a tuple. A source that has not
// produced a new sample since the last tick contributes its last known
// value (carry-forward). Ticks that arrive before every source has
// reported at least once are skipped, so the first tuple is always
// complete.
//
// A source that fails or ends simply stops updating; its last value keeps
// carrying forward and the remaining sources are unaffected. A tick always
// fires on the clock's schedule — no tuple is held waiting on a source.
func Multiplex[T any](clk clock.Clock, interval time.Duration, sources ...Named[T]) *Stream[[]T] {
	return &Stream[[]T]{
		open: func(ctx context.Context) Iterator[[]T] {
			muxCtx, cancel := context.WithCancel(ctx)
			m := &muxIter[T]{
				latest: make([]T, len(sources)),
				seen:   make([]bool, len(sources)),
				iters:  make([]Iterator[T], len(sources)),
				ticks:  clk.Tick(muxCtx, interval),
				cancel: cancel,
			}
			for i, src := range sources {
				m.iters[i] = src.Stream.Iter(muxCtx)
				go m.pump(muxCtx, i)
			}
			return m
		},
	}
}

type muxIter[T any] struct {
	mu       sync.Mutex
	latest   []T
	seen     []bool
	reported int

	iters  []Iterator[T]
	ticks  <-chan time.Time
	cancel context.CancelFunc
}

// pump pulls one source and keeps its most recent value.
func (m *muxIter[T]) pump(ctx context.Context, i int) {
	for {
		val, ok, err := m.iters[i].Next(ctx)
		if err != nil || !ok {
			return
		}
		m.mu.Lock()
		if !m.seen[i] {
			m.seen[i] = true
			m.reported++
		}
		m.latest[i] = val
		m.mu.Unlock()
	}
}

func (m *muxIter[T]) Next(ctx context.Context) ([]T, bool, error) {
	for {
		select {
		case _, open := <-m.ticks:
			if !open {
				return nil, false, nil
			}
			m.mu.Lock()
			if m.reported < len(m.latest) {
				m.mu.Unlock()
				continue // withhold tuples until every source has reported once
			}
			tuple := make([]T, len(m.latest))
			copy(tuple, m.latest)
			m.mu.Unlock()
			return tuple, true, nil
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}
}

func (m *muxIter[T]) Close() error {
	m.cancel()
	var firstErr error
	for _, iter := range m.iters {
		if err := iter.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
