package stream

import "context"

// Map transforms each value using fn.
func Map[I, O any](s *Stream[I], fn func(context.Context, I) (O, error)) *Stream[O] {
	return &Stream[O]{
		open: func(ctx context.Context) Iterator[O] {
			return &mapIter[I, O]{source: s.open(ctx), fn: fn}
		},
	}
}

// Filter keeps only values that satisfy the predicate.
func Filter[T any](s *Stream[T], fn func(T) bool) *Stream[T] {
	return &Stream[T]{
		open: func(ctx context.Context) Iterator[T] {
			return &filterIter[T]{source: s.open(ctx), fn: fn}
		},
	}
}

// Tap calls fn as a side-effect for each value, then passes the value
// through unchanged. Use for logging, publishing, or metrics.
func Tap[T any](s *Stream[T], fn func(context.Context, T) error) *Stream[T] {
	return &Stream[T]{
		open: func(ctx context.Context) Iterator[T] {
			return &tapIter[T]{source: s.open(ctx), fn: fn}
		},
	}
}

// Buffer adds a buffered channel between stream stages.
// This decouples the production rate from the consumption rate.
func Buffer[T any](s *Stream[T], size int) *Stream[T] {
	if size <= 0 {
		size = 1
	}
	return &Stream[T]{
		open: func(ctx context.Context) Iterator[T] {
			source := s.open(ctx)
			bufCtx, cancel := context.WithCancel(ctx)
			ch := make(chan result[T], size)

			go func() {
				defer close(ch)
				for {
					val, ok, err := source.Next(bufCtx)
					if err != nil {
						select {
						case ch <- result[T]{err: err}:
						case <-bufCtx.Done():
						}
						return
					}
					if !ok {
						return
					}
					select {
					case ch <- result[T]{val: val, ok: true}:
					case <-bufCtx.Done():
						return
					}
				}
			}()

			return &channelIter[T]{
				ch: ch,
				closer: func() error {
					cancel()
					return source.Close()
				},
			}
		},
	}
}

// --- Iterator implementations ---

type mapIter[I, O any] struct {
	source Iterator[I]
	fn     func(context.Context, I) (O, error)
}

func (it *mapIter[I, O]) Next(ctx context.Context) (O, bool, error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		var zero O
		return zero, false, err
	}
	out, err := it.fn(ctx, val)
	if err != nil {
		var zero O
		return zero, false, err
	}
	return out, true, nil
}

func (it *mapIter[I, O]) Close() error { return it.source.Close() }

type filterIter[T any] struct {
	source Iterator[T]
	fn     func(T) bool
}

func (it *filterIter[T]) Next(ctx context.Context) (T, bool, error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, false, err
		}
		if it.fn(val) {
			return val, true, nil
		}
	}
}

func (it *filterIter[T]) Close() error { return it.source.Close() }

type tapIter[T any] struct {
	source Iterator[T]
	fn     func(context.Context, T) error
}

func (it *tapIter[T]) Next(ctx context.Context) (T, bool, error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return val, ok, err
	}
	if err := it.fn(ctx, val); err != nil {
		var zero T
		return zero, false, err
	}
	return val, true, nil
}

func (it *tapIter[T]) Close() error { return it.source.Close() }
