package stream

import "context"

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Stream represents a lazy, pull-based data stream.
// No work happens until values are pulled via Collect, Drain, or ForEach.
type Stream[T any] struct {
	open func(ctx context.Context) Iterator[T]
}

// Named pairs a live stream with a human-readable origin label used in
// logs and error reports.
type Named[T any] struct {
	Name   string
	Stream *Stream[T]
}

// Runnable is a fully-composed stream ready to execute.
type Runnable struct {
	run func(ctx context.Context) error
}

// Run executes the stream until completion or context cancellation.
func (r *Runnable) Run(ctx context.Context) error {
	return r.run(ctx)
}

// result carries a value or error through a channel.
type result[T any] struct {
	val T
	ok  bool
	err error
}

// channelIter reads values from a channel. Used by concurrent operators.
type channelIter[T any] struct {
	ch     <-chan result[T]
	closer func() error
}

func (it *channelIter[T]) Next(ctx context.Context) (T, bool, error) {
	select {
	case r, open := <-it.ch:
		if !open {
			var zero T
			return zero, false, nil
		}
		return r.val, r.ok, r.err
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	}
}

func (it *channelIter[T]) Close() error {
	if it.closer != nil {
		return it.closer()
	}
	return nil
}

// --- Constructors ---

// New creates a stream from a factory that produces an Iterator.
func New[T any](open func(ctx context.Context) Iterator[T]) *Stream[T] {
	return &Stream[T]{open: open}
}

// From creates a stream from an existing Iterator.
func From[T any](iter Iterator[T]) *Stream[T] {
	return &Stream[T]{
		open: func(_ context.Context) Iterator[T] {
			return iter
		},
	}
}

// FromSlice creates a stream from a slice of values.
func FromSlice[T any](items []T) *Stream[T] {
	return &Stream[T]{
		open: func(_ context.Context) Iterator[T] {
			return &sliceIter[T]{items: items}
		},
	}
}

// --- Terminals ---

// Drain creates a Runnable that pulls all values and sends each to sink.
func Drain[T any](s *Stream[T], sink func(context.Context, T) error) *Runnable {
	return &Runnable{
		run: func(ctx context.Context) error {
			iter := s.open(ctx)
			defer iter.Close()
			for {
				val, ok, err := iter.Next(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				if err := sink(ctx, val); err != nil {
					return err
				}
			}
		},
	}
}

// Collect runs the stream and returns all values as a slice.
func Collect[T any](ctx context.Context, s *Stream[T]) ([]T, error) {
	iter := s.open(ctx)
	defer iter.Close()
	var out []T
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, val)
	}
}

// ForEach pulls all values and calls fn for each. Convenience wrapper around Drain.
func ForEach[T any](ctx context.Context, s *Stream[T], fn func(context.Context, T) error) error {
	return Drain(s, fn).Run(ctx)
}

// Iter returns the raw Iterator for this stream. The caller must Close() it.
func (s *Stream[T]) Iter(ctx context.Context) Iterator[T] {
	return s.open(ctx)
}

// --- Internal iterators ---

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }
