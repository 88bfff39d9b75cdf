package stream

import (
	"context"
	"errors"
)

// OnError attaches an error hook to a stream, turning it into a contained
// stage: when the underlying stream fails, the hook observes the error
// exactly once and the stream ends cleanly instead of propagating the
// failure downstream. Context cancellation is treated as teardown, not
// failure, and does not invoke the hook.
func OnError[T any](s *Stream[T], hook func(error)) *Stream[T] {
	return &Stream[T]{
		open: func(ctx context.Context) Iterator[T] {
			return &onErrorIter[T]{source: s.open(ctx), hook: hook}
		},
	}
}

type onErrorIter[T any] struct {
	source Iterator[T]
	hook   func(error)
	done   bool
}

func (it *onErrorIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil {
		it.done = true
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, false, nil
		}
		it.hook(err)
		return zero, false, nil
	}
	return val, ok, nil
}

func (it *onErrorIter[T]) Close() error { return it.source.Close() }
