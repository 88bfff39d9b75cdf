package clock

import (
	"context"
	"time"
)

// Clock provides current time and tick scheduling. It is shared by every
// pipeline in a process; implementations must be safe for concurrent use.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// Tick returns a channel that delivers ticks every interval until the
	// context is cancelled. The channel is closed on cancellation.
	Tick(ctx context.Context, interval time.Duration) <-chan time.Time
}

// System returns a Clock backed by the wall clock.
func System() Clock { return systemClock{} }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Tick(ctx context.Context, interval time.Duration) <-chan time.Time {
	if interval <= 0 {
		interval = time.Second
	}
	out := make(chan time.Time, 1)
	ticker := time.NewTicker(interval)
	go func() {
		defer close(out)
		defer ticker.Stop()
		for {
			select {
			case t := <-ticker.C:
				select {
				case out <- t:
				default:
					// Slow consumer; drop the tick rather than stall.
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
