package clock

import (
	"context"
	"testing"
	"time"
)

func TestSystem_Now(t *testing.T) {
	before := time.Now()
	got := System().Now()
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Errorf("System().Now() = %v outside [%v, %v]", got, before, after)
	}
}

func TestSystem_TickStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := System().Tick(ctx, time.Millisecond)
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, open := <-ch:
			if !open {
				return // channel closed after cancel
			}
		case <-deadline:
			t.Fatal("tick channel not closed after cancel")
		}
	}
}

func TestManual_AdvanceMovesTime(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewManual(start)

	m.Advance(time.Hour)
	if got := m.Now(); !got.Equal(start.Add(time.Hour)) {
		t.Errorf("Now() = %v, want %v", got, start.Add(time.Hour))
	}
}

func TestManual_AdvanceFiresOneTickPerSubscription(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := m.Tick(ctx, time.Hour)
	b := m.Tick(ctx, time.Minute)

	m.Advance(time.Hour)

	for name, ch := range map[string]<-chan time.Time{"a": a, "b": b} {
		select {
		case tick := <-ch:
			if !tick.Equal(time.Unix(0, 0).Add(time.Hour)) {
				t.Errorf("%s: tick = %v", name, tick)
			}
		default:
			t.Errorf("%s: no tick delivered", name)
		}
	}
}

func TestManual_SetDoesNotFire(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := m.Tick(ctx, time.Hour)
	m.Set(time.Unix(1000, 0))

	select {
	case <-ch:
		t.Error("Set should not fire ticks")
	default:
	}
	if !m.Now().Equal(time.Unix(1000, 0)) {
		t.Errorf("Now() = %v", m.Now())
	}
}

func TestManual_CancelRemovesSubscription(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	m.Tick(ctx, time.Hour)
	if m.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d, want 1", m.Subscribers())
	}
	cancel()

	deadline := time.Now().Add(time.Second)
	for m.Subscribers() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription not removed after cancel")
		}
		time.Sleep(time.Millisecond)
	}
}
