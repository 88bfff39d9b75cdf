package stream

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFromSlice_Collect(t *testing.T) {
	s := FromSlice([]int{1, 2, 3})
	got, err := Collect(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestFromSlice_Empty(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestMap(t *testing.T) {
	s := FromSlice([]int{1, 2, 3})
	doubled := Map(s, func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})
	got, err := Collect(context.Background(), doubled)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{2, 4, 6}) {
		t.Errorf("got %v, want [2 4 6]", got)
	}
}

func TestMap_Error(t *testing.T) {
	s := FromSlice([]int{1, 2, 3})
	fail := Map(s, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, errors.New("bad value")
		}
		return n, nil
	})
	got, err := Collect(context.Background(), fail)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("expected [1] before error, got %v", got)
	}
}

func TestFilter(t *testing.T) {
	s := FromSlice([]int{1, 2, 3, 4, 5, 6})
	evens := Filter(s, func(n int) bool { return n%2 == 0 })
	got, err := Collect(context.Background(), evens)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{2, 4, 6}) {
		t.Errorf("got %v, want [2 4 6]", got)
	}
}

func TestTap(t *testing.T) {
	var tapped []int
	s := FromSlice([]int{1, 2, 3})
	observed := Tap(s, func(_ context.Context, n int) error {
		tapped = append(tapped, n)
		return nil
	})
	got, err := Collect(context.Background(), observed)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("values should pass through unchanged, got %v", got)
	}
	if !intSliceEqual(tapped, []int{1, 2, 3}) {
		t.Errorf("tap should see all values, got %v", tapped)
	}
}

func TestTap_Error(t *testing.T) {
	s := FromSlice([]int{1, 2, 3})
	failing := Tap(s, func(_ context.Context, n int) error {
		if n == 2 {
			return errors.New("tap failed")
		}
		return nil
	})
	_, err := Collect(context.Background(), failing)
	if err == nil || !strings.Contains(err.Error(), "tap failed") {
		t.Errorf("expected tap error, got %v", err)
	}
}

func TestBuffer(t *testing.T) {
	s := FromSlice([]int{1, 2, 3, 4, 5})
	got, err := Collect(context.Background(), Buffer(s, 3))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, 3, 4, 5}) {
		t.Errorf("got %v, want [1 2 3 4 5]", got)
	}
}

func TestDrain_Run(t *testing.T) {
	var collected []int
	s := FromSlice([]int{1, 2, 3})
	r := Drain(s, func(_ context.Context, n int) error {
		collected = append(collected, n)
		return nil
	})
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(collected, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", collected)
	}
}

func TestForEach(t *testing.T) {
	var sum int
	err := ForEach(context.Background(), FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) error {
		sum += n
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if sum != 6 {
		t.Errorf("sum = %d, want 6", sum)
	}
}

func TestOnError_HookObservesFailure(t *testing.T) {
	var hooked []error
	s := FromSlice([]int{1, 2, 3})
	failing := Map(s, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, errors.New("stage blew up")
		}
		return n, nil
	})
	contained := OnError(failing, func(err error) {
		hooked = append(hooked, err)
	})

	got, err := Collect(context.Background(), contained)
	if err != nil {
		t.Errorf("contained stage must not propagate errors, got %v", err)
	}
	if !intSliceEqual(got, []int{1}) {
		t.Errorf("got %v, want [1]", got)
	}
	if len(hooked) != 1 {
		t.Fatalf("hook called %d times, want 1", len(hooked))
	}
	if !strings.Contains(hooked[0].Error(), "stage blew up") {
		t.Errorf("hooked error = %v", hooked[0])
	}
}

func TestOnError_CancellationIsNotFailure(t *testing.T) {
	hooks := 0
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := Buffer(FromSlice([]int{1, 2, 3}), 1)
	contained := OnError(s, func(error) { hooks++ })
	_, err := Collect(ctx, contained)
	if err != nil {
		t.Errorf("teardown must not surface an error, got %v", err)
	}
	if hooks != 0 {
		t.Errorf("hook called %d times on cancellation, want 0", hooks)
	}
}

func TestOnError_CleanStreamUntouched(t *testing.T) {
	hooks := 0
	s := OnError(FromSlice([]int{4, 5}), func(error) { hooks++ })
	got, err := Collect(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{4, 5}) {
		t.Errorf("got %v", got)
	}
	if hooks != 0 {
		t.Errorf("hook called %d times, want 0", hooks)
	}
}

// --- helpers ---

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
