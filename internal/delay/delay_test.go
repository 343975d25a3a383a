package delay

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestAfterFires(t *testing.T) {
	var fired atomic.Bool
	After(10*time.Millisecond, func() { fired.Store(true) })

	time.Sleep(100 * time.Millisecond)
	if !fired.Load() {
		t.Fatalf("expected After to have fired")
	}
}

func TestCancelableFiresWithoutCancel(t *testing.T) {
	var fired atomic.Bool
	cancel := Cancelable(20*time.Millisecond, func() { fired.Store(true) })
	_ = cancel

	time.Sleep(100 * time.Millisecond)
	if !fired.Load() {
		t.Fatalf("expected Cancelable action to fire when never cancelled")
	}
}

func TestCancelablePreventsFiring(t *testing.T) {
	var fired atomic.Bool
	cancel := Cancelable(100*time.Millisecond, func() { fired.Store(true) })
	cancel()

	time.Sleep(200 * time.Millisecond)
	if fired.Load() {
		t.Fatalf("expected cancelled action to never fire")
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	cancel := Cancelable(time.Hour, func() {})
	cancel()
	cancel() // must not panic
}
