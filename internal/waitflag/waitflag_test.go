package waitflag

import (
	"testing"
	"time"
)

func TestWaitflagGetsNotified(t *testing.T) {
	f := New()
	done := make(chan struct{})
	go func() {
		f.Wait()
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	f.Raise()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("waiter was not woken after Raise")
	}
}

func TestWaitflagDoesNotGetNotified(t *testing.T) {
	f := New()
	if f.WaitTimeout(50 * time.Millisecond) {
		t.Fatalf("expected WaitTimeout to report not-raised")
	}
	if f.IsRaised() {
		t.Fatalf("flag should not be raised")
	}
}

func TestWaitflagRaiseIsIdempotent(t *testing.T) {
	f := New()
	f.Raise()
	f.Raise()
	if !f.IsRaised() {
		t.Fatalf("expected flag to be raised")
	}
}

func TestWaitflagTimeoutThenRaised(t *testing.T) {
	f := New()
	go func() {
		time.Sleep(20 * time.Millisecond)
		f.Raise()
	}()
	if !f.WaitTimeout(time.Second) {
		t.Fatalf("expected WaitTimeout to observe raise within the window")
	}
}
