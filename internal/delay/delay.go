// Package delay runs an action once after a duration elapses, with support
// for cancelling the action before it fires. It is the only primitive the
// rest of this module uses to arm a timeout, because it guarantees that a
// cancel issued before the deadline can never lose a race against the
// action firing: both outcomes are arbitrated through a single waitflag.
package delay

import (
	"time"

	"github.com/duskware/blindfuzz/internal/waitflag"
)

// After spawns a goroutine that calls fn once, after d has elapsed. The call
// is fire-and-forget; there is no way to cancel it.
func After(d time.Duration, fn func()) {
	go func() {
		time.Sleep(d)
		fn()
	}()
}

// Cancelable spawns a goroutine that calls fn once, after d has elapsed,
// unless cancelled first. It returns a cancel function that is safe to call
// from any goroutine, any number of times; only the first call has effect.
func Cancelable(d time.Duration, fn func()) (cancel func()) {
	cancelFlag := waitflag.New()

	go func() {
		if cancelFlag.WaitTimeout(d) {
			// cancelFlag was raised before the deadline: do not fire.
			return
		}
		fn()
	}()

	return cancelFlag.Raise
}
