package child

import "time"

// ProcessHandle is the subset of Child's behavior the loop and runner
// depend on. Exported as an interface so tests can substitute a
// mockgen-shaped double instead of spawning a real process.
type ProcessHandle interface {
	Kill()
	Wait() Result
	WaitWithTimeout(d time.Duration) Result
}
