// Package child spawns a target executable with a piped stdin and waits
// for it with a per-invocation timeout, killing the process (and, where the
// platform supports it, its whole process group) if it overruns its
// budget.
package child

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/duskware/blindfuzz/internal/delay"
	"github.com/duskware/blindfuzz/internal/waitflag"
)

// Outcome classifies how an invocation ended.
type Outcome int

const (
	// Timeout means the per-invocation budget elapsed and the process was
	// killed; this is never a finding.
	Timeout Outcome = iota
	// Success means the process exited with status 0.
	Success
	// Failure means the process exited with a nonzero status or was
	// terminated by a signal other than our own kill.
	Failure
)

// Result is the outcome of a single invocation.
type Result struct {
	Outcome  Outcome
	ExitCode int
	Err      error
}

// Child wraps a live subprocess with an idempotent, concurrency-safe Kill.
type Child struct {
	cmd    *exec.Cmd
	killed *waitflag.Flag
}

// SpawnWithStdin starts executable with input piped to its stdin (and then
// closed); stdout and stderr are discarded. The process is placed in its
// own process group where the platform supports it, so Kill can take down
// any children it spawned.
func SpawnWithStdin(executable string, input []byte) (*Child, error) {
	cmd := exec.Command(executable)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = nil
	cmd.Stderr = nil
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn %s: %w", executable, err)
	}

	return &Child{cmd: cmd, killed: waitflag.New()}, nil
}

// Kill terminates the process (and its process group, where supported).
// Safe to call from any goroutine, any number of times.
func (c *Child) Kill() {
	if c.killed.IsRaised() {
		return
	}
	c.killed.Raise()
	killProcessGroup(c.cmd)
}

// Wait blocks until the process exits and classifies the result.
func (c *Child) Wait() Result {
	err := c.cmd.Wait()

	if c.killed.IsRaised() {
		return Result{Outcome: Timeout, Err: err}
	}

	if err == nil {
		return Result{Outcome: Success, ExitCode: 0}
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		return Result{Outcome: Failure, ExitCode: exitErr.ExitCode(), Err: err}
	}

	return Result{Outcome: Failure, ExitCode: -1, Err: err}
}

// WaitWithTimeout arms a deferred kill after d, then waits. The arm-then-wait
// ordering is mandatory: the kill-check must be armed before the blocking
// wait begins, so the waiter can never observe an ambiguous exit status.
func (c *Child) WaitWithTimeout(d time.Duration) Result {
	cancelKill := delay.Cancelable(d, c.Kill)
	result := c.Wait()
	cancelKill()
	return result
}

// Replay spawns executable once with input on stdin, waits up to d, and
// returns the classified result without any looping or mutation. It backs
// the CLI's -replay flag, letting a previously saved finding be re-checked
// deterministically.
func Replay(ctx context.Context, executable string, input []byte, d time.Duration) (Result, error) {
	c, err := SpawnWithStdin(executable, input)
	if err != nil {
		return Result{}, err
	}

	done := make(chan Result, 1)
	go func() { done <- c.WaitWithTimeout(d) }()

	select {
	case r := <-done:
		return r, nil
	case <-ctx.Done():
		c.Kill()
		<-done
		return Result{}, ctx.Err()
	}
}
