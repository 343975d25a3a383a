// Package runner glues the fuzzer state machine, the stoppable loop, and
// per-invocation child execution together under a single global deadline.
package runner

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/duskware/blindfuzz/internal/child"
	"github.com/duskware/blindfuzz/internal/delay"
	"github.com/duskware/blindfuzz/internal/errors"
	"github.com/duskware/blindfuzz/internal/fuzzer"
	"github.com/duskware/blindfuzz/internal/log"
	"github.com/duskware/blindfuzz/internal/looper"
)

// Options configures a Runner.
type Options struct {
	// Duration is the global wall-clock budget for the search.
	Duration time.Duration
	// PerInvocationTimeout bounds a single child's run.
	PerInvocationTimeout time.Duration
	// Seed seeds the fuzzer's RNG; 0 derives one from the current time.
	Seed int64
	// Logger receives progress messages; if nil, logging is a no-op.
	Logger *log.Logger
}

// Stats accumulates counters across a run.
type Stats struct {
	Executions uint64
	Timeouts   uint64
}

// Finding is a failing input discovered during the search.
type Finding struct {
	Input []byte
}

// Runner owns the executable path, the fuzzer, and the deadlines that
// bound a single search.
type Runner struct {
	executable string
	mode       fuzzer.Mode
	opts       Options

	// spawn starts one invocation against input. It defaults to wrapping
	// child.SpawnWithStdin; tests substitute a fake that returns a
	// child.ProcessHandle double instead of forking a real process, so the
	// loop-stop-wins and timeout-accounting behavior can be exercised
	// without any real subprocess in play.
	spawn func(executable string, input []byte) (child.ProcessHandle, error)

	execs    atomic.Uint64
	timeouts atomic.Uint64
}

// New builds a Runner for the given target and mode.
func New(executable string, mode fuzzer.Mode, opts Options) *Runner {
	if opts.PerInvocationTimeout <= 0 {
		opts.PerInvocationTimeout = 1500 * time.Millisecond
	}
	if opts.Duration <= 0 {
		opts.Duration = 5 * time.Second
	}
	return &Runner{
		executable: executable,
		mode:       mode,
		opts:       opts,
		spawn: func(executable string, input []byte) (child.ProcessHandle, error) {
			return child.SpawnWithStdin(executable, input)
		},
	}
}

func (r *Runner) logger() *log.Logger {
	if r.opts.Logger != nil {
		return r.opts.Logger
	}
	return log.New(log.Error + 1) // effectively silent
}

// Run searches for a failing input until one is found or the global
// deadline elapses (or ctx is cancelled, e.g. by an OS signal). It returns
// the finding (nil if none), accumulated stats, and an error only for
// conditions that made the search itself unable to proceed.
func (r *Runner) Run(ctx context.Context) (*Finding, Stats, error) {
	f := fuzzer.New(r.mode, r.opts.Seed)
	lg := r.logger()

	var stop func()
	var spawnErr error

	action := looper.Action[child.ProcessHandle, []byte]{
		Start: func() (child.ProcessHandle, func() ([]byte, bool)) {
			input := f.Next()
			c, err := r.spawn(r.executable, input)
			if err != nil {
				spawnErr = errors.SpawnFailed(r.executable, err)
				lg.Errorf("spawn failed", "err", spawnErr)
				// A spawn failure is fatal to the whole search. stop() can't
				// be called here: Start runs while the loop holds its state
				// lock, and stop() needs that same lock. Calling it from the
				// wait closure instead, which runs unlocked, aborts the
				// search on this iteration rather than retrying until the
				// global deadline.
				return nil, func() ([]byte, bool) {
					stop()
					return nil, false
				}
			}
			return c, func() ([]byte, bool) {
				result := c.WaitWithTimeout(r.opts.PerInvocationTimeout)
				r.execs.Add(1)
				switch result.Outcome {
				case child.Timeout:
					r.timeouts.Add(1)
					return nil, false
				case child.Failure:
					return input, true
				default:
					return nil, false
				}
			}
		},
		Stop: func(c child.ProcessHandle) {
			if c != nil {
				c.Kill()
			}
		},
	}

	loop := looper.New(action)
	stop = loop.StopFunc()

	cancelDeadline := delay.Cancelable(r.opts.Duration, stop)
	defer cancelDeadline()

	grp, _ := errgroup.WithContext(ctx)
	searchDone := make(chan struct{})

	// Converts an external cancellation (e.g. SIGINT/SIGTERM via the CLI's
	// signal context) into the same Stop call the global deadline uses,
	// without blocking the supervisor past the search's own completion.
	grp.Go(func() error {
		select {
		case <-ctx.Done():
			stop()
		case <-searchDone:
		}
		return nil
	})

	var finding *Finding
	grp.Go(func() error {
		defer close(searchDone)
		out, ok := loop.Run()
		if ok {
			finding = &Finding{Input: out}
		}
		stop()
		return spawnErr
	})

	err := grp.Wait()

	return finding, r.Stats(), err
}

// Stats returns a snapshot of the counters accumulated so far.
func (r *Runner) Stats() Stats {
	return Stats{Executions: r.execs.Load(), Timeouts: r.timeouts.Load()}
}

// Replay re-runs a single saved input against the target once, with no
// loop and no global deadline, so a finding can be deterministically
// re-checked.
func (r *Runner) Replay(ctx context.Context, input []byte) (child.Result, error) {
	return child.Replay(ctx, r.executable, input, r.opts.PerInvocationTimeout)
}
