// Command blindfuzz is a black-box fuzzing harness: it repeatedly feeds
// generated inputs to a target executable's stdin and searches for an
// input that makes the target exit with a failing status.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/duskware/blindfuzz/internal/child"
	"github.com/duskware/blindfuzz/internal/clihelp"
	"github.com/duskware/blindfuzz/internal/errors"
	"github.com/duskware/blindfuzz/internal/fuzzer"
	"github.com/duskware/blindfuzz/internal/log"
	"github.com/duskware/blindfuzz/internal/runner"
)

const toolName = "blindfuzz"

func usage() string {
	return fmt.Sprintf("Usage: %s (--strings | --urls) <executable> [flags]", toolName)
}

func main() {
	if len(os.Args) >= 2 && (os.Args[1] == "--version" || os.Args[1] == "-version") {
		jsonOut := len(os.Args) >= 3 && (os.Args[2] == "-json" || os.Args[2] == "--json")
		clihelp.PrintVersion(toolName, jsonOut)
		return
	}

	fs := flag.NewFlagSet(toolName, flag.ContinueOnError)
	duration := fs.Duration("duration", 5*time.Second, "global wall-clock budget")
	timeout := fs.Duration("timeout", 1500*time.Millisecond, "per-invocation timeout")
	seed := fs.Int64("seed", 0, "RNG seed override (0 = derive from current time)")
	saveSeedPath := fs.String("save-seed", "", "path to write the resolved seed")
	outPath := fs.String("out", "", "path to append a finding to, in addition to stdout")
	replayPath := fs.String("replay", "", "path to a previously found input; replay it once and exit")
	stats := fs.Bool("stats", false, "print execution/timeout counters at exit")
	jsonStatsPath := fs.String("json-stats", "", "write execution/timeout counters as JSON to a file")
	logLevel := fs.String("log-level", "info", "log verbosity: debug, info, warn, error")
	verbose := fs.Bool("v", false, "shorthand for -log-level=debug")
	jsonVersion := fs.Bool("json", false, "with --version, print JSON instead of plain text")

	// The mode and executable come first; flags follow them.
	var positional, flagArgs []string
	if len(os.Args) >= 3 {
		positional, flagArgs = os.Args[1:3], os.Args[3:]
	} else {
		flagArgs = os.Args[1:]
	}
	if err := fs.Parse(flagArgs); err != nil {
		clihelp.ExitWithCode(1, "%v", err)
	}

	if *jsonVersion {
		clihelp.PrintVersion(toolName, true)
		return
	}

	args := append(append([]string(nil), positional...), fs.Args()...)
	if len(args) != 2 {
		clihelp.ExitWithCode(1, "%s", usage())
	}

	mode, err := fuzzer.ModeFromFlag(args[0])
	if err != nil {
		clihelp.ExitWithError("%v", errors.InvalidMode(args[0]))
	}

	executable := args[1]
	if _, statErr := os.Stat(executable); statErr != nil {
		clihelp.ExitWithError("%v", errors.ExecutableNotFound(executable))
	}

	level := log.ParseLevel(*logLevel)
	if *verbose {
		level = log.Debug
	}
	logger := log.New(level)

	resolvedSeed := *seed
	if resolvedSeed == 0 {
		resolvedSeed = time.Now().UnixNano()
	}
	if *saveSeedPath != "" {
		if err := os.WriteFile(*saveSeedPath, []byte(fmt.Sprintf("%d\n", resolvedSeed)), 0o644); err != nil {
			logger.Warnf("failed to save seed", "path", *saveSeedPath, "err", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	r := runner.New(executable, mode, runner.Options{
		Duration:             *duration,
		PerInvocationTimeout: *timeout,
		Seed:                 resolvedSeed,
		Logger:               logger,
	})

	if *replayPath != "" {
		runReplay(ctx, r, *replayPath)
		return
	}

	logger.Infof("starting search", "mode", args[0], "executable", executable, "duration", *duration, "timeout", *timeout, "seed", resolvedSeed)

	finding, finalStats, err := r.Run(ctx)
	if err != nil && err != context.Canceled {
		clihelp.ExitWithError("%v", err)
	}

	if finding != nil {
		report(finding.Input, *outPath)
	} else {
		fmt.Println("Execution timed out: no failing input found")
	}

	if *stats {
		fmt.Fprintf(os.Stderr, "executions=%d timeouts=%d\n", finalStats.Executions, finalStats.Timeouts)
	}
	if *jsonStatsPath != "" {
		writeJSONStats(*jsonStatsPath, finalStats)
	}
}

func runReplay(ctx context.Context, r *runner.Runner, path string) {
	input, err := os.ReadFile(path)
	if err != nil {
		clihelp.ExitWithError("failed to read replay input %s: %v", path, err)
	}
	result, err := r.Replay(ctx, input)
	if err != nil {
		clihelp.ExitWithError("replay failed: %v", err)
	}
	switch result.Outcome {
	case child.Success:
		fmt.Println("Replay succeeded: target exited 0")
	case child.Timeout:
		fmt.Println("Replay timed out")
	default:
		fmt.Printf("Replay reproduced failure: exit code %d\n", result.ExitCode)
	}
}

func report(input []byte, outPath string) {
	rendered := renderInput(input)
	fmt.Printf("Execution failed on input: %s\n", rendered)
	if outPath != "" {
		f, err := os.OpenFile(outPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			defer f.Close()
			f.Write(input)
			f.Write([]byte("\n"))
		}
	}
}

func renderInput(input []byte) string {
	if isPrintableUTF8(input) {
		return fmt.Sprintf("%q", string(input))
	}
	return fmt.Sprintf("% x", input)
}

func isPrintableUTF8(b []byte) bool {
	for _, r := range string(b) {
		if r == '�' {
			return false
		}
	}
	return true
}

func writeJSONStats(path string, s runner.Stats) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}
