// Package fuzzer implements the input-generation state machine: a
// predefined-seed phase followed by weighted random generation, and, in
// Urls mode, a mutate phase that edits a previously produced input before
// returning to random generation.
package fuzzer

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/duskware/blindfuzz/internal/mutate"
	"github.com/duskware/blindfuzz/internal/seeds"
)

// Mode selects which grammar and state machine the fuzzer runs.
type Mode int

const (
	Strings Mode = iota
	Urls
)

// ModeFromFlag parses the exact CLI flag text into a Mode, matching the
// original harness's error wording.
func ModeFromFlag(s string) (Mode, error) {
	switch s {
	case "--strings":
		return Strings, nil
	case "--urls":
		return Urls, nil
	default:
		return 0, fmt.Errorf("Invalid option: %s. Use --strings or --urls.", s)
	}
}

// phase tags the fuzzer's internal state.
type phase int

const (
	phasePredefined phase = iota
	phaseRandom
	phaseMutate
)

// Fuzzer owns the RNG and the current state of the search. It is not safe
// for concurrent use; the runner drives it from a single goroutine.
type Fuzzer struct {
	mode Mode
	rng  *rand.Rand

	ph       phase
	seedIdx  int
	catalog  [][]byte
	previous []byte
}

// New builds a Fuzzer for the given mode, seeded from seed. A seed of 0
// means "derive one from the current time", matching the CLI's -seed=0
// default.
func New(mode Mode, seed int64) *Fuzzer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Fuzzer{
		mode:    mode,
		rng:     rand.New(rand.NewSource(seed)),
		ph:      phasePredefined,
		catalog: seeds.Catalog(),
	}
}

// Next returns the next candidate input.
func (f *Fuzzer) Next() []byte {
	switch f.ph {
	case phasePredefined:
		return f.nextPredefined()
	case phaseMutate:
		return f.nextMutate()
	default:
		return f.nextRandom()
	}
}

func (f *Fuzzer) nextPredefined() []byte {
	out := f.catalog[f.seedIdx]
	f.seedIdx++
	if f.seedIdx >= len(f.catalog) {
		f.ph = phaseRandom
	}
	return out
}

func (f *Fuzzer) nextRandom() []byte {
	var out []byte
	if f.mode == Urls {
		out = urlGrammar(f.rng)
	} else {
		out = stringsGrammar(f.rng)
	}

	// Only a non-empty input is carried into the Mutate phase.
	if f.mode == Urls && len(out) > 0 && f.rng.Intn(2) == 0 {
		f.previous = out
		f.ph = phaseMutate
	}
	return out
}

func (f *Fuzzer) nextMutate() []byte {
	out := mutate.Apply(f.rng, f.previous)
	f.previous = out
	if len(out) == 0 || f.rng.Intn(2) == 0 {
		f.ph = phaseRandom
	}
	return out
}
