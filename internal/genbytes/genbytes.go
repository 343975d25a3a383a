// Package genbytes implements a tiny combinator library for building
// byte-producing generators out of smaller generators: weighted choice,
// concatenation, repetition, and a few primitive shapes (strings, ascii
// strings, and signed 64-bit integers rendered as text or big-endian bytes).
package genbytes

import (
	"math/rand"
	"strconv"
)

// Generator produces a byte sequence using the supplied random source.
type Generator func(r *rand.Rand) []byte

// weighted pairs a generator with a positive selection weight.
type weighted struct {
	weight int
	gen    Generator
}

// Choice builds a weighted-choice generator over the given options.
func Choice(opts ...struct {
	Weight int
	Gen    Generator
}) Generator {
	ws := make([]weighted, len(opts))
	total := 0
	for i, o := range opts {
		ws[i] = weighted{weight: o.Weight, gen: o.Gen}
		total += o.Weight
	}
	return func(r *rand.Rand) []byte {
		pick := r.Intn(total)
		for _, w := range ws {
			if pick < w.weight {
				return w.gen(r)
			}
			pick -= w.weight
		}
		// Unreachable for positive weights, but keep Choice total.
		return ws[len(ws)-1].gen(r)
	}
}

// W is shorthand for building a weighted option passed to Choice.
func W(weight int, gen Generator) struct {
	Weight int
	Gen    Generator
} {
	return struct {
		Weight int
		Gen    Generator
	}{Weight: weight, Gen: gen}
}

// Literal always emits the given bytes, ignoring the random source.
func Literal(b []byte) Generator {
	out := append([]byte(nil), b...)
	return func(r *rand.Rand) []byte { return out }
}

// LiteralString is Literal for a string argument.
func LiteralString(s string) Generator { return Literal([]byte(s)) }

// Chain concatenates the output of each generator, in order.
func Chain(gens ...Generator) Generator {
	return func(r *rand.Rand) []byte {
		var out []byte
		for _, g := range gens {
			out = append(out, g(r)...)
		}
		return out
	}
}

// Then is Chain for exactly two generators; a common enough shape in the
// grammars below to warrant its own name.
func Then(a, b Generator) Generator { return Chain(a, b) }

// Repeat runs gen a uniformly random number of times in [min, max), emitting
// the concatenation. If max <= min, gen runs exactly min times.
func Repeat(min, max int, gen Generator) Generator {
	return func(r *rand.Rand) []byte {
		n := min
		if max > min {
			n = min + r.Intn(max-min)
		}
		var out []byte
		for i := 0; i < n; i++ {
			out = append(out, gen(r)...)
		}
		return out
	}
}

// RandBytes emits a uniformly random byte string of length in [min, max),
// with every byte drawn uniformly over all 256 values. Intended to stress
// code paths that assume valid UTF-8 on stdin.
func RandBytes(min, max int) Generator {
	return func(r *rand.Rand) []byte {
		n := length(r, min, max)
		out := make([]byte, n)
		r.Read(out) //nolint:errcheck // math/rand.Rand.Read never errors
		return out
	}
}

// RandASCII emits a random printable-ASCII string ([0x20, 0x7f)) of length
// in [min, max).
func RandASCII(min, max int) Generator {
	return func(r *rand.Rand) []byte {
		n := length(r, min, max)
		out := make([]byte, n)
		for i := range out {
			out[i] = byte(32 + r.Intn(127-32))
		}
		return out
	}
}

func length(r *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min)
}

// i64MaxDigits bounds the decimal digit count drawn by the integer
// generators below: a full 64-bit value has at most 19 significant decimal
// digits, plus one for a possible leading sign.
const i64MaxDigits = 20

// randomInt64 draws a signed 64-bit integer whose magnitude is uniform over
// a uniformly-chosen decimal digit count, rather than uniform over the full
// int64 range. This deliberately over-samples small-magnitude and
// near-boundary values, which are the ones most likely to trip up a naive
// parser.
func randomInt64(r *rand.Rand) int64 {
	digits := 2 + r.Intn(i64MaxDigits-1) // [2, i64MaxDigits]
	mod := int64(1)
	for i := 0; i < digits; i++ {
		mod *= 10
		if mod <= 0 { // overflowed back around to zero/negative: cap here
			mod = 1<<62 - 1
			break
		}
	}
	mag := int64(r.Uint64() % uint64(mod))
	if r.Intn(2) == 0 {
		return -mag
	}
	return mag
}

// I64Text emits a random signed 64-bit integer rendered as decimal text.
func I64Text(r *rand.Rand) []byte {
	return []byte(strconv.FormatInt(randomInt64(r), 10))
}

// I64Bytes emits a random signed 64-bit integer as 8 big-endian bytes.
func I64Bytes(r *rand.Rand) []byte {
	v := uint64(randomInt64(r))
	out := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}
