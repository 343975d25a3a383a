// Package mutate implements the byte-level edit catalog applied to a
// previously generated input while the fuzzer is in its Mutate phase
// (URL mode). Every mutation that edits existing bytes is a no-op on an
// empty buffer rather than panicking; AddImportantSubstring, which only
// inserts, turns an empty buffer into a lone token.
package mutate

import "math/rand"

// Mutation edits buf in place (or returns a new slice) using r for any
// randomness it needs.
type Mutation func(r *rand.Rand, buf []byte) []byte

// importantSubstrings are tokens with outsized significance to URL
// grammars; inserting one is a cheap way to confuse a parser that assumes
// well-formed structure.
var importantSubstrings = [][]byte{
	[]byte("?"),
	[]byte("\x00"),
	[]byte("://"),
	[]byte("http://"),
	[]byte("#"),
	[]byte("="),
	[]byte(":"),
	[]byte(" "),
	[]byte("\\"),
	[]byte("/"),
	[]byte("+"),
	[]byte("&"),
}

// span picks a random, non-empty [start, start+n) range within len(buf)
// with n <= max (max <= 0 means unbounded). It returns ok=false when buf is
// empty.
func span(r *rand.Rand, buf []byte, max int) (start, n int, ok bool) {
	if len(buf) == 0 {
		return 0, 0, false
	}
	start = r.Intn(len(buf))
	remaining := len(buf) - start
	limit := remaining
	if max > 0 && max < limit {
		limit = max
	}
	if limit <= 0 {
		return 0, 0, false
	}
	n = 1 + r.Intn(limit)
	return start, n, true
}

// DupSubstring copies a run of up to max bytes and re-inserts it
// immediately after its own end. max <= 0 means unbounded.
func DupSubstring(max int) Mutation {
	return func(r *rand.Rand, buf []byte) []byte {
		start, n, ok := span(r, buf, max)
		if !ok {
			return buf
		}
		end := start + n
		dup := append([]byte(nil), buf[start:end]...)
		out := make([]byte, 0, len(buf)+len(dup))
		out = append(out, buf[:end]...)
		out = append(out, dup...)
		out = append(out, buf[end:]...)
		return out
	}
}

// DupSubstringAnywhere copies a run of up to max bytes and re-inserts it at
// a uniformly random position in the buffer, not necessarily adjacent to
// the source run.
func DupSubstringAnywhere(max int) Mutation {
	return func(r *rand.Rand, buf []byte) []byte {
		start, n, ok := span(r, buf, max)
		if !ok {
			return buf
		}
		dup := append([]byte(nil), buf[start:start+n]...)
		pos := r.Intn(len(buf) + 1)
		out := make([]byte, 0, len(buf)+len(dup))
		out = append(out, buf[:pos]...)
		out = append(out, dup...)
		out = append(out, buf[pos:]...)
		return out
	}
}

// RemoveSubstring deletes a run of up to max bytes.
func RemoveSubstring(max int) Mutation {
	return func(r *rand.Rand, buf []byte) []byte {
		start, n, ok := span(r, buf, max)
		if !ok {
			return buf
		}
		out := make([]byte, 0, len(buf)-n)
		out = append(out, buf[:start]...)
		out = append(out, buf[start+n:]...)
		return out
	}
}

// RandomizeByte overwrites one byte with a uniformly random value.
func RandomizeByte(r *rand.Rand, buf []byte) []byte {
	if len(buf) == 0 {
		return buf
	}
	out := append([]byte(nil), buf...)
	out[r.Intn(len(out))] = byte(r.Intn(256))
	return out
}

// BitFlip flips a single random bit of a single random byte.
func BitFlip(r *rand.Rand, buf []byte) []byte {
	if len(buf) == 0 {
		return buf
	}
	out := append([]byte(nil), buf...)
	idx := r.Intn(len(out))
	bit := uint(r.Intn(8))
	out[idx] ^= 1 << bit
	return out
}

// AddImportantSubstring inserts a URL-significant token at a random
// position.
func AddImportantSubstring(r *rand.Rand, buf []byte) []byte {
	tok := importantSubstrings[r.Intn(len(importantSubstrings))]
	pos := 0
	if len(buf) > 0 {
		pos = r.Intn(len(buf) + 1)
	}
	out := make([]byte, 0, len(buf)+len(tok))
	out = append(out, buf[:pos]...)
	out = append(out, tok...)
	out = append(out, buf[pos:]...)
	return out
}

// weighted pairs a mutation with its selection weight for all.
type weighted struct {
	weight int
	mut    Mutation
}

// all is the full weighted mutation catalog, matching the small-edit /
// unbounded-edit pairing described for dup/remove operations: MAX=5 favors
// local, surgical edits; MAX=0 (unbounded) occasionally produces a much
// larger rewrite.
var all = []weighted{
	{weight: 6, mut: DupSubstring(5)},
	{weight: 2, mut: DupSubstring(0)},
	{weight: 6, mut: DupSubstringAnywhere(5)},
	{weight: 2, mut: DupSubstringAnywhere(0)},
	{weight: 6, mut: RemoveSubstring(5)},
	{weight: 2, mut: RemoveSubstring(0)},
	{weight: 8, mut: RandomizeByte},
	{weight: 8, mut: BitFlip},
	{weight: 6, mut: AddImportantSubstring},
}

// Pick selects one mutation from the catalog by weight and returns it;
// Apply runs it.
func Pick(r *rand.Rand) Mutation {
	total := 0
	for _, w := range all {
		total += w.weight
	}
	pick := r.Intn(total)
	for _, w := range all {
		if pick < w.weight {
			return w.mut
		}
		pick -= w.weight
	}
	return all[len(all)-1].mut
}

// Apply runs one weighted-random mutation from the catalog against buf.
func Apply(r *rand.Rand, buf []byte) []byte {
	return Pick(r)(r, buf)
}
