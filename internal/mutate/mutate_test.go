package mutate

import (
	"math/rand"
	"testing"
)

// mutationsRequiringNonEmptyInput are no-ops on an empty buffer: they all
// operate on a byte span drawn from the existing buffer.
func mutationsRequiringNonEmptyInput() []Mutation {
	return []Mutation{
		DupSubstring(5),
		DupSubstring(0),
		DupSubstringAnywhere(5),
		DupSubstringAnywhere(0),
		RemoveSubstring(5),
		RemoveSubstring(0),
		RandomizeByte,
		BitFlip,
	}
}

func TestMutationsNoOpOnEmptyInput(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, m := range mutationsRequiringNonEmptyInput() {
		out := m(r, nil)
		if len(out) != 0 {
			t.Fatalf("mutation produced non-empty output from empty input: %v", out)
		}
	}
}

// AddImportantSubstring is the one mutation that inserts unconditionally,
// so it is allowed to grow an empty buffer.
func TestAddImportantSubstringInsertsIntoEmptyInput(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	out := AddImportantSubstring(r, nil)
	if len(out) == 0 {
		t.Fatalf("expected AddImportantSubstring to insert a token into an empty buffer")
	}
}

func TestMutationsNeverPanic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	inputs := [][]byte{nil, {}, {0x00}, []byte("hello"), []byte("http://example.com/path?q=1#frag")}
	for _, in := range inputs {
		for i := 0; i < 50; i++ {
			Apply(r, in)
		}
	}
}

func TestRemoveSubstringShrinksOrKeeps(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	in := []byte("abcdefghij")
	for i := 0; i < 50; i++ {
		out := RemoveSubstring(5)(r, in)
		if len(out) > len(in) {
			t.Fatalf("RemoveSubstring grew the buffer: %d > %d", len(out), len(in))
		}
	}
}

func TestBitFlipChangesExactlyOneBit(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	in := []byte{0x00, 0x00, 0x00}
	out := BitFlip(r, in)
	diffBits := 0
	for i := range in {
		x := in[i] ^ out[i]
		for x != 0 {
			diffBits += int(x & 1)
			x >>= 1
		}
	}
	if diffBits != 1 {
		t.Fatalf("expected exactly 1 bit to differ, got %d", diffBits)
	}
}

func TestAddImportantSubstringGrowsBuffer(t *testing.T) {
	r := rand.New(rand.NewSource(13))
	in := []byte("x")
	out := AddImportantSubstring(r, in)
	if len(out) <= len(in) {
		t.Fatalf("expected AddImportantSubstring to grow the buffer")
	}
}
