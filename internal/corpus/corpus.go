// Package corpus generates deterministic inputs for compression tests and
// benchmarks.
package corpus

import (
	"bytes"
	"math/rand"
)

var words = []string{
	"the", "of", "and", "to", "in", "light", "rays", "colours", "which", "is",
	"refracted", "prism", "glass", "that", "by", "are", "with", "as", "be",
	"this", "reflexion", "their", "more", "or", "image", "paper", "red",
	"violet", "from", "sun", "hole", "window", "experiment", "refrangible",
	"lens", "at", "was", "were", "it", "same", "into", "those", "other",
}

// Text returns n bytes of English-like text built from a small vocabulary,
// so that it has the repetition structure of prose.
func Text(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	var b bytes.Buffer
	for b.Len() < n {
		b.WriteString(words[r.Intn(len(words))])
		switch r.Intn(12) {
		case 0:
			b.WriteString(". ")
		case 1:
			b.WriteString(", ")
		case 2:
			b.WriteByte('\n')
		default:
			b.WriteByte(' ')
		}
	}
	return b.Bytes()[:n]
}

// Random returns n pseudo-random bytes.
func Random(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	r.Read(b)
	return b
}

// Distinct returns n bytes (n <= 256) in which no 3-byte sequence occurs
// twice: a shuffled permutation of distinct byte values.
func Distinct(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	perm := r.Perm(256)
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(perm[i])
	}
	return b
}

// Sample is a named test input.
type Sample struct {
	Name string
	Data []byte
}

// Samples returns a fixed set of inputs covering the edge cases of an LZ77
// compressor: empty and tiny inputs, runs, short periods, prose, noise, and
// data longer than the 32 KiB window.
func Samples() []Sample {
	return []Sample{
		{Name: "nil", Data: nil},
		{Name: "empty", Data: []byte{}},
		{Name: "single-byte", Data: []byte{0xAB}},
		{Name: "two-bytes", Data: []byte("ab")},
		{Name: "three-same", Data: []byte("aaa")},
		{Name: "short-text", Data: []byte("hello world, hello lz77")},
		{Name: "run", Data: bytes.Repeat([]byte{'A'}, 3000)},
		{Name: "period-3", Data: bytes.Repeat([]byte("abc"), 700)},
		{Name: "repeated-pattern", Data: bytes.Repeat([]byte("abc123"), 500)},
		{Name: "byte-cycle", Data: bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 300)},
		{Name: "porridge", Data: []byte("Pease porridge hot, pease porridge cold, pease porridge in the pot, nine days old.")},
		{Name: "distinct", Data: Distinct(200, 1)},
		{Name: "random", Data: Random(5000, 2)},
		{Name: "text", Data: Text(20000, 3)},
		{Name: "long-text", Data: Text(40000, 4)},
	}
}
