package flate

import (
	"io"

	"github.com/andybalholm/lz77"
)

// NewWriter returns a new lz77.Writer that compresses data at the given level,
// in flate encoding. Levels 1–9 are available; levels outside this range will
// be replaced with the closest level available.
func NewWriter(w io.Writer, level int) *lz77.Writer {
	return newWriter(w, level, NewEncoder())
}

// NewGZIPWriter returns a new lz77.Writer that compresses data at the given
// level, in gzip encoding. Levels 1–9 are available; levels outside this range
// will be replaced by the closest level available.
func NewGZIPWriter(w io.Writer, level int) *lz77.Writer {
	return newWriter(w, level, NewGZIPEncoder())
}

func newWriter(w io.Writer, level int, e lz77.Encoder) *lz77.Writer {
	return &lz77.Writer{
		Dest:        w,
		MatchFinder: lz77.NewLazyMatchFinder(level),
		Encoder:     e,
		BlockSize:   1 << 16,
	}
}
