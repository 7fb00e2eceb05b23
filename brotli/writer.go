package brotli

import (
	"io"

	"github.com/andybalholm/lz77"
)

// NewWriter returns a new lz77.Writer that compresses data at the given level.
// Levels 1–9 are available; levels outside this range will be replaced with
// the closest level available. Matches may reach into earlier blocks, up to
// lz77.MaxDistance bytes back.
func NewWriter(w io.Writer, level int) *lz77.Writer {
	return &lz77.Writer{
		Dest:        w,
		MatchFinder: lz77.NewLazyMatchFinder(level),
		Encoder:     &Encoder{},
		BlockSize:   1 << 16,
	}
}
