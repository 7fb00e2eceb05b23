// Package brotli writes Brotli streams from lz77 matches, using the
// bit-stream writer of github.com/andybalholm/brotli.
package brotli

import (
	brotlienc "github.com/andybalholm/brotli"
	"github.com/andybalholm/brotli/matchfinder"
	"github.com/andybalholm/lz77"
)

// An Encoder implements the lz77.Encoder interface, writing in Brotli format.
type Encoder struct {
	e       brotlienc.Encoder
	matches []matchfinder.Match
}

func (e *Encoder) Reset() {
	e.e.Reset()
}

func (e *Encoder) Encode(dst []byte, src []byte, matches []lz77.Match, lastBlock bool) []byte {
	e.matches = e.matches[:0]
	for _, m := range matches {
		e.matches = append(e.matches, matchfinder.Match{
			Unmatched: m.Unmatched,
			Length:    m.Length,
			Distance:  m.Distance,
		})
	}
	return e.e.Encode(dst, src, e.matches, lastBlock)
}
