package lz77

import "errors"

var (
	// ErrDistance is returned by Expand for a match that reaches before the
	// start of the output or further than MaxDistance.
	ErrDistance = errors.New("lz77: invalid match distance")
	// ErrLength is returned by Expand for a match shorter than MinMatch or
	// longer than MaxMatch.
	ErrLength = errors.New("lz77: invalid match length")
	// ErrClosed is returned when writing to a Writer that has been closed.
	ErrClosed = errors.New("lz77: write to closed Writer")
)
