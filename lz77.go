// Package lz77 implements the LZ77 stage of a Deflate-compatible compressor.
//
// The core is Compressor, a streaming match finder that turns an unbounded
// byte stream into literal and match tokens. It keeps a 32 KiB sliding
// window, indexes it with 3-byte hash chains, and decides what to emit with
// lazy matching over several consecutive start offsets plus a second level
// of lookahead that considers the match beginning where a candidate match
// ends. The token sequence depends only on the bytes fed and the points
// where Flush is called, never on how the input was split into chunks.
//
// The rest of the package connects the compressor to output formats:
//   - A MatchFinder looks for repeated sequences of bytes in a block
//   - An Encoder writes the block in its final format
//
// Writer glues the two together. The subpackages flate, snappy, lz4 and
// brotli provide Encoders.
package lz77

// A Match is the basic unit of LZ77 compression.
type Match struct {
	Unmatched int // the number of unmatched bytes since the previous match
	Length    int // the number of bytes in the matched string; it may be 0 at the end of the input
	Distance  int // how far back in the stream to copy from
}

// A MatchFinder performs the LZ77 stage of compression, looking for matches.
type MatchFinder interface {
	// FindMatches looks for matches in src, appends them to dst, and returns dst.
	FindMatches(dst []Match, src []byte) []Match

	// Reset clears any internal state, preparing the MatchFinder to be used with
	// a new stream.
	Reset()
}

// An Encoder encodes the data in its final format.
type Encoder interface {
	// Encode appends the encoded format of src to dst, using the match
	// information from matches.
	Encode(dst []byte, src []byte, matches []Match, lastBlock bool) []byte

	// Reset clears any internal state, preparing the Encoder to be used with
	// a new stream.
	Reset()
}

// AutoReset wraps a MatchFinder that can return references to data in
// previous blocks, and calls Reset before each block. It is useful for
// formats whose blocks are decoded independently (snappy chunks, LZ4 frames
// with independent blocks).
type AutoReset struct {
	MatchFinder
}

func (a AutoReset) FindMatches(dst []Match, src []byte) []Match {
	a.Reset()
	return a.MatchFinder.FindMatches(dst, src)
}
