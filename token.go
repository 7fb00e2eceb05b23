package lz77

import "fmt"

// A Token is one instruction of the compressor's output: either a literal
// byte, or a copy of Length bytes starting Distance bytes back.
type Token struct {
	Literal  byte
	Distance int // 0 for a literal
	Length   int // 0 for a literal
}

// IsMatch reports whether t is a back-reference.
func (t Token) IsMatch() bool {
	return t.Distance != 0
}

func (t Token) String() string {
	if t.IsMatch() {
		return fmt.Sprintf("<%d,%d>", t.Length, t.Distance)
	}
	return fmt.Sprintf("%q", t.Literal)
}

// A Sink receives the tokens produced by a Compressor. The methods are
// called synchronously from Feed and Flush; they must not call back into the
// Compressor.
type Sink interface {
	Literal(b byte)
	Match(distance, length int)
}

// SinkFuncs adapts a pair of callbacks to the Sink interface.
// A nil callback discards its tokens.
type SinkFuncs struct {
	OnLiteral func(b byte)
	OnMatch   func(distance, length int)
}

func (s SinkFuncs) Literal(b byte) {
	if s.OnLiteral != nil {
		s.OnLiteral(b)
	}
}

func (s SinkFuncs) Match(distance, length int) {
	if s.OnMatch != nil {
		s.OnMatch(distance, length)
	}
}

// Tokens is a Sink that records every token it receives.
type Tokens []Token

func (t *Tokens) Literal(b byte) {
	*t = append(*t, Token{Literal: b})
}

func (t *Tokens) Match(distance, length int) {
	*t = append(*t, Token{Distance: distance, Length: length})
}

// Stats returns the number of literals and matches in t, and the number of
// bytes they expand to.
func (t Tokens) Stats() (literals, matches, size int) {
	for _, tok := range t {
		if tok.IsMatch() {
			matches++
			size += tok.Length
		} else {
			literals++
			size++
		}
	}
	return literals, matches, size
}

// Compress runs a fresh Compressor over src and returns the tokens it emits.
func Compress(src []byte, opts Options) []Token {
	var t Tokens
	c := NewWithOptions(&t, opts)
	c.Feed(src)
	c.Flush()
	return t
}

// Expand replays tokens onto dst and returns the extended slice. dst is
// treated as history that earlier tokens produced, so a match may reach back
// into it.
func Expand(dst []byte, tokens []Token) ([]byte, error) {
	for i, t := range tokens {
		if !t.IsMatch() {
			dst = append(dst, t.Literal)
			continue
		}
		if t.Length < MinMatch || t.Length > MaxMatch {
			return dst, fmt.Errorf("token %d: %w: %d", i, ErrLength, t.Length)
		}
		if t.Distance < 1 || t.Distance > MaxDistance || t.Distance > len(dst) {
			return dst, fmt.Errorf("token %d: %w: %d with %d bytes of history", i, ErrDistance, t.Distance, len(dst))
		}
		// Byte by byte, so that overlapping copies repeat the pattern.
		from := len(dst) - t.Distance
		for j := 0; j < t.Length; j++ {
			dst = append(dst, dst[from+j])
		}
	}
	return dst, nil
}
