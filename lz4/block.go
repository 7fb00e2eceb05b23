// Package lz4 writes the LZ4 block and frame formats from lz77 matches.
package lz4

import (
	"encoding/binary"

	"github.com/andybalholm/lz77"
)

// minMatch is the shortest match the LZ4 format can express. Shorter
// matches are written as literals.
const minMatch = 4

// A BlockEncoder implements the lz77.Encoder interface, writing in the LZ4
// block format.
type BlockEncoder struct{}

func (BlockEncoder) Reset() {}

func (BlockEncoder) Encode(dst []byte, src []byte, matches []lz77.Match, lastBlock bool) []byte {
	// Ensure that the block ends with at least 5 literal bytes,
	// and the last match is at least 12 bytes before the end of the block.
	trailingLiterals := 0
	for len(matches) > 0 && (trailingLiterals < 5 || trailingLiterals+matches[len(matches)-1].Length < 12) {
		lastMatch := matches[len(matches)-1]
		matches = matches[:len(matches)-1]
		trailingLiterals += lastMatch.Unmatched + lastMatch.Length
	}

	pos := 0
	carried := 0 // bytes of short matches, written as literals
	for _, m := range matches {
		if m.Length < minMatch {
			carried += m.Unmatched + m.Length
			continue
		}
		unmatched := carried + m.Unmatched
		carried = 0

		token := byte(0)
		if unmatched > 14 {
			token |= 0xf0
		} else {
			token |= byte(unmatched << 4)
		}
		if m.Length > 18 {
			token |= 0x0f
		} else {
			token |= byte(m.Length - minMatch)
		}
		dst = append(dst, token)

		if unmatched > 14 {
			dst = appendInt(dst, unmatched-15)
		}
		dst = append(dst, src[pos:pos+unmatched]...)

		dst = binary.LittleEndian.AppendUint16(dst, uint16(m.Distance))
		if m.Length > 18 {
			dst = appendInt(dst, m.Length-19)
		}

		pos += unmatched + m.Length
	}

	// Write the final, literals-only sequence.
	literals := len(src) - pos
	token := byte(0)
	if literals > 14 {
		token |= 0xf0
	} else {
		token |= byte(literals << 4)
	}
	dst = append(dst, token)
	if literals > 14 {
		dst = appendInt(dst, literals-15)
	}
	dst = append(dst, src[pos:]...)

	return dst
}

// appendInt appends n to dst in LZ4's variable-length integer format.
func appendInt(dst []byte, n int) []byte {
	for n >= 255 {
		dst = append(dst, 255)
		n -= 255
	}
	dst = append(dst, byte(n))
	return dst
}
