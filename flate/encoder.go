// Package flate writes Deflate (RFC 1951) and gzip (RFC 1952) streams from
// the matches found by an lz77.MatchFinder.
package flate

import (
	"encoding/binary"
	"math/bits"

	"github.com/andybalholm/lz77"
)

const (
	endOfBlock   = 256
	maxStoredLen = 65535
)

var lengthBase = [...]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
	35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtra = [...]uint{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

var distBase = [...]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
	257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var distExtra = [...]uint{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// A hcode is a Huffman code, bit-reversed so that it can be written LSB
// first.
type hcode struct {
	code uint16
	len  uint
}

func reversed(code uint16, n uint) hcode {
	return hcode{code: bits.Reverse16(code) >> (16 - n), len: n}
}

var fixedLiteral [288]hcode
var fixedDistance [30]hcode

func init() {
	for sym := range fixedLiteral {
		s := uint16(sym)
		switch {
		case sym < 144:
			fixedLiteral[sym] = reversed(0x30+s, 8)
		case sym < 256:
			fixedLiteral[sym] = reversed(0x190+s-144, 9)
		case sym < 280:
			fixedLiteral[sym] = reversed(s-256, 7)
		default:
			fixedLiteral[sym] = reversed(0xc0+s-280, 8)
		}
	}
	for i := range fixedDistance {
		fixedDistance[i] = reversed(uint16(i), 5)
	}
}

func lengthCode(length int) int {
	code := len(lengthBase) - 1
	for lengthBase[code] > length {
		code--
	}
	return code
}

func distCode(distance int) int {
	code := len(distBase) - 1
	for distBase[code] > distance {
		code--
	}
	return code
}

// An Encoder implements the lz77.Encoder interface, writing each block with
// the fixed Huffman codes, or as stored blocks when that is smaller. Bits
// that do not fill a byte are held until the next block.
type Encoder struct {
	bits  uint64
	nbits uint
}

func NewEncoder() *Encoder {
	return new(Encoder)
}

func (e *Encoder) Reset() {
	e.bits = 0
	e.nbits = 0
}

func (e *Encoder) writeBits(dst []byte, v uint64, n uint) []byte {
	e.bits |= v << e.nbits
	e.nbits += n
	for e.nbits >= 8 {
		dst = append(dst, byte(e.bits))
		e.bits >>= 8
		e.nbits -= 8
	}
	return dst
}

func (e *Encoder) writeCode(dst []byte, c hcode) []byte {
	return e.writeBits(dst, uint64(c.code), c.len)
}

// align pads the output to a byte boundary.
func (e *Encoder) align(dst []byte) []byte {
	if e.nbits > 0 {
		dst = append(dst, byte(e.bits))
	}
	e.bits = 0
	e.nbits = 0
	return dst
}

func (e *Encoder) Encode(dst []byte, src []byte, matches []lz77.Match, lastBlock bool) []byte {
	if len(src) == 0 && !lastBlock {
		return dst
	}
	if storedBits(len(src)) < fixedBits(src, matches) {
		return e.encodeStored(dst, src, lastBlock)
	}
	return e.encodeFixed(dst, src, matches, lastBlock)
}

func finalBit(last bool) uint64 {
	if last {
		return 1
	}
	return 0
}

func (e *Encoder) encodeFixed(dst []byte, src []byte, matches []lz77.Match, lastBlock bool) []byte {
	dst = e.writeBits(dst, finalBit(lastBlock)|1<<1, 3)

	pos := 0
	for _, m := range matches {
		for _, b := range src[pos : pos+m.Unmatched] {
			dst = e.writeCode(dst, fixedLiteral[b])
		}
		pos += m.Unmatched
		if m.Length == 0 {
			continue
		}
		lc := lengthCode(m.Length)
		dst = e.writeCode(dst, fixedLiteral[257+lc])
		if n := lengthExtra[lc]; n > 0 {
			dst = e.writeBits(dst, uint64(m.Length-lengthBase[lc]), n)
		}
		dc := distCode(m.Distance)
		dst = e.writeCode(dst, fixedDistance[dc])
		if n := distExtra[dc]; n > 0 {
			dst = e.writeBits(dst, uint64(m.Distance-distBase[dc]), n)
		}
		pos += m.Length
	}
	for _, b := range src[pos:] {
		dst = e.writeCode(dst, fixedLiteral[b])
	}

	dst = e.writeCode(dst, fixedLiteral[endOfBlock])
	if lastBlock {
		dst = e.align(dst)
	}
	return dst
}

func (e *Encoder) encodeStored(dst []byte, src []byte, lastBlock bool) []byte {
	for {
		chunk := src
		if len(chunk) > maxStoredLen {
			chunk = chunk[:maxStoredLen]
		}
		src = src[len(chunk):]
		dst = e.writeBits(dst, finalBit(lastBlock && len(src) == 0), 3)
		dst = e.align(dst)
		dst = binary.LittleEndian.AppendUint16(dst, uint16(len(chunk)))
		dst = binary.LittleEndian.AppendUint16(dst, ^uint16(len(chunk)))
		dst = append(dst, chunk...)
		if len(src) == 0 {
			return dst
		}
	}
}

// fixedBits returns the size of a fixed-code block holding src.
func fixedBits(src []byte, matches []lz77.Match) int {
	n := 3 + int(fixedLiteral[endOfBlock].len)
	pos := 0
	for _, m := range matches {
		for _, b := range src[pos : pos+m.Unmatched] {
			n += int(fixedLiteral[b].len)
		}
		pos += m.Unmatched
		if m.Length == 0 {
			continue
		}
		lc := lengthCode(m.Length)
		dc := distCode(m.Distance)
		n += int(fixedLiteral[257+lc].len+lengthExtra[lc]) + 5 + int(distExtra[dc])
		pos += m.Length
	}
	for _, b := range src[pos:] {
		n += int(fixedLiteral[b].len)
	}
	return n
}

// storedBits returns an upper bound on the size of the stored blocks
// holding n bytes.
func storedBits(n int) int {
	blocks := (n + maxStoredLen - 1) / maxStoredLen
	if blocks == 0 {
		blocks = 1
	}
	return blocks*(3+7+32) + 8*n
}
