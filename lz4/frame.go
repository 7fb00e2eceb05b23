package lz4

import (
	"encoding/binary"
	"hash"
	"io"

	"github.com/andybalholm/lz77"
	"github.com/pierrec/xxHash/xxHash32"
)

const (
	frameMagic = 0x184D2204

	// flagsByte: version 01, independent blocks, content checksum.
	flagsByte = 0x64
	// blockDescriptor: 64 KiB maximum block size.
	blockDescriptor = 0x40
	maxBlockSize    = 64 << 10

	uncompressedBit = 1 << 31
)

// A FrameEncoder implements the lz77.Encoder interface,
// writing in the LZ4 frame format. Blocks are marked independent, so the
// matches must not refer to earlier blocks.
type FrameEncoder struct {
	hasher      hash.Hash32
	blockBuffer []byte
}

func (f *FrameEncoder) Reset() {
	f.hasher = nil
}

// appendFrameHeader appends the magic number and frame descriptor.
func appendFrameHeader(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, frameMagic)
	desc := []byte{flagsByte, blockDescriptor}
	dst = append(dst, desc...)
	return append(dst, byte(xxHash32.Checksum(desc, 0)>>8))
}

func (f *FrameEncoder) Encode(dst []byte, src []byte, matches []lz77.Match, lastBlock bool) []byte {
	if len(src) > maxBlockSize {
		panic("block too large")
	}
	if f.hasher == nil {
		f.hasher = xxHash32.New(0)
		dst = appendFrameHeader(dst)
	}

	if len(src) > 0 {
		var be BlockEncoder
		f.blockBuffer = be.Encode(f.blockBuffer[:0], src, matches, lastBlock)
		if len(f.blockBuffer) >= len(src) {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(len(src))|uncompressedBit)
			dst = append(dst, src...)
		} else {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(len(f.blockBuffer)))
			dst = append(dst, f.blockBuffer...)
		}
		f.hasher.Write(src)
	}

	if lastBlock {
		dst = append(dst, 0, 0, 0, 0)
		dst = binary.LittleEndian.AppendUint32(dst, f.hasher.Sum32())
	}

	return dst
}

// NewWriter returns an lz77.Writer that compresses data at the given level
// (1-9) in the LZ4 frame format.
func NewWriter(w io.Writer, level int) *lz77.Writer {
	return &lz77.Writer{
		Dest:        w,
		MatchFinder: lz77.AutoReset{MatchFinder: lz77.NewLazyMatchFinder(level)},
		Encoder:     &FrameEncoder{},
		BlockSize:   maxBlockSize,
	}
}
