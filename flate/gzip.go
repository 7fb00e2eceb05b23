package flate

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/andybalholm/lz77"
)

// NewGZIPEncoder returns an Encoder that wraps its Deflate output in a gzip
// member.
func NewGZIPEncoder() lz77.Encoder {
	return &gzipEncoder{}
}

type gzipEncoder struct {
	f       Encoder
	started bool
	length  uint32
	crc     uint32
}

func (g *gzipEncoder) Reset() {
	g.f.Reset()
	g.started = false
	g.length = 0
	g.crc = 0
}

func appendHeader(dst []byte) []byte {
	return append(dst,
		0x1f, 0x8b, // magic number
		8,          // CM = flate
		0,          // FLG
		0, 0, 0, 0, // MTIME (not set)
		0,   // XFL
		255, // OS (unspecified)
	)
}

func (g *gzipEncoder) Encode(dst []byte, src []byte, matches []lz77.Match, lastBlock bool) []byte {
	if !g.started {
		dst = appendHeader(dst)
		g.started = true
	}

	dst = g.f.Encode(dst, src, matches, lastBlock)

	g.length += uint32(len(src))
	g.crc = crc32.Update(g.crc, crc32.IEEETable, src)

	if lastBlock {
		dst = binary.LittleEndian.AppendUint32(dst, g.crc)
		dst = binary.LittleEndian.AppendUint32(dst, g.length)
	}

	return dst
}
