package lz77

const (
	windowBits = 16
	// windowSize covers MaxDistance bytes of history plus the longest
	// pending region (two chained MaxMatch runs and the lookahead).
	windowSize = 1 << windowBits
	windowMask = windowSize - 1
)

// A window is a ring buffer holding the most recent bytes of the stream.
// Bytes are addressed by their absolute stream position; a backward distance
// d from position p refers to position p-d.
type window struct {
	buf [windowSize]byte
	end int // number of bytes absorbed since the last reset
}

// absorb appends b and returns its stream position.
func (w *window) absorb(b byte) int {
	pos := w.end
	w.buf[pos&windowMask] = b
	w.end++
	return pos
}

func (w *window) at(pos int) byte {
	assertf(pos >= 0 && pos < w.end && w.end-pos <= windowSize, "window read at %d, end %d", pos, w.end)
	return w.buf[pos&windowMask]
}

// back returns the byte distance positions before the newest one.
func (w *window) back(distance int) byte {
	return w.at(w.end - 1 - distance)
}

// valid returns how many bytes of history are held.
func (w *window) valid() int {
	if w.end < windowSize {
		return w.end
	}
	return windowSize
}

func (w *window) reset() {
	w.end = 0
}
