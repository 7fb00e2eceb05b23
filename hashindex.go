package lz77

const (
	hashBits = 15
	hashSize = 1 << hashBits
)

// hash3 returns the hash index for a 3-byte prefix.
func hash3(b0, b1, b2 byte) uint32 {
	u := uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16
	return (u * 0x1e35a7bd) >> (32 - hashBits)
}

// A hashIndex maps 3-byte prefixes to chains of stream positions, most
// recent first. Positions are stored plus one, so that 0 means empty.
type hashIndex struct {
	head [hashSize]int
	prev [windowSize]int

	// next is the first position that has not been inserted. Positions are
	// inserted in order; after a rewind the replayed ones are already there.
	next int
}

func (h *hashIndex) insert(key uint32, pos int) {
	if pos < h.next {
		return
	}
	assertf(pos == h.next, "hash insert at %d, expected %d", pos, h.next)
	h.prev[pos&windowMask] = h.head[key]
	h.head[key] = pos + 1
	h.next = pos + 1
}

// A chainIter walks the positions that share a hash key with pos and lie
// before it, most recent first, within MaxDistance.
type chainIter struct {
	h     *hashIndex
	pos   int
	q     int
	tries int // remaining entries, -1 for unlimited
}

func (h *hashIndex) chain(key uint32, pos, maxChain int) chainIter {
	tries := -1
	if maxChain > 0 {
		tries = maxChain
	}
	return chainIter{h: h, pos: pos, q: h.head[key] - 1, tries: tries}
}

// next returns the next earlier position, or -1 when the chain is done.
func (it *chainIter) next() int {
	for it.q >= 0 && it.tries != 0 {
		q := it.q
		if it.pos-q > MaxDistance {
			it.q = -1
			return -1
		}
		older := it.h.prev[q&windowMask] - 1
		if older >= q {
			// A slot reused by a newer position; the rest of the chain is stale.
			older = -1
		}
		it.q = older
		if q >= it.pos {
			// Indexed before a rewind; not history for pos yet.
			continue
		}
		if it.tries > 0 {
			it.tries--
		}
		return q
	}
	return -1
}

func (h *hashIndex) reset() {
	h.head = [hashSize]int{}
	h.next = 0
}
