package lz77

// tierSize is the number of records per tier. The first tier uses Lazy of
// them; the second tier holds up to MinMatch continuations for each
// first-tier offset but the last.
const tierSize = (MaxLazy - 1) * MinMatch

// A record tracks the matches for one start position.
type record struct {
	start  int  // stream position of the first byte
	length int  // bytes matched so far; 0 if no match was found
	dist   int  // smallest distance that matched all length bytes
	head   int  // first distance of the live list, 0 if empty
	seeded bool // the 3-byte prefix at start has been looked up
	live   bool // the match can still grow
}

func (r *record) end() int {
	return r.start + r.length
}

// A tier is a set of records whose distance lists are threaded through
// shared arrays indexed by distance. The lists of one tier are disjoint:
// a distance belongs to at most one record.
type tier struct {
	recs  [tierSize]record
	next  [MaxDistance + 1]uint16 // next[d] follows d in its list; 0 ends it
	owner [MaxDistance + 1]uint8  // record index + 1, or 0 if unclaimed
}

// seed looks up the matches for the 3-byte prefix at pos and stores them in
// record i.
func (t *tier) seed(i int, pos int, key uint32, w *window, h *hashIndex, maxChain int) {
	r := &t.recs[i]
	assertf(r.head == 0, "seeding record %d that still holds distances", i)
	*r = record{start: pos, seeded: true}

	b0, b1, b2 := w.at(pos), w.at(pos+1), w.at(pos+2)
	tail := 0
	it := h.chain(key, pos, maxChain)
	for q := it.next(); q >= 0; q = it.next() {
		d := pos - q
		if t.owner[d] != 0 {
			continue
		}
		if w.at(q) != b0 || w.at(q+1) != b1 || w.at(q+2) != b2 {
			continue
		}
		t.owner[d] = uint8(i + 1)
		t.next[d] = 0
		if tail == 0 {
			r.head = d
		} else {
			t.next[tail] = uint16(d)
		}
		tail = d
	}

	if r.head != 0 {
		r.length = MinMatch
		r.dist = r.head
		r.live = true
	}
}

// extend offers the byte at position x to record i, dropping the distances
// that do not continue. It reports whether the record stopped growing.
func (t *tier) extend(i int, x int, w *window) (finished bool) {
	r := &t.recs[i]
	if !r.live {
		return false
	}
	assertf(x == r.end(), "extend record at %d+%d with byte %d", r.start, r.length, x)

	b := w.at(x)
	prev := 0
	for d := r.head; d != 0; {
		nd := int(t.next[d])
		if w.at(x-d) == b {
			prev = d
		} else {
			t.owner[d] = 0
			if prev == 0 {
				r.head = nd
			} else {
				t.next[prev] = uint16(nd)
			}
		}
		d = nd
	}

	if r.head == 0 {
		r.live = false
		return true
	}
	r.length++
	r.dist = r.head
	if r.length == MaxMatch {
		r.live = false
		return true
	}
	return false
}

// clear empties the first n records and releases their distances.
func (t *tier) clear(n int) {
	for i := 0; i < n; i++ {
		r := &t.recs[i]
		for d := r.head; d != 0; d = int(t.next[d]) {
			t.owner[d] = 0
		}
		*r = record{}
	}
}
