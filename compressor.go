package lz77

// A Compressor finds LZ77 matches in a stream of bytes and reports them to a
// Sink as literal and match tokens.
//
// Bytes that have been fed but not yet covered by a token form the pending
// region. For each of the first Lazy offsets of that region, a first-tier
// record tracks every earlier position that matches it, and keeps extending
// those matches as bytes arrive. When a first-tier match stops growing, the
// matches starting at its last few positions are tracked too (second tier),
// so that "this match, then that one" can be weighed against a later but
// longer single match. Once nothing is growing, the best option is emitted
// and the bytes after it are replayed from the window to seed the next round.
//
// All storage is allocated up front; memory use does not depend on the
// length of the stream. A Compressor is not safe for concurrent use.
type Compressor struct {
	sink Sink
	opts Options

	win   window
	index hashIndex

	first  tier
	second tier

	// links[j][k] is the second-tier record (plus one) for the match that
	// begins k bytes after the end of first-tier record j, minus
	// MinMatch-1; 0 if there is none.
	links   [MaxLazy - 1][MinMatch]uint8
	nsecond int

	start int // first position not covered by an emitted token
	cur   int // next position to process; below win.end while replaying
}

// New returns a Compressor with DefaultOptions that emits tokens to sink.
func New(sink Sink) *Compressor {
	return NewWithOptions(sink, DefaultOptions())
}

// NewWithOptions returns a Compressor that emits tokens to sink.
func NewWithOptions(sink Sink, opts Options) *Compressor {
	return &Compressor{
		sink: sink,
		opts: opts.normalize(),
	}
}

// Options returns the options in effect, after clamping.
func (c *Compressor) Options() Options {
	return c.opts
}

// Reset discards all history and pending bytes, without emitting anything,
// preparing c for a new stream.
func (c *Compressor) Reset() {
	c.win.reset()
	c.index.reset()
	c.clearCandidates()
	c.start = 0
	c.cur = 0
}

// Feed compresses p. Tokens are emitted as soon as they are decided; bytes
// near the end of p may stay pending until more input or a Flush arrives.
func (c *Compressor) Feed(p []byte) {
	for _, b := range p {
		c.win.absorb(b)
		c.run()
		assertf(c.win.end-c.start <= windowSize-MaxDistance, "pending region of %d bytes", c.win.end-c.start)
	}
}

// Write implements io.Writer. It never fails.
func (c *Compressor) Write(p []byte) (int, error) {
	c.Feed(p)
	return len(p), nil
}

// Flush emits tokens for all the bytes fed so far. The history is kept, so
// matches after a Flush can still refer to data before it.
func (c *Compressor) Flush() {
	for {
		c.run()
		k := c.win.end - c.start
		if k < MinMatch {
			c.emitLiterals(k)
			break
		}
		c.emit(c.choose())
	}
	c.rewind()
}

// run processes bytes until the cursor reaches the end of the window,
// emitting tokens whenever a decision is ready.
func (c *Compressor) run() {
	for c.cur < c.win.end {
		c.step()
		switch k := c.cur - c.start; {
		case k == MinMatch && c.first.recs[0].length == 0:
			// Nothing matches at the front of the pending region.
			c.emit(0, 0)
		case k >= MinMatch+c.opts.Lazy-1 && c.settled():
			c.emit(c.choose())
		}
	}
}

// step offers the byte at the cursor to the candidate records, seeds the
// records whose 3-byte prefix it completes, and indexes that prefix.
func (c *Compressor) step() {
	x := c.cur
	c.cur++

	for i := 0; i < c.opts.Lazy; i++ {
		c.first.extend(i, x, &c.win)
	}
	for i := 0; i < c.nsecond; i++ {
		c.second.extend(i, x, &c.win)
	}

	p := x - (MinMatch - 1)
	if p < 0 {
		return
	}
	key := hash3(c.win.at(p), c.win.at(p+1), c.win.at(x))
	if i := p - c.start; i >= 0 && i < c.opts.Lazy {
		c.first.seed(i, p, key, &c.win, &c.index, c.opts.MaxChain)
	}
	if c.opts.SecondOrder {
		c.seedContinuations(p, key)
	}
	c.index.insert(key, p)
}

// seedContinuations seeds a second-tier record at p for every finished
// first-tier match that could be cut short to end at p.
func (c *Compressor) seedContinuations(p int, key uint32) {
	for j := 0; j < c.opts.Lazy-1; j++ {
		r := &c.first.recs[j]
		if r.live || r.length == 0 {
			continue
		}
		k := p - (r.end() - (MinMatch - 1))
		if k < 0 || k >= MinMatch || p-r.start < MinMatch {
			continue
		}
		s := c.nsecond
		assertf(s < tierSize && c.links[j][k] == 0, "second-tier slot %d for (%d,%d)", s, j, k)
		c.nsecond++
		c.links[j][k] = uint8(s + 1)
		c.second.seed(s, p, key, &c.win, &c.index, c.opts.MaxChain)
	}
}

// settled reports whether every record that could change the decision has
// stopped growing. The caller has checked that all first-tier offsets are
// seeded.
func (c *Compressor) settled() bool {
	for i := 0; i < c.opts.Lazy; i++ {
		if c.first.recs[i].live {
			return false
		}
	}
	for i := 0; i < c.nsecond; i++ {
		if c.second.recs[i].live {
			return false
		}
	}
	if c.opts.SecondOrder {
		for j := 0; j < c.opts.Lazy-1; j++ {
			r := &c.first.recs[j]
			if r.length > 0 && c.cur < r.end()+MinMatch {
				return false
			}
		}
	}
	return true
}

// continuation returns the truncated length t of first-tier match j and the
// length of the match that starts right after it, for link k. n is 0 if
// there is no such match.
func (c *Compressor) continuation(j, k int) (t, n int) {
	s := c.links[j][k]
	if s == 0 {
		return 0, 0
	}
	cont := &c.second.recs[s-1]
	if cont.length < MinMatch {
		return 0, 0
	}
	return cont.start - c.first.recs[j].start, cont.length
}

// disqualified reports whether an earlier first-tier match, cut short and
// followed by a continuation, reaches at least Lazy-1 bytes further than
// match i would.
func (c *Compressor) disqualified(i int) bool {
	if !c.opts.SecondOrder {
		return false
	}
	need := c.first.recs[i].length + c.opts.Lazy - 1
	for j := 0; j < i; j++ {
		for k := 0; k < MinMatch; k++ {
			if t, n := c.continuation(j, k); n > 0 && t+n >= need {
				return true
			}
		}
	}
	return false
}

// choose picks the first-tier offset to emit a match at, and its length.
// A length of 0 means no match qualifies and a literal should be emitted.
func (c *Compressor) choose() (offset, length int) {
	best, bestScore := -1, 0
	for i := 0; i < c.opts.Lazy; i++ {
		r := &c.first.recs[i]
		if r.length < MinMatch || c.disqualified(i) {
			continue
		}
		// Each literal before the match costs one byte of coverage.
		if score := r.length - i; best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return 0, 0
	}
	return best, c.truncate(best)
}

// truncate returns the length to emit for first-tier match j: its full
// length, or a shorter one if the continuation after the shorter match
// covers more.
func (c *Compressor) truncate(j int) int {
	length := c.first.recs[j].length
	if !c.opts.SecondOrder || j >= c.opts.Lazy-1 {
		return length
	}
	cover := length
	for k := MinMatch - 1; k >= 0; k-- {
		if t, n := c.continuation(j, k); n > 0 && t+n > cover {
			length, cover = t, t+n
		}
	}
	return length
}

// emit writes offset literals followed by a match of the given length at
// first-tier record offset, or a single literal if length is 0. Then it
// rewinds to replay the bytes after the emitted tokens.
func (c *Compressor) emit(offset, length int) {
	c.emitLiterals(offset)
	if length == 0 {
		c.emitLiterals(1)
	} else {
		r := &c.first.recs[offset]
		assertf(r.start == c.start, "match record starts at %d, pending region at %d", r.start, c.start)
		assertf(r.dist >= 1 && r.dist <= MaxDistance && r.dist <= c.start, "match distance %d at %d", r.dist, c.start)
		assertf(length >= MinMatch && length <= r.length && length <= MaxMatch, "match length %d of %d", length, r.length)
		printf("lz77: match at %d: distance %d, length %d of %d", c.start, r.dist, length, r.length)
		c.sink.Match(r.dist, length)
		c.start += length
	}
	c.rewind()
}

func (c *Compressor) emitLiterals(n int) {
	for ; n > 0; n-- {
		c.sink.Literal(c.win.at(c.start))
		c.start++
	}
}

// rewind clears the candidate records and moves the cursor back to the
// start of the pending region, so that the bytes already in the window are
// processed again for the new region.
func (c *Compressor) rewind() {
	c.clearCandidates()
	c.cur = c.start
}

func (c *Compressor) clearCandidates() {
	c.first.clear(c.opts.Lazy)
	c.second.clear(c.nsecond)
	c.nsecond = 0
	c.links = [MaxLazy - 1][MinMatch]uint8{}
}
