package lz77

// LazyMatchFinder is an implementation of the MatchFinder interface that
// runs a Compressor over each block. The Compressor's window persists from
// one block to the next, so matches may refer to data in previous blocks
// (up to MaxDistance bytes back); wrap it in AutoReset for formats that
// need self-contained blocks.
type LazyMatchFinder struct {
	// Options is read when the first block is compressed.
	Options Options

	c *Compressor
	b matchBuilder
}

// NewLazyMatchFinder returns a LazyMatchFinder using the options for a
// compression level from 1 to 9.
func NewLazyMatchFinder(level int) *LazyMatchFinder {
	return &LazyMatchFinder{Options: LevelOptions(level)}
}

func (q *LazyMatchFinder) Reset() {
	if q.c != nil {
		q.c.Reset()
	}
	q.b = matchBuilder{}
}

// FindMatches looks for matches in src, appends them to dst, and returns dst.
func (q *LazyMatchFinder) FindMatches(dst []Match, src []byte) []Match {
	if q.c == nil {
		q.c = NewWithOptions(&q.b, q.Options)
	}
	q.b.dst = dst
	q.c.Feed(src)
	q.c.Flush()
	dst = q.b.finish()
	q.b.dst = nil
	return dst
}

// matchBuilder is a Sink that groups tokens into Matches.
type matchBuilder struct {
	dst       []Match
	unmatched int
}

func (b *matchBuilder) Literal(byte) {
	b.unmatched++
}

func (b *matchBuilder) Match(distance, length int) {
	b.dst = append(b.dst, Match{
		Unmatched: b.unmatched,
		Length:    length,
		Distance:  distance,
	})
	b.unmatched = 0
}

func (b *matchBuilder) finish() []Match {
	if b.unmatched > 0 {
		b.dst = append(b.dst, Match{
			Unmatched: b.unmatched,
		})
		b.unmatched = 0
	}
	return b.dst
}
