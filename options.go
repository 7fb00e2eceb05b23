package lz77

const (
	// MinMatch is the shortest match the compressor emits, and the number of
	// bytes hashed to find candidates.
	MinMatch = 3
	// MaxMatch is the longest match the compressor emits.
	MaxMatch = 258
	// MaxDistance is the furthest back a match may reach.
	MaxDistance = 32768
	// MaxLazy is the largest lookahead depth Options.Lazy accepts.
	MaxLazy = 3
)

// Options controls the matching policy of a Compressor.
type Options struct {
	// Lazy is the number of consecutive start offsets that are compared
	// before a match is committed. 1 means greedy matching.
	// Values are clamped to [1, MaxLazy].
	Lazy int

	// SecondOrder enables lookahead past the end of a candidate match: a
	// later, longer match is passed over if an earlier match followed by a
	// continuation covers more. It has no effect when Lazy is 1.
	SecondOrder bool

	// MaxChain limits how many hash chain entries are examined when a start
	// offset is seeded. 0 means only the distance limit applies.
	MaxChain int
}

// DefaultOptions returns the options used by New: three-offset lazy
// matching with second-order lookahead.
func DefaultOptions() Options {
	return Options{Lazy: 3, SecondOrder: true, MaxChain: 4096}
}

var levels = []Options{
	{}, // 0
	{Lazy: 1, MaxChain: 8},
	{Lazy: 1, MaxChain: 32},
	{Lazy: 2, MaxChain: 32},
	{Lazy: 2, MaxChain: 128},
	{Lazy: 3, MaxChain: 128},
	{Lazy: 3, SecondOrder: true, MaxChain: 256},
	{Lazy: 3, SecondOrder: true, MaxChain: 1024},
	{Lazy: 3, SecondOrder: true, MaxChain: 2048},
	{Lazy: 3, SecondOrder: true, MaxChain: 4096},
}

// LevelOptions returns the options for a compression level from 1 to 9.
// Levels outside this range are replaced with the closest level available.
func LevelOptions(level int) Options {
	if level < 1 {
		level = 1
	}
	if level > 9 {
		level = 9
	}
	return levels[level]
}

func (o Options) normalize() Options {
	if o.Lazy < 1 {
		o.Lazy = 1
	}
	if o.Lazy > MaxLazy {
		o.Lazy = MaxLazy
	}
	if o.Lazy == 1 {
		o.SecondOrder = false
	}
	if o.MaxChain < 0 {
		o.MaxChain = 0
	}
	return o
}
