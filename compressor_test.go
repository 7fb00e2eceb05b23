package lz77

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/andybalholm/lz77/internal/corpus"
	"github.com/kr/pretty"
)

var optionSets = []struct {
	name string
	opts Options
}{
	{"default", DefaultOptions()},
	{"greedy", Options{Lazy: 1, MaxChain: 64}},
	{"lazy2", Options{Lazy: 2, MaxChain: 64}},
	{"lazy3", Options{Lazy: 3, MaxChain: 64}},
	{"second-order-2", Options{Lazy: 2, SecondOrder: true, MaxChain: 64}},
	{"unbounded-chain", Options{Lazy: 3, SecondOrder: true}},
}

// checkTokens verifies that tokens respect the format limits and expand to
// want.
func checkTokens(t *testing.T, want []byte, tokens []Token) {
	t.Helper()
	produced := 0
	for i, tok := range tokens {
		if tok.IsMatch() {
			if tok.Length < MinMatch || tok.Length > MaxMatch {
				t.Fatalf("token %d: length %d out of range", i, tok.Length)
			}
			if tok.Distance < 1 || tok.Distance > MaxDistance {
				t.Fatalf("token %d: distance %d out of range", i, tok.Distance)
			}
			if tok.Distance > produced {
				t.Fatalf("token %d: distance %d with only %d bytes of output", i, tok.Distance, produced)
			}
			produced += tok.Length
		} else {
			produced++
		}
	}
	got, err := Expand(nil, tokens)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("expanded output doesn't match: got %d bytes, want %d", len(got), len(want))
	}
}

func compressChunks(src []byte, opts Options, sizes func() int) []Token {
	var tokens Tokens
	c := NewWithOptions(&tokens, opts)
	for len(src) > 0 {
		n := sizes()
		if n > len(src) {
			n = len(src)
		}
		c.Feed(src[:n])
		src = src[n:]
	}
	c.Flush()
	return tokens
}

func TestRoundTrip(t *testing.T) {
	for _, o := range optionSets {
		for _, s := range corpus.Samples() {
			t.Run(o.name+"/"+s.Name, func(t *testing.T) {
				checkTokens(t, s.Data, Compress(s.Data, o.opts))
			})
		}
	}
}

func TestRoundTripLevels(t *testing.T) {
	data := corpus.Text(50000, 7)
	for level := 0; level <= 10; level++ {
		t.Run(fmt.Sprintf("level-%d", level), func(t *testing.T) {
			checkTokens(t, data, Compress(data, LevelOptions(level)))
		})
	}
}

func TestChunkInvariance(t *testing.T) {
	for _, o := range optionSets {
		for _, s := range corpus.Samples() {
			t.Run(o.name+"/"+s.Name, func(t *testing.T) {
				want := Compress(s.Data, o.opts)

				oneByte := compressChunks(s.Data, o.opts, func() int { return 1 })
				if diff := pretty.Diff(want, oneByte); len(diff) > 0 {
					t.Fatalf("1-byte chunks differ from a single Feed: %v", diff)
				}

				r := rand.New(rand.NewSource(int64(len(s.Data))))
				random := compressChunks(s.Data, o.opts, func() int { return r.Intn(700) + 1 })
				if diff := pretty.Diff(want, random); len(diff) > 0 {
					t.Fatalf("random chunks differ from a single Feed: %v", diff)
				}
			})
		}
	}
}

func TestPorridgeChunks(t *testing.T) {
	src := []byte("Pease porridge hot, pease porridge cold")
	want := Compress(src, DefaultOptions())

	var got Tokens
	c := New(&got)
	for i := range src {
		c.Write(src[i : i+1])
	}
	c.Flush()

	if diff := pretty.Diff(want, []Token(got)); len(diff) > 0 {
		t.Fatalf("1-byte writes differ: %v", diff)
	}
	_, matches, _ := got.Stats()
	if matches == 0 {
		t.Fatal("no matches found in repeated text")
	}
	checkTokens(t, src, got)
}

func TestDeterminism(t *testing.T) {
	data := corpus.Text(30000, 11)
	a := Compress(data, DefaultOptions())
	b := Compress(data, DefaultOptions())
	if diff := pretty.Diff(a, b); len(diff) > 0 {
		t.Fatalf("two runs differ: %v", diff)
	}
}

func TestTrivialInputs(t *testing.T) {
	if tokens := Compress(nil, DefaultOptions()); len(tokens) != 0 {
		t.Fatalf("empty input produced %v", tokens)
	}
	for _, s := range []string{"a", "ab", "aa"} {
		tokens := Compress([]byte(s), DefaultOptions())
		if len(tokens) != len(s) {
			t.Fatalf("%q: got %v, want %d literals", s, tokens, len(s))
		}
		for _, tok := range tokens {
			if tok.IsMatch() {
				t.Fatalf("%q: unexpected match %v", s, tok)
			}
		}
	}
}

func TestRunOfTen(t *testing.T) {
	src := []byte("AAAAAAAAAA")
	tokens := Compress(src, DefaultOptions())
	checkTokens(t, src, tokens)
	want := []Token{{Literal: 'A'}, {Distance: 1, Length: 9}}
	if diff := pretty.Diff(want, tokens); len(diff) > 0 {
		t.Fatalf("unexpected tokens: %v", diff)
	}
}

func TestPeriodThree(t *testing.T) {
	src := []byte("abcabcabcabc")
	tokens := Compress(src, DefaultOptions())
	checkTokens(t, src, tokens)
	_, matches, _ := Tokens(tokens).Stats()
	if matches == 0 {
		t.Fatalf("no match in %v", tokens)
	}
	for _, tok := range tokens {
		if tok.IsMatch() && tok.Distance%3 != 0 {
			t.Fatalf("match %v does not repeat the period", tok)
		}
	}
}

func TestIncompressible(t *testing.T) {
	src := corpus.Distinct(100, 5)
	tokens := Compress(src, DefaultOptions())
	checkTokens(t, src, tokens)
	literals, matches, _ := Tokens(tokens).Stats()
	if literals != 100 || matches != 0 {
		t.Fatalf("got %d literals and %d matches, want 100 and 0", literals, matches)
	}
}

func TestLazyMatching(t *testing.T) {
	// At the last 'a' only "abc" matches, but one byte later "bcdefgh" does.
	src := []byte("abc1 bcdefgh2 abcdefgh")
	lazy := Compress(src, DefaultOptions())
	checkTokens(t, src, lazy)
	want := []Token{{Literal: 'a'}, {Distance: 10, Length: 7}}
	if diff := pretty.Diff(want, lazy[len(lazy)-2:]); len(diff) > 0 {
		t.Fatalf("lazy matching: %v", diff)
	}

	greedy := Compress(src, Options{Lazy: 1})
	checkTokens(t, src, greedy)
	want = []Token{{Distance: 14, Length: 3}, {Distance: 10, Length: 5}}
	if diff := pretty.Diff(want, greedy[len(greedy)-2:]); len(diff) > 0 {
		t.Fatalf("greedy matching: %v", diff)
	}
}

func TestFlapping(t *testing.T) {
	src := []byte("flap lapping flapping")
	tokens := Compress(src, DefaultOptions())
	checkTokens(t, src, tokens)
	want := []Token{{Literal: 'f'}, {Distance: 9, Length: 7}}
	if diff := pretty.Diff(want, tokens[len(tokens)-2:]); len(diff) > 0 {
		t.Fatalf("expected a literal then the longer match: %v", diff)
	}

	greedy := Compress(src, Options{Lazy: 1})
	checkTokens(t, src, greedy)
	want = []Token{{Distance: 13, Length: 4}, {Distance: 9, Length: 4}}
	if diff := pretty.Diff(want, greedy[len(greedy)-2:]); len(diff) > 0 {
		t.Fatalf("greedy matching: %v", diff)
	}
}

func TestSecondOrderLookahead(t *testing.T) {
	// "abcd" followed by "efghijklmn" beats a literal 'a' followed by
	// "bcdefg" and "hijklmn".
	src := []byte("abcd!bcdefg#efghijklmn$abcdefghijklmn")

	tokens := Compress(src, DefaultOptions())
	checkTokens(t, src, tokens)
	want := []Token{{Distance: 23, Length: 4}, {Distance: 15, Length: 10}}
	if diff := pretty.Diff(want, tokens[len(tokens)-2:]); len(diff) > 0 {
		t.Fatalf("second-order lazy matching: %v", diff)
	}

	firstOrder := Compress(src, Options{Lazy: 3})
	checkTokens(t, src, firstOrder)
	want = []Token{{Literal: 'a'}, {Distance: 19, Length: 6}, {Distance: 15, Length: 7}}
	if diff := pretty.Diff(want, firstOrder[len(firstOrder)-3:]); len(diff) > 0 {
		t.Fatalf("first-order lazy matching: %v", diff)
	}
}

func TestLongRunIsSplit(t *testing.T) {
	src := bytes.Repeat([]byte{'z'}, 2000)
	tokens := Compress(src, DefaultOptions())
	checkTokens(t, src, tokens)
	for _, tok := range tokens[1:] {
		if !tok.IsMatch() {
			t.Fatalf("unexpected literal %v after the first byte", tok)
		}
		if tok.Distance != 1 {
			t.Fatalf("run copied from distance %d", tok.Distance)
		}
	}
}

func TestFlushKeepsHistory(t *testing.T) {
	var tokens Tokens
	c := New(&tokens)
	first := []byte("the quick brown fox jumps over the lazy dog")
	c.Feed(first)
	c.Flush()
	n := len(tokens)
	checkTokens(t, first, tokens)

	second := []byte("quick brown fox")
	c.Feed(second)
	c.Flush()

	tail := tokens[n:]
	if len(tail) != 1 || !tail[0].IsMatch() || tail[0].Length != len(second) {
		t.Fatalf("expected one match reaching before the flush, got %v", tail)
	}
	checkTokens(t, append(append([]byte{}, first...), second...), tokens)
}

func TestFlushTwice(t *testing.T) {
	var tokens Tokens
	c := New(&tokens)
	c.Feed([]byte("abcabc"))
	c.Flush()
	n := len(tokens)
	c.Flush()
	if len(tokens) != n {
		t.Fatalf("second Flush emitted %v", tokens[n:])
	}
}

func TestReset(t *testing.T) {
	var tokens Tokens
	c := New(&tokens)
	c.Feed([]byte("hello hello hello"))
	c.Reset()
	tokens = tokens[:0]

	src := []byte("hello")
	c.Feed(src)
	c.Flush()
	literals, matches, _ := tokens.Stats()
	if literals != len(src) || matches != 0 {
		t.Fatalf("history survived Reset: %v", tokens)
	}
}

func TestSinkFuncs(t *testing.T) {
	var out []byte
	var sink SinkFuncs
	sink.OnLiteral = func(b byte) {
		out = append(out, b)
	}
	sink.OnMatch = func(distance, length int) {
		from := len(out) - distance
		for i := 0; i < length; i++ {
			out = append(out, out[from+i])
		}
	}

	src := corpus.Text(10000, 9)
	c := New(sink)
	c.Feed(src)
	c.Flush()
	if !bytes.Equal(out, src) {
		t.Fatal("callbacks did not rebuild the input")
	}
}

func TestOptionsClamped(t *testing.T) {
	c := NewWithOptions(nil, Options{Lazy: 10, MaxChain: -4})
	if o := c.Options(); o.Lazy != MaxLazy || o.MaxChain != 0 {
		t.Fatalf("got %+v", o)
	}
	c = NewWithOptions(nil, Options{Lazy: 0, SecondOrder: true})
	if o := c.Options(); o.Lazy != 1 || o.SecondOrder {
		t.Fatalf("got %+v", o)
	}
}

func BenchmarkCompress(b *testing.B) {
	data := corpus.Text(1<<18, 1)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	var size int
	for i := 0; i < b.N; i++ {
		tokens := Compress(data, DefaultOptions())
		size = len(tokens)
	}
	b.ReportMetric(float64(len(data))/float64(size), "bytes/token")
}
