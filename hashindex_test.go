package lz77

import "testing"

func chainPositions(h *hashIndex, key uint32, pos, maxChain int) []int {
	var got []int
	it := h.chain(key, pos, maxChain)
	for q := it.next(); q >= 0; q = it.next() {
		got = append(got, q)
	}
	return got
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestHashChainOrder(t *testing.T) {
	h := new(hashIndex)
	const a, b = 1, 2
	for pos := 0; pos < 10; pos++ {
		if pos%3 == 0 {
			h.insert(a, pos)
		} else {
			h.insert(b, pos)
		}
	}

	if got, want := chainPositions(h, a, 10, 0), []int{9, 6, 3, 0}; !equalInts(got, want) {
		t.Fatalf("chain = %v, want %v", got, want)
	}
	// Positions at or after pos were indexed before a rewind.
	if got, want := chainPositions(h, a, 6, 0), []int{3, 0}; !equalInts(got, want) {
		t.Fatalf("chain from 6 = %v, want %v", got, want)
	}
	if got, want := chainPositions(h, a, 10, 2), []int{9, 6}; !equalInts(got, want) {
		t.Fatalf("limited chain = %v, want %v", got, want)
	}
}

func TestHashInsertSkipsReplayed(t *testing.T) {
	h := new(hashIndex)
	for pos := 0; pos < 5; pos++ {
		h.insert(7, pos)
	}
	// A replay offers the same positions again.
	for pos := 2; pos < 5; pos++ {
		h.insert(7, pos)
	}
	if got, want := chainPositions(h, 7, 5, 0), []int{4, 3, 2, 1, 0}; !equalInts(got, want) {
		t.Fatalf("chain = %v, want %v", got, want)
	}
}

func TestHashChainDistanceLimit(t *testing.T) {
	h := new(hashIndex)
	const a, b = 3, 4
	last := MaxDistance + 100
	for pos := 0; pos <= last; pos++ {
		if pos == 0 || pos == 200 || pos == last {
			h.insert(a, pos)
		} else {
			h.insert(b, pos)
		}
	}
	got := chainPositions(h, a, last+1, 0)
	if want := []int{last, 200}; !equalInts(got, want) {
		t.Fatalf("chain = %v, want %v", got, want)
	}
}
