package lz77

import "testing"

func TestWindowBack(t *testing.T) {
	w := new(window)
	for i := 0; i < windowSize+10; i++ {
		if pos := w.absorb(byte(i)); pos != i {
			t.Fatalf("absorb returned %d, want %d", pos, i)
		}
	}
	if w.valid() != windowSize {
		t.Fatalf("valid = %d, want %d", w.valid(), windowSize)
	}
	for _, d := range []int{0, 1, 255, MaxDistance} {
		want := byte(windowSize + 9 - d)
		if got := w.back(d); got != want {
			t.Fatalf("back(%d) = %d, want %d", d, got, want)
		}
	}
}

func TestWindowValidGrows(t *testing.T) {
	w := new(window)
	w.absorb('x')
	w.absorb('y')
	if w.valid() != 2 {
		t.Fatalf("valid = %d, want 2", w.valid())
	}
	w.reset()
	if w.valid() != 0 {
		t.Fatalf("valid after reset = %d", w.valid())
	}
}
