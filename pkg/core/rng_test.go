package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(7), NewRNG(7)
	for i := 0; i < 100; i++ {
		ax, ay := a.Cell(13, 5)
		bx, by := b.Cell(13, 5)
		if ax != bx || ay != by {
			t.Fatalf("draw %d diverged: (%d,%d) vs (%d,%d)", i, ax, ay, bx, by)
		}
		if ax < 0 || ax >= 13 || ay < 0 || ay >= 5 {
			t.Fatalf("draw %d out of range: (%d,%d)", i, ax, ay)
		}
	}
	if NewRNG(1).IntN(0) != 0 || NewRNG(1).IntN(-3) != 0 {
		t.Fatal("non-positive bound should yield 0")
	}
}
