package core

import (
	"math"
	"testing"
)

func TestUnitVec3IsUnitLength(t *testing.T) {
	rng := NewRNG(7)
	for i := 0; i < 1000; i++ {
		v := rng.UnitVec3()
		if l := v.Len(); math.Abs(l-1) > 1e-9 {
			t.Fatalf("sample %d has length %f", i, l)
		}
	}
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 64; i++ {
		if a.UnitVec3() != b.UnitVec3() {
			t.Fatalf("sample %d differs for identical seeds", i)
		}
	}

	a.Reseed(3)
	b.Reseed(3)
	if a.Range(-1, 1) != b.Range(-1, 1) {
		t.Fatal("reseeded generators diverged")
	}
}

func TestRangeBounds(t *testing.T) {
	rng := NewRNG(1)
	for i := 0; i < 1000; i++ {
		v := rng.Range(-0.5, 1)
		if v < -0.5 || v >= 1 {
			t.Fatalf("value %f outside [-0.5, 1)", v)
		}
	}
	if got := rng.Range(2, 2); got != 2 {
		t.Fatalf("empty range should return lo, got %f", got)
	}
	if got := rng.IntN(0); got != 0 {
		t.Fatalf("IntN(0) should return 0, got %d", got)
	}
}
