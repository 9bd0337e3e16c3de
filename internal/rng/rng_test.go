package rng

import "testing"

func TestStreamDeterminism(t *testing.T) {
	a := New(12345)
	b := New(12345)
	for i := 0; i < 1000; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("streams diverged at draw %d", i)
		}
	}
}

func TestNextRange(t *testing.T) {
	s := New(42)
	for i := 0; i < 10000; i++ {
		v := s.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("Next() = %f, want [0,1)", v)
		}
	}
}

func TestNextIntInclusive(t *testing.T) {
	s := New(7)
	seen := make(map[int]bool)
	for i := 0; i < 10000; i++ {
		v := s.NextInt(2, 5)
		if v < 2 || v > 5 {
			t.Fatalf("NextInt(2,5) = %d", v)
		}
		seen[v] = true
	}
	for want := 2; want <= 5; want++ {
		if !seen[want] {
			t.Errorf("NextInt(2,5) never produced %d in 10000 draws", want)
		}
	}
}

func TestReset(t *testing.T) {
	s := New(999)
	first := make([]float64, 10)
	for i := range first {
		first[i] = s.Next()
	}
	s.Reset()
	for i := range first {
		if got := s.Next(); got != first[i] {
			t.Fatalf("draw %d after Reset = %f, want %f", i, got, first[i])
		}
	}
}

func TestZeroSeedDegenerates(t *testing.T) {
	// Known edge case: seed 0 pins the stream at 0.
	s := New(0)
	for i := 0; i < 10; i++ {
		if v := s.Next(); v != 0 {
			t.Fatalf("zero seed produced %f", v)
		}
	}
}
