package noise

import (
	"math"
	"testing"
)

func TestNoise2DDeterminism(t *testing.T) {
	a := NewField(12345)
	b := NewField(12345)
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.37
		y := float64(i) * 0.53
		if a.Noise2D(x, y) != b.Noise2D(x, y) {
			t.Fatalf("Noise2D not deterministic at (%f, %f)", x, y)
		}
	}
}

func TestNoise2DBounds(t *testing.T) {
	f := NewField(42)
	for i := 0; i < 10000; i++ {
		x := float64(i)*0.113 - 560
		y := float64(i)*0.071 - 350
		v := f.Noise2D(x, y)
		if v < -1.01 || v > 1.01 {
			t.Errorf("Noise2D(%f, %f) = %f, out of bounds", x, y, v)
		}
	}
}

func TestFBMBoundsAllOctaves(t *testing.T) {
	f := NewField(7)
	for oct := 1; oct <= 8; oct++ {
		for i := 0; i < 10000; i++ {
			x := float64(i)*0.093 - 460
			y := float64(i)*0.067 - 330
			v := f.FBM(x, y, oct, 2, 0.5)
			if v < -1.01 || v > 1.01 {
				t.Errorf("FBM octaves=%d at (%f, %f) = %f, out of bounds", oct, x, y, v)
			}
		}
	}
}

func TestFBMSmoothness(t *testing.T) {
	f := NewField(77)
	prev := f.FBM(0, 0, 4, 2, 0.5)
	maxStep := 0.0
	for i := 1; i < 1000; i++ {
		v := f.FBM(float64(i)*0.01, 0, 4, 2, 0.5)
		if d := math.Abs(v - prev); d > maxStep {
			maxStep = d
		}
		prev = v
	}
	if maxStep > 0.5 {
		t.Errorf("max step between adjacent FBM samples = %f, expected smooth field", maxStep)
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := NewField(1)
	b := NewField(2)
	same := 0
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.5
		y := float64(i) * 0.3
		if a.Noise2D(x, y) == b.Noise2D(x, y) {
			same++
		}
	}
	if same > 30 {
		t.Errorf("different seeds produced %d/100 identical samples", same)
	}
}
