// Package noise provides seeded 2D gradient noise with fractal summation.
// A Field is built once from a rng.Stream and immutable thereafter, so the
// same seed yields the same terrain on every run.
package noise

import (
	"math"

	"github.com/talgya/tidewood/internal/rng"
)

// Default fractal parameters. Callers override per use.
const (
	DefaultOctaves     = 4
	DefaultLacunarity  = 2.0
	DefaultPersistence = 0.5
)

// Field is a 2D smooth pseudo-random scalar field.
type Field struct {
	perm [512]int       // permutation table, doubled to skip wrap checks
	grad [256][2]float64 // unit gradient vectors
}

// NewField builds a field from a seed: Fisher-Yates shuffle of 0..255 via
// the stream, then 256 unit gradients from uniformly sampled angles.
func NewField(seed int64) *Field {
	s := rng.New(seed)
	f := &Field{}

	var base [256]int
	for i := range base {
		base[i] = i
	}
	for i := 255; i > 0; i-- {
		j := s.NextInt(0, i)
		base[i], base[j] = base[j], base[i]
	}
	for i := 0; i < 256; i++ {
		f.perm[i] = base[i]
		f.perm[i+256] = base[i]
	}

	for i := range f.grad {
		angle := s.Next() * 2 * math.Pi
		f.grad[i][0] = math.Cos(angle)
		f.grad[i][1] = math.Sin(angle)
	}
	return f
}

// fade is the quintic smoothing curve 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// dot projects the local offset onto the corner gradient chosen by hash.
func (f *Field) dot(hash int, x, y float64) float64 {
	g := f.grad[hash&255]
	return g[0]*x + g[1]*y
}

// Noise2D evaluates the field at (x, y). Output is roughly in [-1, 1],
// not normalized.
func (f *Field) Noise2D(x, y float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	xf := x - math.Floor(x)
	yf := y - math.Floor(y)

	u := fade(xf)
	v := fade(yf)

	aa := f.perm[f.perm[xi]+yi]
	ab := f.perm[f.perm[xi]+yi+1]
	ba := f.perm[f.perm[xi+1]+yi]
	bb := f.perm[f.perm[xi+1]+yi+1]

	x1 := lerp(u, f.dot(aa, xf, yf), f.dot(ba, xf-1, yf))
	x2 := lerp(u, f.dot(ab, xf, yf-1), f.dot(bb, xf-1, yf-1))
	return lerp(v, x1, x2)
}

// FBM sums octaves of Noise2D, scaling frequency by lacunarity and
// amplitude by persistence per layer. The result is divided by the
// amplitude sum so the range stays within [-1, 1] for any octave count.
func (f *Field) FBM(x, y float64, octaves int, lacunarity, persistence float64) float64 {
	total := 0.0
	frequency := 1.0
	amplitude := 1.0
	maxAmplitude := 0.0

	for i := 0; i < octaves; i++ {
		total += f.Noise2D(x*frequency, y*frequency) * amplitude
		maxAmplitude += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if maxAmplitude == 0 {
		return 0
	}
	return total / maxAmplitude
}
