// Package rng provides the deterministic random stream that drives all
// world generation. Park-Miller minimal standard LCG: same seed, same
// sequence, forever.
package rng

// Modulus and multiplier of the Park-Miller generator.
const (
	multiplier = 16807
	modulus    = 2147483647 // 2^31 - 1
)

// Stream is a reproducible random number stream. Two streams built from
// the same seed produce identical draws. Not safe for concurrent use.
type Stream struct {
	seed  int64
	state int64
}

// New creates a stream from a seed. A seed of 0 is degenerate: the
// stream stays at 0 forever. Kept as-is; callers own seed hygiene.
func New(seed int64) *Stream {
	s := seed % modulus
	if s < 0 {
		s += modulus
	}
	return &Stream{seed: s, state: s}
}

// Next advances the stream and returns a float64 in [0, 1).
func (s *Stream) Next() float64 {
	s.state = (multiplier * s.state) % modulus
	return float64(s.state) / modulus
}

// NextInt returns a uniform integer in [min, max] inclusive.
func (s *Stream) NextInt(min, max int) int {
	return int(s.Next()*float64(max-min+1)) + min
}

// Reset rewinds the stream to its original seed.
func (s *Stream) Reset() {
	s.state = s.seed
}

// Seed returns the seed the stream was built from.
func (s *Stream) Seed() int64 {
	return s.seed
}
