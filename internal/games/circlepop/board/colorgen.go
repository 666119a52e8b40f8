package board

import "math/rand"

// ColorGenerator produces color indices for initial population and refill.
// Next must return a value in [0, numColors).
type ColorGenerator interface {
	Next(numColors int) int
}

// GeneratorFunc adapts a plain function to ColorGenerator.
type GeneratorFunc func(numColors int) int

// Next calls f.
func (f GeneratorFunc) Next(numColors int) int {
	return f(numColors)
}

// RandGenerator draws uniformly distributed colors from a seeded source.
type RandGenerator struct {
	rng *rand.Rand
}

// NewRandGenerator creates a generator seeded with seed.
func NewRandGenerator(seed int64) *RandGenerator {
	return &RandGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a random color in [0, numColors).
func (r *RandGenerator) Next(numColors int) int {
	if numColors <= 0 {
		return 0
	}
	return r.rng.Intn(numColors)
}

// SequenceGenerator replays a fixed list of values, wrapping around at the end.
// Values are reduced modulo numColors so the result is always in range.
type SequenceGenerator struct {
	values []int
	pos    int
}

// NewSequenceGenerator creates a generator cycling through values.
// With no values it always returns 0.
func NewSequenceGenerator(values ...int) *SequenceGenerator {
	return &SequenceGenerator{values: values}
}

// Next returns the next value of the sequence.
func (s *SequenceGenerator) Next(numColors int) int {
	if len(s.values) == 0 || numColors <= 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	v %= numColors
	if v < 0 {
		v += numColors
	}
	return v
}

// Drawn returns how many values have been produced.
func (s *SequenceGenerator) Drawn() int {
	return s.pos
}

// nextColor draws from gen and clamps a misbehaving generator into range,
// keeping the grid invariant intact.
func nextColor(gen ColorGenerator, numColors int) int {
	c := gen.Next(numColors)
	if c < 0 || c >= numColors {
		c %= numColors
		if c < 0 {
			c += numColors
		}
	}
	return c
}
