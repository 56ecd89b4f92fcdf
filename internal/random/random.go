// Package random provides a deterministic generator whose stream matches
// NumPy's legacy global generator (np.random.seed + np.random.random).
//
// Reference scores recorded with NumPy can therefore be reproduced exactly:
// drawing the same shapes in the same order yields bit-identical inputs.
package random

import (
	"gonum.org/v1/gonum/mathext/prng"
)

// Generator is a Mersenne Twister (MT19937) seeded with init_genrand.
// A Generator is not safe for concurrent use.
type Generator struct {
	mt *prng.MT19937
}

// New returns a generator equivalent to np.random.seed(seed).
func New(seed uint32) *Generator {
	mt := prng.NewMT19937()
	mt.Seed(uint64(seed))
	return &Generator{mt: mt}
}

// Uint32 returns the next raw 32-bit output.
func (g *Generator) Uint32() uint32 {
	return g.mt.Uint32()
}

// Float64 returns a uniform double in [0, 1) built from two 32-bit draws,
// the same 53-bit construction as NumPy's random_sample.
func (g *Generator) Float64() float64 {
	a := g.mt.Uint32() >> 5
	b := g.mt.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) / 9007199254740992.0
}

// Intn returns a uniform int in [0, n). Panics if n <= 0.
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		panic("random: Intn argument must be positive")
	}
	// Rejection sampling on the 32-bit stream keeps the draw unbiased.
	bound := uint64(n)
	if bound <= 1<<32 {
		limit := (1 << 32) - (1<<32)%bound
		for {
			v := uint64(g.mt.Uint32())
			if v < limit {
				return int(v % bound)
			}
		}
	}
	return int(g.mt.Uint64() % bound)
}

// Fill overwrites dst with consecutive Float64 draws.
func (g *Generator) Fill(dst []float64) {
	for i := range dst {
		dst[i] = g.Float64()
	}
}
