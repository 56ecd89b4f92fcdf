package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat64_MatchesNumPySeedZero(t *testing.T) {
	// np.random.seed(0); np.random.random(5)
	want := []float64{
		0.5488135039273248,
		0.7151893663724195,
		0.6027633760716439,
		0.5448831829968969,
		0.4236547993389047,
	}

	g := New(0)
	for i, w := range want {
		assert.Equal(t, w, g.Float64(), "draw %d", i)
	}
}

func TestFill_ContinuesStream(t *testing.T) {
	a := New(42)
	b := New(42)

	buf := make([]float64, 8)
	a.Fill(buf)
	for i := range buf {
		assert.Equal(t, b.Float64(), buf[i])
	}
}

func TestFloat64_Range(t *testing.T) {
	g := New(7)
	for range 10000 {
		v := g.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestIntn(t *testing.T) {
	g := New(1)
	counts := make([]int, 5)
	for range 5000 {
		v := g.Intn(5)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 5)
		counts[v]++
	}
	for i, c := range counts {
		assert.Greater(t, c, 800, "bucket %d under-sampled", i)
	}

	assert.Panics(t, func() { g.Intn(0) })
}

func TestSeedsDiffer(t *testing.T) {
	assert.NotEqual(t, New(0).Float64(), New(1).Float64())
}
