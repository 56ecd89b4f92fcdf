package score

import (
	"testing"

	"github.com/born-ml/graph4kg/internal/backend/cpu"
	"github.com/born-ml/graph4kg/internal/random"
	"github.com/born-ml/graph4kg/internal/tensor"
	"github.com/stretchr/testify/assert"
)

// Reference values were recorded with NumPy inputs drawn after
// np.random.seed(0), in the order the tensors are created below.

type f64 = tensor.Tensor[float64, *cpu.CPUBackend]

func draw(g *random.Generator, backend *cpu.CPUBackend, shape ...int) *f64 {
	return tensor.Rand[float64](tensor.Shape(shape), g, backend)
}

func TestTransE_PosScoreGolden(t *testing.T) {
	backend := cpu.New()
	fn := NewTransE[float64, *cpu.CPUBackend](19.9, L2)

	g := random.New(0)
	h := draw(g, backend, 1000, 400)
	tl := draw(g, backend, 1000, 400)
	r := draw(g, backend, 1000, 400)

	got := fn.Score(h, r, tl).Sum().Item()
	assert.InDelta(t, 5781.9024776, got, 5e-3, "pos_score not aligned")
}

func TestTransE_NegScoreGolden(t *testing.T) {
	backend := cpu.New()
	fn := NewTransE[float64, *cpu.CPUBackend](19.9, L2)

	g := random.New(0)
	h := draw(g, backend, 1000, 400).Unsqueeze(0)
	_ = draw(g, backend, 1000, 400).Unsqueeze(0) // tails advance the stream
	r := draw(g, backend, 1000, 400).Unsqueeze(0)
	neg := draw(g, backend, 1000, 400).Unsqueeze(0)

	scores := fn.NegScore(h, r, neg, false)
	assert.Equal(t, tensor.Shape{1, 1000, 1000}, scores.Shape())
	assert.InDelta(t, 5760053.6210946, scores.Sum().Item(), 0.5, "neg_score not aligned")
}

func TestRotatE_PosScoreGolden(t *testing.T) {
	backend := cpu.New()
	fn := NewRotatE[float64, *cpu.CPUBackend](12.0, 14.0/200)

	g := random.New(0)
	h := draw(g, backend, 10, 400)
	tl := draw(g, backend, 10, 400)
	r := draw(g, backend, 10, 200)

	got := fn.Score(h, r, tl).Sum().Item()
	assert.InDelta(t, -1957.4883, got, 1e-4, "pos_score not aligned")
}

func TestRotatE_NegScoreGolden(t *testing.T) {
	backend := cpu.New()
	fn := NewRotatE[float64, *cpu.CPUBackend](12.0, 14.0/200)

	g := random.New(0)
	h := draw(g, backend, 10, 400).Reshape(2, 5, 400)
	tl := draw(g, backend, 10, 400).Reshape(2, 5, 400)
	r := draw(g, backend, 10, 200).Reshape(2, 5, 200)

	scores := fn.NegScore(h, r, tl, false)
	assert.Equal(t, tensor.Shape{2, 5, 5}, scores.Shape())
	assert.InDelta(t, -9693.6280, scores.Sum().Item(), 1e-4, "neg_score not aligned")
}
