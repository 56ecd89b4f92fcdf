package loss

import (
	"math"
	"testing"

	"github.com/born-ml/graph4kg/internal/backend/cpu"
	"github.com/born-ml/graph4kg/internal/random"
	"github.com/born-ml/graph4kg/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type f64 = tensor.Tensor[float64, *cpu.CPUBackend]

func fromSlice(t *testing.T, backend *cpu.CPUBackend, data []float64, shape ...int) *f64 {
	t.Helper()
	x, err := tensor.FromSlice(data, tensor.Shape(shape), backend)
	require.NoError(t, err)
	return x
}

func mustNew(t *testing.T, cfg Config) *Function[float64, *cpu.CPUBackend] {
	t.Helper()
	f, err := New[float64, *cpu.CPUBackend](cfg)
	require.NoError(t, err)
	return f
}

func softplus(x float64) float64 { return math.Log1p(math.Exp(x)) }

func TestLogSigmoidAdversarialGolden(t *testing.T) {
	backend := cpu.New()
	f := mustNew(t, Config{
		Name:           "Logsigmoid",
		Pairwise:       false,
		Margin:         1.0,
		NegAdvSampling: true,
		NegAdvTemp:     1.0,
	})

	// np.random.seed(0); pos, neg = random((1000, 1)), random((1000, 1))
	g := random.New(0)
	pos := tensor.Rand[float64](tensor.Shape{1000, 1}, g, backend)
	neg := tensor.Rand[float64](tensor.Shape{1000, 1}, g, backend)

	got := f.Forward(pos, neg, nil).Item()
	assert.InDelta(t, 0.7385364, got, 1e-6, "logsigmoid loss not aligned")
}

func TestNew_Errors(t *testing.T) {
	_, err := New[float64, *cpu.CPUBackend](Config{Name: "focal"})
	assert.ErrorIs(t, err, ErrUnknownLoss)

	_, err = New[float64, *cpu.CPUBackend](Config{Name: "hinge", NegAdvSampling: true})
	assert.Error(t, err)
}

func TestElementLosses(t *testing.T) {
	backend := cpu.New()
	pos := fromSlice(t, backend, []float64{2}, 1)
	neg := fromSlice(t, backend, []float64{-1, 3}, 1, 2)

	cases := []struct {
		name string
		want float64
	}{
		// pos: relu(1-2)=0; neg mean: relu(1-1)=0, relu(1+3)=4 → 2
		{"hinge", (0 + 2.0) / 2},
		{"logistic", (softplus(-2) + (softplus(-1)+softplus(3))/2) / 2},
		{"softplus", (softplus(-2) + (softplus(-1)+softplus(3))/2) / 2},
		{"logsigmoid", (softplus(-2) + (softplus(-1)+softplus(3))/2) / 2},
		// bce: pos softplus(2)-2, neg labels 0 → softplus(s)
		{"bce", (softplus(2) - 2 + (softplus(-1)+softplus(3))/2) / 2},
	}
	for _, tc := range cases {
		f := mustNew(t, Config{Name: tc.name, Margin: 1})
		assert.InDelta(t, tc.want, f.Forward(pos, neg, nil).Item(), 1e-12, tc.name)
	}
}

func TestPairwise(t *testing.T) {
	backend := cpu.New()
	pos := fromSlice(t, backend, []float64{1, 2}, 2)
	neg := fromSlice(t, backend, []float64{0, 3, 2, 2}, 2, 2)

	f := mustNew(t, Config{Name: "hinge", Pairwise: true, Margin: 1})
	// diffs: 1, -2, 0, 0 → relu(1-d): 0, 3, 1, 1 → mean 1.25
	assert.InDelta(t, 1.25, f.Forward(pos, neg, nil).Item(), 1e-12)

	// Per positive means 1.5 and 1, weighted 3:1.
	weights := fromSlice(t, backend, []float64{3, 1}, 2)
	assert.InDelta(t, (3*1.5+1)/4, f.Forward(pos, neg, weights).Item(), 1e-12)

	// Uniform weights match the unweighted loss.
	uniform := fromSlice(t, backend, []float64{1, 1}, 2)
	assert.InDelta(t, 1.25, f.Forward(pos, neg, uniform).Item(), 1e-12)
}

func TestAdversarialWeighting(t *testing.T) {
	backend := cpu.New()
	pos := fromSlice(t, backend, []float64{0}, 1)
	neg := fromSlice(t, backend, []float64{0, math.Log(3)}, 1, 2)

	f := mustNew(t, Config{Name: "logistic", NegAdvSampling: true, NegAdvTemp: 1})
	// softmax weights 1/4, 3/4
	negLoss := 0.25*softplus(0) + 0.75*softplus(math.Log(3))
	want := (softplus(0) + negLoss) / 2
	assert.InDelta(t, want, f.Forward(pos, neg, nil).Item(), 1e-12)

	// Without adversarial sampling the negatives are averaged.
	plain := mustNew(t, Config{Name: "logistic"})
	want = (softplus(0) + (softplus(0)+softplus(math.Log(3)))/2) / 2
	assert.InDelta(t, want, plain.Forward(pos, neg, nil).Item(), 1e-12)
}

func TestSampleWeights(t *testing.T) {
	backend := cpu.New()
	pos := fromSlice(t, backend, []float64{0, 2}, 2)
	neg := fromSlice(t, backend, []float64{0, 0}, 2, 1)
	weights := fromSlice(t, backend, []float64{3, 1}, 2)

	f := mustNew(t, Config{Name: "hinge", Margin: 1})
	// pos losses 1, 0 → (3·1 + 0)/4; neg losses 1, 1 → 1
	assert.InDelta(t, (0.75+1)/2, f.Forward(pos, neg, weights).Item(), 1e-12)

	bad := fromSlice(t, backend, []float64{1, 1, 1}, 3)
	assert.Panics(t, func() { f.Forward(pos, neg, bad) })
}

func TestChunkedShapes(t *testing.T) {
	backend := cpu.New()
	g := random.New(9)
	pos := tensor.Rand[float64](tensor.Shape{2, 3}, g, backend)
	neg := tensor.Rand[float64](tensor.Shape{2, 3, 4}, g, backend)

	f := mustNew(t, DefaultConfig())
	loss := f.Forward(pos, neg, nil)
	assert.Equal(t, 1, loss.NumElements())
	assert.Greater(t, loss.Item(), 0.0)
}
