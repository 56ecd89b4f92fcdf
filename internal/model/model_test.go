package model

import (
	"path/filepath"
	"testing"

	"github.com/born-ml/graph4kg/internal/backend/cpu"
	"github.com/born-ml/graph4kg/internal/dataset"
	"github.com/born-ml/graph4kg/internal/loss"
	"github.com/born-ml/graph4kg/internal/random"
	"github.com/born-ml/graph4kg/internal/sampler"
	"github.com/born-ml/graph4kg/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testModel = KGEModel[float64, *cpu.CPUBackend]

func newModel(t *testing.T, scoreFunc string) *testModel {
	t.Helper()
	cfg := Config{ScoreFunc: scoreFunc, Hidden: 4, Gamma: 6}
	m, err := New[float64](cfg, 10, 3, random.New(0), cpu.New())
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	m := newModel(t, "rotate")

	assert.Equal(t, tensor.Shape{10, 8}, m.EntityEmbedding().Shape())
	assert.Equal(t, tensor.Shape{3, 4}, m.RelationEmbedding().Shape())
	assert.Equal(t, 10, m.NumEntities())
	assert.Equal(t, 3, m.NumRelations())
	assert.Equal(t, "rotate", m.ScoreFunc().Name())

	bound := m.Config().EmbeddingInit()
	assert.InDelta(t, 2.0, bound, 1e-12)
	for _, v := range m.EntityEmbedding().Data() {
		require.GreaterOrEqual(t, v, -bound)
		require.Less(t, v, bound)
	}
}

func TestNew_Errors(t *testing.T) {
	backend := cpu.New()
	src := random.New(0)

	_, err := New[float64](Config{ScoreFunc: "transe", Hidden: 0, Gamma: 1}, 2, 1, src, backend)
	assert.Error(t, err)
	_, err = New[float64](Config{ScoreFunc: "transe", Hidden: 2, Gamma: 1}, 0, 1, src, backend)
	assert.Error(t, err)
	_, err = New[float64](Config{ScoreFunc: "nope", Hidden: 2, Gamma: 1}, 2, 1, src, backend)
	assert.Error(t, err)
}

func testBatch(mode sampler.Mode) sampler.Batch {
	return sampler.Batch{
		Heads:     []int64{0, 1, 2, 3},
		Relations: []int64{0, 1, 2, 0},
		Tails:     []int64{4, 5, 6, 7},
		Negatives: []int64{8, 9, 0, 1, 2, 3},
		Mode:      mode,
		NumChunks: 2,
	}
}

func TestForward_Shapes(t *testing.T) {
	for _, name := range []string{"transe", "rotate", "distmult", "complex"} {
		m := newModel(t, name)
		for _, mode := range []sampler.Mode{sampler.TailMode, sampler.HeadMode} {
			pos, neg, err := m.Forward(testBatch(mode))
			require.NoError(t, err, name)
			assert.Equal(t, tensor.Shape{4}, pos.Shape(), name)
			assert.Equal(t, tensor.Shape{2, 2, 3}, neg.Shape(), name)
		}
	}
}

// A negative equal to the true entity must score like the positive.
func TestForward_NegativeMatchesPositive(t *testing.T) {
	m := newModel(t, "transe")
	batch := sampler.Batch{
		Heads:     []int64{0, 1},
		Relations: []int64{0, 1},
		Tails:     []int64{2, 3},
		Negatives: []int64{2, 0},
		NumChunks: 1,
	}

	pos, neg, err := m.Forward(batch)
	require.NoError(t, err)
	assert.InDelta(t, pos.At(0), neg.At(0, 0, 0), 1e-9)

	batch.Mode = sampler.HeadMode
	batch.Negatives = []int64{5, 1}
	pos, neg, err = m.Forward(batch)
	require.NoError(t, err)
	assert.InDelta(t, pos.At(1), neg.At(0, 1, 1), 1e-9)
}

func TestForward_BadBatch(t *testing.T) {
	m := newModel(t, "transe")
	batch := testBatch(sampler.TailMode)
	batch.NumChunks = 3

	_, _, err := m.Forward(batch)
	assert.Error(t, err)
}

func TestLoss(t *testing.T) {
	m := newModel(t, "rotate")
	fn, err := loss.New[float64, *cpu.CPUBackend](loss.DefaultConfig())
	require.NoError(t, err)

	l, err := m.Loss(testBatch(sampler.TailMode), fn)
	require.NoError(t, err)
	assert.Equal(t, 1, l.NumElements())
	assert.Greater(t, l.Item(), 0.0)
}

func TestScoreAll(t *testing.T) {
	m := newModel(t, "distmult")
	triples := []dataset.Triple{{H: 0, R: 1, T: 2}, {H: 3, R: 0, T: 4}}

	tails, err := m.ScoreAll(triples, false)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 10}, tails.Shape())

	pos, _, err := m.Forward(sampler.Batch{
		Heads: []int64{0, 3}, Relations: []int64{1, 0}, Tails: []int64{2, 4},
		Negatives: []int64{0}, NumChunks: 1,
	})
	require.NoError(t, err)
	assert.InDelta(t, pos.At(0), tails.At(0, 2), 1e-9)
	assert.InDelta(t, pos.At(1), tails.At(1, 4), 1e-9)

	heads, err := m.ScoreAll(triples, true)
	require.NoError(t, err)
	assert.InDelta(t, pos.At(0), heads.At(0, 0), 1e-9)
	assert.InDelta(t, pos.At(1), heads.At(1, 3), 1e-9)

	_, err = m.ScoreAll(nil, false)
	assert.Error(t, err)
}

func TestCheckpointRoundTrip(t *testing.T) {
	m := newModel(t, "complex")
	path := filepath.Join(t.TempDir(), "model.safetensors")
	require.NoError(t, m.Save(path))

	loaded, err := Load[float64](path, cpu.New())
	require.NoError(t, err)

	assert.Equal(t, m.Config().Hidden, loaded.Config().Hidden)
	assert.Equal(t, m.Config().Gamma, loaded.Config().Gamma)
	assert.Equal(t, "complex", loaded.ScoreFunc().Name())
	assert.Equal(t, m.EntityEmbedding().Data(), loaded.EntityEmbedding().Data())
	assert.Equal(t, m.RelationEmbedding().Data(), loaded.RelationEmbedding().Data())

	// Stored float64 tables cannot be loaded as float32.
	_, err = Load[float32](path, cpu.New())
	assert.Error(t, err)

	_, err = Load[float64](filepath.Join(t.TempDir(), "missing.safetensors"), cpu.New())
	assert.Error(t, err)
}
