package kge_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graph4kg/backend/cpu"
	"github.com/born-ml/graph4kg/kge"
	"github.com/born-ml/graph4kg/random"
	"github.com/born-ml/graph4kg/tensor"
)

func toyGraph(t *testing.T) *kge.TriGraph {
	t.Helper()
	g, err := kge.NewDataset(
		[]string{"a", "b", "c", "d"},
		[]string{"r"},
		[]kge.Triple{{H: 0, R: 0, T: 1}, {H: 1, R: 0, T: 2}, {H: 2, R: 0, T: 3}, {H: 3, R: 0, T: 0}},
		nil,
		[]kge.Triple{{H: 0, R: 0, T: 2}},
	)
	require.NoError(t, err)
	return g
}

func TestTrainingStep(t *testing.T) {
	backend := cpu.New()
	g := toyGraph(t)

	m, err := kge.NewModel[float32](kge.ModelConfig{ScoreFunc: "rotate", Hidden: 4, Gamma: 6},
		g.NumEntities(), g.NumRelations(), random.New(0), backend)
	require.NoError(t, err)

	fn, err := kge.NewLoss[float32, *cpu.Backend](kge.DefaultLossConfig())
	require.NoError(t, err)

	s, err := kge.NewSampler(g.Train, g.NumEntities(), kge.SamplerConfig{BatchSize: 4, NegSampleSize: 2, NumChunks: 2})
	require.NoError(t, err)

	batch, ok := s.Next()
	require.True(t, ok)
	l, err := m.Loss(batch, fn)
	require.NoError(t, err)
	assert.Greater(t, l.Item(), float32(0))
}

func TestSaveLoadEvaluate(t *testing.T) {
	backend := cpu.NewSequential()
	g := toyGraph(t)

	m, err := kge.NewModel[float64](kge.ModelConfig{ScoreFunc: "transe", Hidden: 3, Gamma: 4},
		g.NumEntities(), g.NumRelations(), random.New(1), backend)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.safetensors")
	require.NoError(t, m.Save(path))
	loaded, err := kge.LoadModel[float64](path, backend)
	require.NoError(t, err)
	assert.Equal(t, m.EntityEmbedding().Data(), loaded.EntityEmbedding().Data())

	want, err := kge.Evaluate(context.Background(), m, g, g.Test, kge.EvalOptions{BatchSize: 1, Filtered: true})
	require.NoError(t, err)
	got, err := kge.Evaluate(context.Background(), loaded, g, g.Test, kge.EvalOptions{BatchSize: 1, Filtered: true})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 2, got.Overall.Count)
}

func TestScoreFuncs(t *testing.T) {
	backend := cpu.New()
	head, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)
	rel, err := tensor.FromSlice([]float64{0, 1}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)
	tail, err := tensor.FromSlice([]float64{1, 3}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, kge.NewTransE[float64, *cpu.Backend](5, kge.L2).Score(head, rel, tail).Data()[0], 1e-6)
	assert.InDelta(t, 6.0, kge.NewDistMult[float64, *cpu.Backend]().Score(head, rel, tail).Data()[0], 1e-12)

	_, err = kge.NewScoreFunc[float64, *cpu.Backend]("transh", 1, 1)
	assert.ErrorIs(t, err, kge.ErrUnknownScore)
	assert.Contains(t, kge.ScoreNames, "complex")
}
