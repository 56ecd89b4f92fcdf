package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/graph4kg/internal/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
data_path: /data/FB15k
seed: 7
dtype: float64
model:
  score_func: RotatE
  hidden_dim: 100
loss:
  name: logsigmoid
  neg_adv_sampling: true
sampler:
  batch_size: 512
  num_chunks: 8
eval:
  filtered: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/FB15k", cfg.DataPath)
	assert.Equal(t, uint32(7), cfg.Seed)
	assert.Equal(t, "float64", cfg.DType)
	assert.Equal(t, "RotatE", cfg.Model.ScoreFunc)
	assert.Equal(t, 100, cfg.Model.Hidden)
	assert.Equal(t, 12.0, cfg.Model.Gamma, "unset fields keep defaults")
	assert.True(t, cfg.Loss.NegAdvSampling)
	assert.Equal(t, 1.0, cfg.Loss.NegAdvTemp)
	assert.Equal(t, 512, cfg.Sampler.BatchSize)
	assert.Equal(t, 256, cfg.Sampler.NegSampleSize)
	assert.False(t, cfg.Eval.Filtered)
	assert.Equal(t, 16, cfg.Eval.BatchSize)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvDataPath, "/env/data")
	t.Setenv(EnvSavePath, "/env/out")

	cfg, err := Load(writeConfig(t, "data_path: /file/data\n"))
	require.NoError(t, err)
	assert.Equal(t, "/env/data", cfg.DataPath)
	assert.Equal(t, filepath.Join("/env/out", "model.safetensors"), cfg.CheckpointPath())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "unknown_field: 1\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "seed: 1\n---\nseed: 2\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "model: [1, 2]\n"))
	assert.Error(t, err)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DType = "int8"
	cfg.Model.ScoreFunc = "TransH"
	cfg.Sampler.NumChunks = 7
	cfg.Loss.Name = "focal"
	cfg.Eval.BatchSize = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, score.ErrUnknownScore)
	for _, want := range []string{"dtype", "TransH", "divisible", "focal", "eval.batch_size"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model.ScoreFunc = "complex"
	cfg.Seed = 99

	path := filepath.Join(t.TempDir(), "nested", "kge.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
