// Package config loads the YAML configuration of a KGE run.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/born-ml/graph4kg/internal/loss"
	"github.com/born-ml/graph4kg/internal/model"
	"github.com/born-ml/graph4kg/internal/sampler"
	"github.com/born-ml/graph4kg/internal/score"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding file values.
const (
	EnvDataPath = "KGE_DATA_PATH"
	EnvSavePath = "KGE_SAVE_PATH"
)

// Config is the full configuration of a run.
type Config struct {
	DataPath string `yaml:"data_path"`
	SavePath string `yaml:"save_path"`
	Seed     uint32 `yaml:"seed"`
	// DType is "float32" or "float64".
	DType string `yaml:"dtype"`

	Model   model.Config   `yaml:"model"`
	Loss    loss.Config    `yaml:"loss"`
	Sampler sampler.Config `yaml:"sampler"`
	Eval    EvalConfig     `yaml:"eval"`
}

// EvalConfig controls link prediction evaluation.
type EvalConfig struct {
	BatchSize int  `yaml:"batch_size"`
	Filtered  bool `yaml:"filtered"`
}

// DefaultConfig returns the defaults applied before a file is decoded.
func DefaultConfig() *Config {
	return &Config{
		DataPath: "data",
		SavePath: "output",
		DType:    "float32",
		Model: model.Config{
			ScoreFunc: "transe",
			Hidden:    200,
			Gamma:     12.0,
		},
		Loss: loss.DefaultConfig(),
		Sampler: sampler.Config{
			BatchSize:     1000,
			NegSampleSize: 256,
			NumChunks:     10,
		},
		Eval: EvalConfig{
			BatchSize: 16,
			Filtered:  true,
		},
	}
}

// CheckpointPath returns the checkpoint file inside SavePath.
func (c *Config) CheckpointPath() string {
	return filepath.Join(c.SavePath, "model.safetensors")
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode rejects unknown fields and multiple documents.
func decode(data []byte, out *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		// An empty file has no document.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	var extra any
	if err := dec.Decode(&extra); err == nil {
		return fmt.Errorf("multiple YAML documents are not supported")
	} else if !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvDataPath); v != "" {
		c.DataPath = v
	}
	if v := os.Getenv(EnvSavePath); v != "" {
		c.SavePath = v
	}
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if c.DataPath == "" {
		err = multierr.Append(err, errors.New("data_path must be set"))
	}
	switch c.DType {
	case "float32", "float64":
	default:
		err = multierr.Append(err, fmt.Errorf("dtype must be float32 or float64, got %q", c.DType))
	}
	if !validScore(c.Model.ScoreFunc) {
		err = multierr.Append(err, fmt.Errorf("%w: %q (valid: %v)", score.ErrUnknownScore, c.Model.ScoreFunc, score.Names))
	}
	err = multierr.Append(err, c.Model.Validate())
	err = multierr.Append(err, c.Sampler.Validate())
	err = multierr.Append(err, c.Loss.Validate())
	if c.Eval.BatchSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("eval.batch_size must be positive, got %d", c.Eval.BatchSize))
	}
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func validScore(name string) bool {
	for _, n := range score.Names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
