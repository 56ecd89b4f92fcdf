package model

import (
	"fmt"
	"strconv"

	"github.com/born-ml/graph4kg/internal/score"
	"github.com/born-ml/graph4kg/internal/serialization"
	"github.com/born-ml/graph4kg/internal/tensor"
)

// Checkpoint tensor names and metadata keys.
const (
	EntityEmbeddingKey   = "entity_embedding"
	RelationEmbeddingKey = "relation_embedding"

	metaScoreFunc = "score_func"
	metaHidden    = "hidden_dim"
	metaGamma     = "gamma"
)

// Save writes the embedding tables and configuration to a SafeTensors file.
func (m *KGEModel[T, B]) Save(path string) error {
	metadata := map[string]string{
		metaScoreFunc: m.score.Name(),
		metaHidden:    strconv.Itoa(m.cfg.Hidden),
		metaGamma:     strconv.FormatFloat(m.cfg.Gamma, 'g', -1, 64),
	}
	err := serialization.WriteSafeTensors(path, map[string]*tensor.RawTensor{
		EntityEmbeddingKey:   m.entity.Raw(),
		RelationEmbeddingKey: m.relation.Raw(),
	}, metadata)
	if err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

// Load restores a model saved with Save. The stored dtype must match T.
func Load[T tensor.Float, B tensor.Backend](path string, b B) (*KGEModel[T, B], error) {
	file, err := serialization.ReadSafeTensors(path, b.Device())
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}

	cfg, err := configFromMetadata(file.Metadata())
	if err != nil {
		return nil, fmt.Errorf("load checkpoint %s: %w", path, err)
	}
	fn, err := score.New[T, B](cfg.ScoreFunc, cfg.Gamma, cfg.EmbeddingInit())
	if err != nil {
		return nil, fmt.Errorf("load checkpoint %s: %w", path, err)
	}

	entity, err := table[T](file, EntityEmbeddingKey, fn.EntityDim(cfg.Hidden), b)
	if err != nil {
		return nil, fmt.Errorf("load checkpoint %s: %w", path, err)
	}
	relation, err := table[T](file, RelationEmbeddingKey, fn.RelationDim(cfg.Hidden), b)
	if err != nil {
		return nil, fmt.Errorf("load checkpoint %s: %w", path, err)
	}

	return &KGEModel[T, B]{cfg: cfg, score: fn, entity: entity, relation: relation, backend: b}, nil
}

func configFromMetadata(meta map[string]string) (Config, error) {
	cfg := Config{ScoreFunc: meta[metaScoreFunc]}
	if cfg.ScoreFunc == "" {
		return Config{}, fmt.Errorf("missing %s metadata", metaScoreFunc)
	}

	hidden, err := strconv.Atoi(meta[metaHidden])
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s metadata %q", metaHidden, meta[metaHidden])
	}
	gamma, err := strconv.ParseFloat(meta[metaGamma], 64)
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s metadata %q", metaGamma, meta[metaGamma])
	}
	cfg.Hidden, cfg.Gamma = hidden, gamma
	return cfg, cfg.Validate()
}

func table[T tensor.Float, B tensor.Backend](file *serialization.File, name string, dim int, b B) (*tensor.Tensor[T, B], error) {
	raw, err := file.Tensor(name)
	if err != nil {
		return nil, err
	}
	if want := tensor.DataTypeOf[T](); raw.DType() != want {
		return nil, fmt.Errorf("%s: dtype %s, want %s", name, raw.DType(), want)
	}
	shape := raw.Shape()
	if len(shape) != 2 || shape[1] != dim {
		return nil, fmt.Errorf("%s: shape %v, want [n, %d]", name, shape, dim)
	}
	return tensor.New[T, B](raw, b), nil
}
