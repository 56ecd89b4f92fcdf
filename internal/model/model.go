// Package model holds the embedding tables of a KGE model and wires them to
// a score function, a loss and SafeTensors checkpoints.
package model

import (
	"fmt"

	"github.com/born-ml/graph4kg/internal/dataset"
	"github.com/born-ml/graph4kg/internal/loss"
	"github.com/born-ml/graph4kg/internal/sampler"
	"github.com/born-ml/graph4kg/internal/score"
	"github.com/born-ml/graph4kg/internal/tensor"
)

// initEpsilon widens the initialisation range beyond gamma.
const initEpsilon = 2.0

// Config describes the model architecture.
type Config struct {
	ScoreFunc string  `yaml:"score_func"`
	Hidden    int     `yaml:"hidden_dim"`
	Gamma     float64 `yaml:"gamma"`
}

// EmbeddingInit returns the half width of the uniform initialisation,
// (gamma + 2) / hidden. RotatE also uses it to map relations to phases.
func (c Config) EmbeddingInit() float64 {
	return (c.Gamma + initEpsilon) / float64(c.Hidden)
}

// Validate checks the architecture parameters.
func (c Config) Validate() error {
	if c.Hidden <= 0 {
		return fmt.Errorf("model: hidden_dim must be positive, got %d", c.Hidden)
	}
	if c.Gamma < 0 {
		return fmt.Errorf("model: gamma must be non-negative, got %v", c.Gamma)
	}
	return nil
}

// KGEModel is a knowledge-graph embedding model.
type KGEModel[T tensor.Float, B tensor.Backend] struct {
	cfg      Config
	score    score.Func[T, B]
	entity   *tensor.Tensor[T, B] // [numEntities, entityDim]
	relation *tensor.Tensor[T, B] // [numRelations, relationDim]
	backend  B
}

// New creates a model with embeddings drawn uniformly from
// [-EmbeddingInit, EmbeddingInit): entity table first, then relations.
func New[T tensor.Float, B tensor.Backend](cfg Config, numEntities, numRelations int, src tensor.Source, b B) (*KGEModel[T, B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if numEntities <= 0 || numRelations <= 0 {
		return nil, fmt.Errorf("model: need at least one entity and relation, got %d and %d", numEntities, numRelations)
	}
	fn, err := score.New[T, B](cfg.ScoreFunc, cfg.Gamma, cfg.EmbeddingInit())
	if err != nil {
		return nil, err
	}

	initRange := cfg.EmbeddingInit()
	entity := tensor.Uniform[T, B](tensor.Shape{numEntities, fn.EntityDim(cfg.Hidden)}, -initRange, initRange, src, b)
	relation := tensor.Uniform[T, B](tensor.Shape{numRelations, fn.RelationDim(cfg.Hidden)}, -initRange, initRange, src, b)

	return &KGEModel[T, B]{cfg: cfg, score: fn, entity: entity, relation: relation, backend: b}, nil
}

// Config returns the model configuration.
func (m *KGEModel[T, B]) Config() Config { return m.cfg }

// ScoreFunc returns the score function.
func (m *KGEModel[T, B]) ScoreFunc() score.Func[T, B] { return m.score }

// EntityEmbedding returns the entity table.
func (m *KGEModel[T, B]) EntityEmbedding() *tensor.Tensor[T, B] { return m.entity }

// RelationEmbedding returns the relation table.
func (m *KGEModel[T, B]) RelationEmbedding() *tensor.Tensor[T, B] { return m.relation }

// NumEntities returns the number of entity rows.
func (m *KGEModel[T, B]) NumEntities() int { return m.entity.Shape()[0] }

// NumRelations returns the number of relation rows.
func (m *KGEModel[T, B]) NumRelations() int { return m.relation.Shape()[0] }

func (m *KGEModel[T, B]) lookup(table *tensor.Tensor[T, B], ids []int64) (*tensor.Tensor[T, B], error) {
	idx, err := tensor.FromSlice(ids, tensor.Shape{len(ids)}, m.backend)
	if err != nil {
		return nil, err
	}
	return table.Embedding(idx), nil
}

// Forward scores a batch. pos has shape [N]; neg has shape
// [NumChunks, ChunkSize, NegPerChunk].
func (m *KGEModel[T, B]) Forward(batch sampler.Batch) (pos, neg *tensor.Tensor[T, B], err error) {
	if batch.Size() == 0 || batch.NumChunks <= 0 || batch.Size()%batch.NumChunks != 0 {
		return nil, nil, fmt.Errorf("model: batch of %d triples cannot form %d chunks", batch.Size(), batch.NumChunks)
	}

	h, err := m.lookup(m.entity, batch.Heads)
	if err != nil {
		return nil, nil, err
	}
	r, err := m.lookup(m.relation, batch.Relations)
	if err != nil {
		return nil, nil, err
	}
	t, err := m.lookup(m.entity, batch.Tails)
	if err != nil {
		return nil, nil, err
	}
	negEmb, err := m.lookup(m.entity, batch.Negatives)
	if err != nil {
		return nil, nil, err
	}

	pos = m.score.Score(h, r, t)

	c, n := batch.NumChunks, batch.ChunkSize()
	entDim, relDim := h.Shape()[1], r.Shape()[1]
	rc := r.Reshape(c, n, relDim)
	negEmb = negEmb.Reshape(c, batch.NegPerChunk(), entDim)

	if batch.Mode == sampler.HeadMode {
		neg = m.score.NegScore(t.Reshape(c, n, entDim), rc, negEmb, true)
	} else {
		neg = m.score.NegScore(h.Reshape(c, n, entDim), rc, negEmb, false)
	}
	return pos, neg, nil
}

// Loss returns the scalar loss of a batch.
func (m *KGEModel[T, B]) Loss(batch sampler.Batch, fn *loss.Function[T, B]) (*tensor.Tensor[T, B], error) {
	pos, neg, err := m.Forward(batch)
	if err != nil {
		return nil, err
	}
	return fn.Forward(pos.Reshape(batch.NumChunks, batch.ChunkSize()), neg, nil), nil
}

// ScoreAll scores each triple against every entity. With negHead=false the
// tail is replaced, otherwise the head. The result has shape
// [len(triples), NumEntities].
func (m *KGEModel[T, B]) ScoreAll(triples []dataset.Triple, negHead bool) (*tensor.Tensor[T, B], error) {
	if len(triples) == 0 {
		return nil, fmt.Errorf("model: no triples to score")
	}

	known := make([]int64, len(triples))
	rels := make([]int64, len(triples))
	for i, tr := range triples {
		known[i], rels[i] = tr.H, tr.R
		if negHead {
			known[i] = tr.T
		}
	}

	ent, err := m.lookup(m.entity, known)
	if err != nil {
		return nil, err
	}
	rel, err := m.lookup(m.relation, rels)
	if err != nil {
		return nil, err
	}

	scores := m.score.NegScore(ent.Unsqueeze(0), rel.Unsqueeze(0), m.entity.Unsqueeze(0), negHead)
	return scores.Squeeze(0), nil
}
