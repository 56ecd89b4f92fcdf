// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package kge

import (
	"context"

	"go.uber.org/zap"

	"github.com/born-ml/graph4kg/internal/dataset"
	"github.com/born-ml/graph4kg/internal/eval"
	"github.com/born-ml/graph4kg/internal/loss"
	"github.com/born-ml/graph4kg/internal/model"
	"github.com/born-ml/graph4kg/internal/sampler"
	"github.com/born-ml/graph4kg/internal/score"
	"github.com/born-ml/graph4kg/tensor"
)

// Errors.
var (
	ErrUnknownScore = score.ErrUnknownScore
	ErrUnknownLoss  = loss.ErrUnknownLoss
	ErrNoTrainSplit = dataset.ErrNoTrainSplit
)

// ScoreNames lists the accepted score function names.
var ScoreNames = score.Names

// ScoreFunc scores triples from their embeddings.
type ScoreFunc[T tensor.Float, B tensor.Backend] = score.Func[T, B]

// Distance is the norm used by TransE.
type Distance = score.Distance

// TransE distances.
const (
	L1 Distance = score.L1
	L2 Distance = score.L2
)

// NewScoreFunc builds a score function by name. embInit is the embedding
// initialisation range and is only used by RotatE.
func NewScoreFunc[T tensor.Float, B tensor.Backend](name string, gamma, embInit float64) (ScoreFunc[T, B], error) {
	return score.New[T, B](name, gamma, embInit)
}

// NewTransE returns the TransE score with the given margin and norm.
func NewTransE[T tensor.Float, B tensor.Backend](gamma float64, dist Distance) ScoreFunc[T, B] {
	return score.NewTransE[T, B](gamma, dist)
}

// NewRotatE returns the RotatE score.
func NewRotatE[T tensor.Float, B tensor.Backend](gamma, embInit float64) ScoreFunc[T, B] {
	return score.NewRotatE[T, B](gamma, embInit)
}

// NewDistMult returns the DistMult score.
func NewDistMult[T tensor.Float, B tensor.Backend]() ScoreFunc[T, B] {
	return score.NewDistMult[T, B]()
}

// NewComplEx returns the ComplEx score.
func NewComplEx[T tensor.Float, B tensor.Backend]() ScoreFunc[T, B] {
	return score.NewComplEx[T, B]()
}

// LossConfig selects and parameterises a training loss.
type LossConfig = loss.Config

// Loss reduces positive and negative scores to a scalar.
type Loss[T tensor.Float, B tensor.Backend] = loss.Function[T, B]

// DefaultLossConfig returns the logsigmoid loss.
func DefaultLossConfig() LossConfig {
	return loss.DefaultConfig()
}

// NewLoss builds a loss from cfg.
func NewLoss[T tensor.Float, B tensor.Backend](cfg LossConfig) (*Loss[T, B], error) {
	return loss.New[T, B](cfg)
}

// Triple is a (head, relation, tail) fact by id.
type Triple = dataset.Triple

// TriGraph is a loaded knowledge graph.
type TriGraph = dataset.TriGraph

// NewDataset builds a graph from vocabularies and id triples.
func NewDataset(entities, relations []string, train, valid, test []Triple) (*TriGraph, error) {
	return dataset.New(entities, relations, train, valid, test)
}

// LoadDataset reads a dataset directory.
func LoadDataset(ctx context.Context, dir string, logger *zap.Logger) (*TriGraph, error) {
	return dataset.Load(ctx, dir, logger)
}

// SamplerConfig controls batch and negative sampling.
type SamplerConfig = sampler.Config

// Sampler yields shuffled training batches with shared negatives.
type Sampler = sampler.Sampler

// Batch is one training step worth of triples.
type Batch = sampler.Batch

// NewSampler returns a sampler over triples.
func NewSampler(triples []Triple, numEntities int, cfg SamplerConfig) (*Sampler, error) {
	return sampler.New(triples, numEntities, cfg)
}

// ModelConfig selects the score function and embedding size.
type ModelConfig = model.Config

// Model is a KGE model with entity and relation embedding tables.
type Model[T tensor.Float, B tensor.Backend] = model.KGEModel[T, B]

// NewModel creates a model with uniformly initialised embeddings.
func NewModel[T tensor.Float, B tensor.Backend](cfg ModelConfig, numEntities, numRelations int, src tensor.Source, b B) (*Model[T, B], error) {
	return model.New[T](cfg, numEntities, numRelations, src, b)
}

// LoadModel restores a model from a safetensors checkpoint.
func LoadModel[T tensor.Float, B tensor.Backend](path string, b B) (*Model[T, B], error) {
	return model.Load[T](path, b)
}

// EvalOptions controls link prediction evaluation.
type EvalOptions = eval.Options

// EvalResult holds tail, head and overall metrics.
type EvalResult = eval.Result

// Metrics are ranking metrics over a set of queries.
type Metrics = eval.Metrics

// Evaluate ranks every true entity of triples against all entities.
func Evaluate[T tensor.Float, B tensor.Backend](ctx context.Context, m *Model[T, B], g *TriGraph, triples []Triple, opts EvalOptions) (EvalResult, error) {
	return eval.Evaluate(ctx, m, g, triples, opts)
}
