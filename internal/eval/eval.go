package eval

import (
	"context"
	"fmt"

	"github.com/born-ml/graph4kg/internal/dataset"
	"github.com/born-ml/graph4kg/internal/model"
	"github.com/born-ml/graph4kg/internal/tensor"
	"go.uber.org/zap"
)

// Options controls evaluation.
type Options struct {
	// BatchSize is the number of triples scored against all entities at once.
	BatchSize int
	// Filtered skips candidates that form known triples.
	Filtered bool
	Logger   *zap.Logger
}

// Result holds metrics per corruption side and overall.
type Result struct {
	Tail    Metrics `json:"tail"`
	Head    Metrics `json:"head"`
	Overall Metrics `json:"overall"`
}

// Evaluate ranks triples with m. g supplies the filter index and may be nil
// when opts.Filtered is false.
func Evaluate[T tensor.Float, B tensor.Backend](ctx context.Context, m *model.KGEModel[T, B], g *dataset.TriGraph, triples []dataset.Triple, opts Options) (Result, error) {
	if opts.BatchSize <= 0 {
		return Result{}, fmt.Errorf("eval: batch size must be positive, got %d", opts.BatchSize)
	}
	if opts.Filtered && g == nil {
		return Result{}, fmt.Errorf("eval: filtered evaluation needs a graph")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var tail, head, all Accumulator
	for start := 0; start < len(triples); start += opts.BatchSize {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		batch := triples[start:min(start+opts.BatchSize, len(triples))]

		for _, negHead := range []bool{false, true} {
			scores, err := m.ScoreAll(batch, negHead)
			if err != nil {
				return Result{}, err
			}
			data := scores.Data()
			numEntities := scores.Shape()[1]

			for i, tr := range batch {
				row := data[i*numEntities : (i+1)*numEntities]
				target := int(tr.T)
				var exclude []int64
				if negHead {
					target = int(tr.H)
					if opts.Filtered {
						exclude = g.TrueHeads(tr.R, tr.T)
					}
				} else if opts.Filtered {
					exclude = g.TrueTails(tr.H, tr.R)
				}

				rank := Rank(row, target, exclude)
				all.Add(rank)
				if negHead {
					head.Add(rank)
				} else {
					tail.Add(rank)
				}
			}
		}
		logger.Debug("evaluated batch", zap.Int("done", start+len(batch)), zap.Int("total", len(triples)))
	}

	res := Result{Tail: tail.Metrics(), Head: head.Metrics(), Overall: all.Metrics()}
	logger.Info("evaluation finished",
		zap.Bool("filtered", opts.Filtered),
		zap.Float64("mrr", res.Overall.MRR),
		zap.Float64("mr", res.Overall.MR),
		zap.Float64("hits@1", res.Overall.Hits1),
		zap.Float64("hits@3", res.Overall.Hits3),
		zap.Float64("hits@10", res.Overall.Hits10),
	)
	return res, nil
}
