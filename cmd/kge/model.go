package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/graph4kg/internal/backend/cpu"
	"github.com/born-ml/graph4kg/internal/config"
	"github.com/born-ml/graph4kg/internal/dataset"
	"github.com/born-ml/graph4kg/internal/eval"
	"github.com/born-ml/graph4kg/internal/loss"
	"github.com/born-ml/graph4kg/internal/model"
	"github.com/born-ml/graph4kg/internal/random"
	"github.com/born-ml/graph4kg/internal/sampler"
	"github.com/born-ml/graph4kg/internal/tensor"
)

// run holds what every model command needs.
type run struct {
	cfg     *config.Config
	graph   *dataset.TriGraph
	backend *cpu.CPUBackend
	logger  *zap.Logger
	out     io.Writer
}

func (o *rootOptions) prepare(cmd *cobra.Command) (*run, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	graph, err := dataset.Load(cmd.Context(), cfg.DataPath, o.logger)
	if err != nil {
		return nil, err
	}
	return &run{cfg: cfg, graph: graph, backend: cpu.New(), logger: o.logger, out: cmd.OutOrStdout()}, nil
}

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialise a model and write its checkpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.prepare(cmd)
			if err != nil {
				return err
			}
			if r.cfg.DType == "float64" {
				return initModel[float64](r)
			}
			return initModel[float32](r)
		},
	}
}

func initModel[T tensor.Float](r *run) error {
	m, err := newModel[T](r)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.cfg.SavePath, 0o755); err != nil {
		return fmt.Errorf("create save path: %w", err)
	}
	path := r.cfg.CheckpointPath()
	if err := m.Save(path); err != nil {
		return err
	}
	r.logger.Info("wrote checkpoint",
		zap.String("path", path),
		zap.String("score_func", m.ScoreFunc().Name()),
		zap.Int("entities", m.NumEntities()),
		zap.Int("relations", m.NumRelations()),
	)
	fmt.Fprintln(r.out, path)
	return nil
}

func newModel[T tensor.Float](r *run) (*model.KGEModel[T, *cpu.CPUBackend], error) {
	return model.New[T](r.cfg.Model, r.graph.NumEntities(), r.graph.NumRelations(), random.New(r.cfg.Seed), r.backend)
}

// loadOrInit reads the checkpoint at path; a missing file gives a freshly
// initialised model when allowInit is set.
func loadOrInit[T tensor.Float](r *run, path string, allowInit bool) (*model.KGEModel[T, *cpu.CPUBackend], error) {
	m, err := model.Load[T](path, r.backend)
	if err == nil {
		if m.NumEntities() != r.graph.NumEntities() || m.NumRelations() != r.graph.NumRelations() {
			return nil, fmt.Errorf("checkpoint %s has %d entities and %d relations, dataset has %d and %d",
				path, m.NumEntities(), m.NumRelations(), r.graph.NumEntities(), r.graph.NumRelations())
		}
		return m, nil
	}
	if allowInit && errors.Is(err, fs.ErrNotExist) {
		r.logger.Info("no checkpoint, using initial embeddings", zap.String("path", path))
		return newModel[T](r)
	}
	return nil, err
}

func newEvalCmd(opts *rootOptions) *cobra.Command {
	var (
		checkpoint string
		split      string
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate link prediction on a split",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.prepare(cmd)
			if err != nil {
				return err
			}
			if checkpoint == "" {
				checkpoint = r.cfg.CheckpointPath()
			}

			var triples []dataset.Triple
			switch split {
			case "test":
				triples = r.graph.Test
			case "valid":
				triples = r.graph.Valid
			case "train":
				triples = r.graph.Train
			default:
				return fmt.Errorf("unknown split %q (want train, valid or test)", split)
			}
			if len(triples) == 0 {
				return fmt.Errorf("split %q is empty", split)
			}

			if r.cfg.DType == "float64" {
				return evalModel[float64](cmd.Context(), r, checkpoint, triples)
			}
			return evalModel[float32](cmd.Context(), r, checkpoint, triples)
		},
	}
	cmd.Flags().StringVar(&checkpoint, "checkpoint", "", "checkpoint to evaluate (default <save_path>/model.safetensors)")
	cmd.Flags().StringVar(&split, "split", "test", "split to evaluate: train, valid or test")
	return cmd
}

func evalModel[T tensor.Float](ctx context.Context, r *run, checkpoint string, triples []dataset.Triple) error {
	m, err := loadOrInit[T](r, checkpoint, false)
	if err != nil {
		return err
	}

	res, err := eval.Evaluate(ctx, m, r.graph, triples, eval.Options{
		BatchSize: r.cfg.Eval.BatchSize,
		Filtered:  r.cfg.Eval.Filtered,
		Logger:    r.logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "tail:    %s\n", res.Tail)
	fmt.Fprintf(r.out, "head:    %s\n", res.Head)
	fmt.Fprintf(r.out, "overall: %s\n", res.Overall)
	return nil
}

func newLossCmd(opts *rootOptions) *cobra.Command {
	var checkpoint string

	cmd := &cobra.Command{
		Use:   "loss",
		Short: "Average training loss over one epoch of sampled batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.prepare(cmd)
			if err != nil {
				return err
			}
			if checkpoint == "" {
				checkpoint = r.cfg.CheckpointPath()
			}
			if r.cfg.DType == "float64" {
				return epochLoss[float64](cmd.Context(), r, checkpoint)
			}
			return epochLoss[float32](cmd.Context(), r, checkpoint)
		},
	}
	cmd.Flags().StringVar(&checkpoint, "checkpoint", "", "checkpoint to use (default <save_path>/model.safetensors, initial model if missing)")
	return cmd
}

func epochLoss[T tensor.Float](ctx context.Context, r *run, checkpoint string) error {
	m, err := loadOrInit[T](r, checkpoint, true)
	if err != nil {
		return err
	}
	fn, err := loss.New[T, *cpu.CPUBackend](r.cfg.Loss)
	if err != nil {
		return err
	}
	s, err := sampler.New(r.graph.Train, r.graph.NumEntities(), r.cfg.Sampler)
	if err != nil {
		return err
	}

	var total float64
	batches := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		batch, ok := s.Next()
		if !ok {
			break
		}
		l, err := m.Loss(batch, fn)
		if err != nil {
			return err
		}
		total += float64(l.Item())
		batches++
		r.logger.Debug("batch loss", zap.Int("batch", batches), zap.String("mode", batch.Mode.String()), zap.Float64("loss", float64(l.Item())))
	}
	if batches == 0 {
		return fmt.Errorf("train split of %d triples yields no batch", len(r.graph.Train))
	}

	fmt.Fprintf(r.out, "loss=%.6f batches=%d\n", total/float64(batches), batches)
	return nil
}
