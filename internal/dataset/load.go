package dataset

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Load reads a dataset directory. Vocabularies are read first, then the
// three splits in parallel. Missing valid or test files give empty splits.
func Load(ctx context.Context, dir string, logger *zap.Logger) (*TriGraph, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var entities, relations []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		entities, err = readDict(gctx, filepath.Join(dir, EntitiesFile))
		return err
	})
	g.Go(func() (err error) {
		relations, err = readDict(gctx, filepath.Join(dir, RelationsFile))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entityIDs, err := index("entity", entities)
	if err != nil {
		return nil, err
	}
	relationIDs, err := index("relation", relations)
	if err != nil {
		return nil, err
	}

	files := []string{TrainFile, ValidFile, TestFile}
	splits := make([][]Triple, len(files))
	g, gctx = errgroup.WithContext(ctx)
	for i, name := range files {
		g.Go(func() error {
			triples, err := readTriples(gctx, filepath.Join(dir, name), entityIDs, relationIDs)
			if errors.Is(err, fs.ErrNotExist) && name != TrainFile {
				logger.Debug("split not found", zap.String("file", name))
				return nil
			}
			if err != nil {
				return err
			}
			splits[i] = triples
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNoTrainSplit)
		}
		return nil, err
	}

	graph, err := New(entities, relations, splits[0], splits[1], splits[2])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	logger.Info("loaded dataset",
		zap.String("dir", dir),
		zap.Int("entities", graph.NumEntities()),
		zap.Int("relations", graph.NumRelations()),
		zap.Int("train", len(graph.Train)),
		zap.Int("valid", len(graph.Valid)),
		zap.Int("test", len(graph.Test)),
	)
	return graph, nil
}

// readDict parses id<TAB>name lines. Ids must cover [0, n) exactly once.
func readDict(ctx context.Context, path string) ([]string, error) {
	var names []string
	seen := make(map[int]bool)
	err := scanLines(ctx, path, func(fields []string) error {
		if len(fields) != 2 {
			return fmt.Errorf("expected 2 fields, got %d", len(fields))
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil || id < 0 {
			return fmt.Errorf("invalid id %q", fields[0])
		}
		if seen[id] {
			return fmt.Errorf("duplicate id %d", id)
		}
		seen[id] = true
		if id >= len(names) {
			names = append(names, make([]string, id-len(names)+1)...)
		}
		names[id] = fields[1]
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(seen) != len(names) {
		return nil, fmt.Errorf("%s: ids are not dense: %d names for max id %d", path, len(seen), len(names)-1)
	}
	return names, nil
}

func readTriples(ctx context.Context, path string, entityIDs, relationIDs map[string]int64) ([]Triple, error) {
	var triples []Triple
	err := scanLines(ctx, path, func(fields []string) error {
		if len(fields) != 3 {
			return fmt.Errorf("expected 3 fields, got %d", len(fields))
		}
		h, ok := entityIDs[fields[0]]
		if !ok {
			return fmt.Errorf("unknown entity %q", fields[0])
		}
		r, ok := relationIDs[fields[1]]
		if !ok {
			return fmt.Errorf("unknown relation %q", fields[1])
		}
		t, ok := entityIDs[fields[2]]
		if !ok {
			return fmt.Errorf("unknown entity %q", fields[2])
		}
		triples = append(triples, Triple{H: h, R: r, T: t})
		return nil
	})
	return triples, err
}

// scanLines calls fn with the tab separated fields of each non-empty line.
func scanLines(ctx context.Context, path string, fn func(fields []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return scan(ctx, f, path, fn)
}

func scan(ctx context.Context, r io.Reader, name string, fn func(fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		if lineNo%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(strings.Split(line, "\t")); err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}
