// Package sampler produces training batches with chunked negative samples.
//
// A batch of positive triples is split into NumChunks chunks of equal size.
// All positives of a chunk share NegSampleSize negative entities, so the
// negative scores of a chunk are one batched matmul or broadcast instead of
// a gather per positive. Batches alternate between corrupting tails and
// corrupting heads.
package sampler

import (
	"fmt"

	"github.com/born-ml/graph4kg/internal/dataset"
	"github.com/born-ml/graph4kg/internal/random"
)

// Mode says which side of the positives the negatives replace.
type Mode int

const (
	// TailMode corrupts tails.
	TailMode Mode = iota
	// HeadMode corrupts heads.
	HeadMode
)

// String returns "tail" or "head".
func (m Mode) String() string {
	if m == HeadMode {
		return "head"
	}
	return "tail"
}

// Config controls batch and negative sizes.
type Config struct {
	BatchSize     int    `yaml:"batch_size"`
	NegSampleSize int    `yaml:"neg_sample_size"`
	NumChunks     int    `yaml:"num_chunks"`
	Seed          uint32 `yaml:"seed"`
}

// Validate checks that the sizes are positive and chunks divide the batch.
func (c Config) Validate() error {
	if c.BatchSize <= 0 || c.NegSampleSize <= 0 || c.NumChunks <= 0 {
		return fmt.Errorf("sampler: sizes must be positive: batch=%d neg=%d chunks=%d",
			c.BatchSize, c.NegSampleSize, c.NumChunks)
	}
	if c.BatchSize%c.NumChunks != 0 {
		return fmt.Errorf("sampler: batch size %d is not divisible by %d chunks", c.BatchSize, c.NumChunks)
	}
	return nil
}

// Batch is one training step worth of triples.
type Batch struct {
	Heads     []int64 // [NumChunks * ChunkSize]
	Relations []int64
	Tails     []int64
	Negatives []int64 // [NumChunks * NegSampleSize]
	Mode      Mode
	NumChunks int
}

// Size returns the number of positive triples.
func (b Batch) Size() int { return len(b.Heads) }

// ChunkSize returns the number of positives per chunk.
func (b Batch) ChunkSize() int { return len(b.Heads) / b.NumChunks }

// NegPerChunk returns the number of negatives shared by each chunk.
func (b Batch) NegPerChunk() int { return len(b.Negatives) / b.NumChunks }

// Sampler iterates over shuffled triples one epoch at a time.
// A Sampler is not safe for concurrent use.
type Sampler struct {
	cfg         Config
	triples     []dataset.Triple
	numEntities int
	rng         *random.Generator

	order []int
	pos   int
	step  int
}

// New returns a sampler over triples with negatives drawn from
// [0, numEntities). The first epoch is shuffled immediately.
func New(triples []dataset.Triple, numEntities int, cfg Config) (*Sampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(triples) == 0 {
		return nil, dataset.ErrNoTrainSplit
	}
	if numEntities <= 0 {
		return nil, fmt.Errorf("sampler: numEntities must be positive, got %d", numEntities)
	}

	s := &Sampler{
		cfg:         cfg,
		triples:     triples,
		numEntities: numEntities,
		rng:         random.New(cfg.Seed),
		order:       make([]int, len(triples)),
	}
	s.Reset()
	return s, nil
}

// Reset starts a new epoch with a fresh shuffle.
func (s *Sampler) Reset() {
	for i := range s.order {
		s.order[i] = i
	}
	for i := len(s.order) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		s.order[i], s.order[j] = s.order[j], s.order[i]
	}
	s.pos = 0
}

// NumBatches returns the number of batches per epoch. A trailing partial
// batch is kept if it holds at least one triple per chunk.
func (s *Sampler) NumBatches() int {
	full := len(s.triples) / s.cfg.BatchSize
	if len(s.triples)%s.cfg.BatchSize >= s.cfg.NumChunks {
		full++
	}
	return full
}

// Next returns the next batch, or false at the end of the epoch.
func (s *Sampler) Next() (Batch, bool) {
	remaining := len(s.order) - s.pos
	size := min(s.cfg.BatchSize, remaining)
	size -= size % s.cfg.NumChunks
	if size == 0 {
		return Batch{}, false
	}

	b := Batch{
		Heads:     make([]int64, size),
		Relations: make([]int64, size),
		Tails:     make([]int64, size),
		Negatives: make([]int64, s.cfg.NumChunks*s.cfg.NegSampleSize),
		NumChunks: s.cfg.NumChunks,
	}
	for i := range size {
		tr := s.triples[s.order[s.pos+i]]
		b.Heads[i], b.Relations[i], b.Tails[i] = tr.H, tr.R, tr.T
	}
	for i := range b.Negatives {
		b.Negatives[i] = int64(s.rng.Intn(s.numEntities))
	}
	if s.step%2 == 1 {
		b.Mode = HeadMode
	}

	s.pos += size
	s.step++
	return b, true
}
