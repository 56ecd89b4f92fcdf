// Package eval computes link prediction metrics for KGE models.
//
// Every test triple is ranked twice: once against all candidate tails and
// once against all candidate heads. The rank of the true entity is one plus
// the number of candidates scoring strictly higher; in the filtered setting
// candidates forming another known triple are skipped.
package eval

import (
	"fmt"
	"slices"

	"github.com/born-ml/graph4kg/internal/tensor"
)

// Metrics summarises a set of ranks.
type Metrics struct {
	MRR    float64 `json:"mrr"`
	MR     float64 `json:"mr"`
	Hits1  float64 `json:"hits@1"`
	Hits3  float64 `json:"hits@3"`
	Hits10 float64 `json:"hits@10"`
	Count  int     `json:"count"`
}

// String formats the metrics on one line.
func (m Metrics) String() string {
	return fmt.Sprintf("MRR=%.4f MR=%.2f Hits@1=%.4f Hits@3=%.4f Hits@10=%.4f (n=%d)",
		m.MRR, m.MR, m.Hits1, m.Hits3, m.Hits10, m.Count)
}

// Accumulator collects ranks into Metrics.
type Accumulator struct {
	n                    int
	sumRR, sumRank       float64
	hits1, hits3, hits10 int
}

// Add records one rank (1-based).
func (a *Accumulator) Add(rank int) {
	a.n++
	a.sumRR += 1 / float64(rank)
	a.sumRank += float64(rank)
	if rank <= 1 {
		a.hits1++
	}
	if rank <= 3 {
		a.hits3++
	}
	if rank <= 10 {
		a.hits10++
	}
}

// Metrics returns the averages of the recorded ranks.
func (a *Accumulator) Metrics() Metrics {
	if a.n == 0 {
		return Metrics{}
	}
	n := float64(a.n)
	return Metrics{
		MRR:    a.sumRR / n,
		MR:     a.sumRank / n,
		Hits1:  float64(a.hits1) / n,
		Hits3:  float64(a.hits3) / n,
		Hits10: float64(a.hits10) / n,
		Count:  a.n,
	}
}

// Rank returns 1 + the number of candidates scoring strictly higher than
// scores[target]. Candidates listed in exclude (sorted) are skipped; the
// target itself never counts.
func Rank[T tensor.Float](scores []T, target int, exclude []int64) int {
	want := scores[target]
	rank := 1
	for i, s := range scores {
		if s <= want || i == target {
			continue
		}
		if _, found := slices.BinarySearch(exclude, int64(i)); found {
			continue
		}
		rank++
	}
	return rank
}
