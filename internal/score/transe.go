package score

import (
	"fmt"

	"github.com/born-ml/graph4kg/internal/tensor"
)

// Distance selects the norm used by TransE.
type Distance int

const (
	// L2 is the Euclidean distance.
	L2 Distance = iota
	// L1 is the Manhattan distance.
	L1
)

// String returns "l1" or "l2".
func (d Distance) String() string {
	switch d {
	case L1:
		return "l1"
	case L2:
		return "l2"
	default:
		return fmt.Sprintf("Distance(%d)", int(d))
	}
}

// minSquaredDist keeps sqrt away from zero and from tiny negative values
// produced by the x² + y² - 2xy expansion.
const minSquaredDist = 1e-30

// TransE scores a triple by how well the relation translates head onto tail:
//
//	score = gamma - ||h + r - t||
type TransE[T tensor.Float, B tensor.Backend] struct {
	gamma float64
	dist  Distance
}

// NewTransE creates a TransE score with margin gamma.
func NewTransE[T tensor.Float, B tensor.Backend](gamma float64, dist Distance) *TransE[T, B] {
	return &TransE[T, B]{gamma: gamma, dist: dist}
}

// Name implements Func.
func (s *TransE[T, B]) Name() string {
	if s.dist == L1 {
		return "transe_l1"
	}
	return "transe"
}

// Gamma returns the margin.
func (s *TransE[T, B]) Gamma() float64 { return s.gamma }

// EntityDim implements Func.
func (s *TransE[T, B]) EntityDim(hidden int) int { return hidden }

// RelationDim implements Func.
func (s *TransE[T, B]) RelationDim(hidden int) int { return hidden }

// Score implements Func.
func (s *TransE[T, B]) Score(head, rel, tail *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	diff := head.Add(rel).Sub(tail)
	var dist *tensor.Tensor[T, B]
	if s.dist == L1 {
		dist = diff.NormL1(-1)
	} else {
		dist = diff.NormL2(-1)
	}
	return dist.RSubScalar(T(s.gamma))
}

// NegScore implements Func.
//
// Corrupted tails are compared against h + r, corrupted heads against t - r.
func (s *TransE[T, B]) NegScore(ent, rel, neg *tensor.Tensor[T, B], negHead bool) *tensor.Tensor[T, B] {
	mustBe3D("transe", ent, rel, neg)

	var query *tensor.Tensor[T, B]
	if negHead {
		query = ent.Sub(rel)
	} else {
		query = ent.Add(rel)
	}
	return s.pairwise(query, neg).RSubScalar(T(s.gamma))
}

// pairwise returns dist(x[b,i], y[b,j]) as a [B, N, M] tensor.
func (s *TransE[T, B]) pairwise(x, y *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	if s.dist == L1 {
		return x.Unsqueeze(2).Sub(y.Unsqueeze(1)).Abs().SumDim(-1, false)
	}

	x2 := x.Square().SumDim(-1, true)         // [B, N, 1]
	y2 := batchT(y.Square().SumDim(-1, true)) // [B, 1, M]
	xy := x.BatchMatMul(batchT(y))            // [B, N, M]
	return x2.Add(y2).Sub(xy.MulScalar(2)).ClampMin(T(minSquaredDist)).Sqrt()
}
