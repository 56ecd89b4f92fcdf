package score

import "github.com/born-ml/graph4kg/internal/tensor"

// ComplEx scores a triple by Re(<h, r, conj(t)>) over complex embeddings
// stored as [real | imaginary] halves.
type ComplEx[T tensor.Float, B tensor.Backend] struct{}

// NewComplEx creates a ComplEx score.
func NewComplEx[T tensor.Float, B tensor.Backend]() *ComplEx[T, B] {
	return &ComplEx[T, B]{}
}

// Name implements Func.
func (s *ComplEx[T, B]) Name() string { return "complex" }

// EntityDim implements Func.
func (s *ComplEx[T, B]) EntityDim(hidden int) int { return 2 * hidden }

// RelationDim implements Func.
func (s *ComplEx[T, B]) RelationDim(hidden int) int { return 2 * hidden }

// Score implements Func.
func (s *ComplEx[T, B]) Score(head, rel, tail *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	query := s.headQuery(head, rel)
	return query.Mul(tail).SumDim(-1, false)
}

// NegScore implements Func.
func (s *ComplEx[T, B]) NegScore(ent, rel, neg *tensor.Tensor[T, B], negHead bool) *tensor.Tensor[T, B] {
	mustBe3D("complex", ent, rel, neg)

	var query *tensor.Tensor[T, B]
	if negHead {
		query = s.tailQuery(ent, rel)
	} else {
		query = s.headQuery(ent, rel)
	}
	return query.BatchMatMul(batchT(neg))
}

// headQuery returns h·r as [re | im], so that score = Σ query · t.
func (s *ComplEx[T, B]) headQuery(head, rel *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	h, r := head.Chunk(2, -1), rel.Chunk(2, -1)
	re := h[0].Mul(r[0]).Sub(h[1].Mul(r[1]))
	im := h[0].Mul(r[1]).Add(h[1].Mul(r[0]))
	return tensor.Cat([]*tensor.Tensor[T, B]{re, im}, -1)
}

// tailQuery returns r·conj(t) with the imaginary sign folded in, so that
// score = Σ query · h.
func (s *ComplEx[T, B]) tailQuery(tail, rel *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	t, r := tail.Chunk(2, -1), rel.Chunk(2, -1)
	re := r[0].Mul(t[0]).Add(r[1].Mul(t[1]))
	im := r[0].Mul(t[1]).Sub(r[1].Mul(t[0]))
	return tensor.Cat([]*tensor.Tensor[T, B]{re, im}, -1)
}
