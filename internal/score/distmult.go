package score

import "github.com/born-ml/graph4kg/internal/tensor"

// DistMult scores a triple by the trilinear product Σ h · r · t.
type DistMult[T tensor.Float, B tensor.Backend] struct{}

// NewDistMult creates a DistMult score.
func NewDistMult[T tensor.Float, B tensor.Backend]() *DistMult[T, B] {
	return &DistMult[T, B]{}
}

// Name implements Func.
func (s *DistMult[T, B]) Name() string { return "distmult" }

// EntityDim implements Func.
func (s *DistMult[T, B]) EntityDim(hidden int) int { return hidden }

// RelationDim implements Func.
func (s *DistMult[T, B]) RelationDim(hidden int) int { return hidden }

// Score implements Func.
func (s *DistMult[T, B]) Score(head, rel, tail *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return head.Mul(rel).Mul(tail).SumDim(-1, false)
}

// NegScore implements Func. The product is symmetric in head and tail, so
// both corruption modes share one batched matmul.
func (s *DistMult[T, B]) NegScore(ent, rel, neg *tensor.Tensor[T, B], _ bool) *tensor.Tensor[T, B] {
	mustBe3D("distmult", ent, rel, neg)
	return ent.Mul(rel).BatchMatMul(batchT(neg))
}
