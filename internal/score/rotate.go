package score

import (
	"math"

	"github.com/born-ml/graph4kg/internal/tensor"
)

// RotatE models a relation as an element-wise rotation in complex space.
// Entity vectors hold [real | imaginary] halves, relation vectors hold one
// phase per complex coordinate:
//
//	score = gamma - Σ_k |h_k · e^{iθ_k} - t_k|,  θ = r / (embInit / π)
type RotatE[T tensor.Float, B tensor.Backend] struct {
	gamma   float64
	embInit float64
}

// NewRotatE creates a RotatE score. embInit is the range used to initialise
// relation embeddings, which maps them onto [-π, π].
func NewRotatE[T tensor.Float, B tensor.Backend](gamma, embInit float64) *RotatE[T, B] {
	return &RotatE[T, B]{gamma: gamma, embInit: embInit}
}

// Name implements Func.
func (s *RotatE[T, B]) Name() string { return "rotate" }

// EntityDim implements Func.
func (s *RotatE[T, B]) EntityDim(hidden int) int { return 2 * hidden }

// RelationDim implements Func.
func (s *RotatE[T, B]) RelationDim(hidden int) int { return hidden }

// Score implements Func.
func (s *RotatE[T, B]) Score(head, rel, tail *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	re, im := s.rotate(head, rel, false)
	tails := tail.Chunk(2, -1)

	re = re.Sub(tails[0])
	im = im.Sub(tails[1])
	return modulus(re, im).SumDim(-1, false).RSubScalar(T(s.gamma))
}

// NegScore implements Func.
//
// Corrupted tails are compared against rotated heads. Corrupted heads are
// compared against tails rotated back by the conjugate phase, which has the
// same modulus since |e^{iθ}| = 1.
func (s *RotatE[T, B]) NegScore(ent, rel, neg *tensor.Tensor[T, B], negHead bool) *tensor.Tensor[T, B] {
	mustBe3D("rotate", ent, rel, neg)

	re, im := s.rotate(ent, rel, negHead)
	negs := neg.Chunk(2, -1)

	// [B, N, 1, D/2] - [B, 1, M, D/2] → [B, N, M, D/2]
	dRe := re.Unsqueeze(2).Sub(negs[0].Unsqueeze(1))
	dIm := im.Unsqueeze(2).Sub(negs[1].Unsqueeze(1))
	return modulus(dRe, dIm).SumDim(-1, false).RSubScalar(T(s.gamma))
}

// rotate multiplies ent by e^{iθ}, or by e^{-iθ} when conj is set.
func (s *RotatE[T, B]) rotate(ent, rel *tensor.Tensor[T, B], conj bool) (re, im *tensor.Tensor[T, B]) {
	parts := ent.Chunk(2, -1)
	reE, imE := parts[0], parts[1]

	phase := rel.DivScalar(T(s.embInit / math.Pi))
	cos, sin := phase.Cos(), phase.Sin()

	if conj {
		re = reE.Mul(cos).Add(imE.Mul(sin))
		im = imE.Mul(cos).Sub(reE.Mul(sin))
		return re, im
	}
	re = reE.Mul(cos).Sub(imE.Mul(sin))
	im = reE.Mul(sin).Add(imE.Mul(cos))
	return re, im
}

func modulus[T tensor.Float, B tensor.Backend](re, im *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return re.Square().Add(im.Square()).Sqrt()
}
