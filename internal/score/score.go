// Package score implements knowledge-graph embedding score functions.
//
// Every function scores triples (head, relation, tail) from their embedding
// vectors. Score handles aligned positive triples, NegScore scores each
// positive of a chunk against a shared set of negative entities:
//
//	ent, rel: [B, N, D]   neg: [B, M, D]   →   [B, N, M]
//
// Higher scores mean more plausible triples.
package score

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/graph4kg/internal/tensor"
)

// ErrUnknownScore is returned by New for an unsupported score name.
var ErrUnknownScore = errors.New("unknown score function")

// Func is a KGE score function.
type Func[T tensor.Float, B tensor.Backend] interface {
	// Name returns the canonical lower-case name.
	Name() string

	// Score returns the score of aligned triples, reducing the last dim.
	Score(head, rel, tail *tensor.Tensor[T, B]) *tensor.Tensor[T, B]

	// NegScore scores every (positive, negative) pair within a chunk.
	// With negHead=false ent holds heads and neg replaces tails; with
	// negHead=true ent holds tails and neg replaces heads.
	NegScore(ent, rel, neg *tensor.Tensor[T, B], negHead bool) *tensor.Tensor[T, B]

	// EntityDim returns the entity embedding width for a hidden size.
	EntityDim(hidden int) int

	// RelationDim returns the relation embedding width for a hidden size.
	RelationDim(hidden int) int
}

// Names lists the names accepted by New.
var Names = []string{"transe", "transe_l1", "transe_l2", "rotate", "distmult", "complex"}

// New builds a score function by name (case-insensitive).
// embInit is only used by RotatE to map relation embeddings onto phases.
func New[T tensor.Float, B tensor.Backend](name string, gamma, embInit float64) (Func[T, B], error) {
	switch strings.ToLower(name) {
	case "transe", "transe_l2":
		return NewTransE[T, B](gamma, L2), nil
	case "transe_l1":
		return NewTransE[T, B](gamma, L1), nil
	case "rotate":
		if embInit <= 0 {
			return nil, fmt.Errorf("rotate: embedding init range must be positive, got %v", embInit)
		}
		return NewRotatE[T, B](gamma, embInit), nil
	case "distmult":
		return NewDistMult[T, B](), nil
	case "complex":
		return NewComplEx[T, B](), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScore, name)
	}
}

// batchT swaps the last two dims of a 3D tensor.
func batchT[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return x.Transpose(0, 2, 1)
}

func mustBe3D[T tensor.Float, B tensor.Backend](op string, xs ...*tensor.Tensor[T, B]) {
	for _, x := range xs {
		if len(x.Shape()) != 3 {
			panic(fmt.Sprintf("%s: expected [batch, n, dim] tensors, got shape %v", op, x.Shape()))
		}
	}
}
