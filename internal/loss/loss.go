// Package loss implements the training objectives used with KGE scores.
//
// A Function turns positive scores and chunked negative scores into a
// scalar loss. Supported element losses:
//
//	hinge       relu(margin - y·s)
//	logistic    softplus(-y·s)      (alias: softplus)
//	logsigmoid  -logsigmoid(y·s)
//	bce         binary cross entropy on logits, y ∈ {0, 1}
//
// Positive triples use label 1; negatives use -1, or 0 for bce.
package loss

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/graph4kg/internal/tensor"
)

// ErrUnknownLoss is returned by New for an unsupported loss name.
var ErrUnknownLoss = errors.New("unknown loss function")

// Config selects and parameterises a loss.
type Config struct {
	Name           string  `yaml:"name"`
	Pairwise       bool    `yaml:"pairwise"`
	Margin         float64 `yaml:"margin"`
	NegAdvSampling bool    `yaml:"neg_adv_sampling"`
	NegAdvTemp     float64 `yaml:"neg_adv_temp"`
}

// DefaultConfig returns the logsigmoid loss with adversarial sampling off.
func DefaultConfig() Config {
	return Config{
		Name:       "logsigmoid",
		Margin:     1.0,
		NegAdvTemp: 1.0,
	}
}

type kind int

const (
	hinge kind = iota
	logistic
	logSigmoid
	bce
)

func parseKind(name string) (kind, error) {
	switch strings.ToLower(name) {
	case "hinge":
		return hinge, nil
	case "logistic", "softplus":
		return logistic, nil
	case "logsigmoid":
		return logSigmoid, nil
	case "bce":
		return bce, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLoss, name)
	}
}

// Function computes a KGE loss over score tensors.
type Function[T tensor.Float, B tensor.Backend] struct {
	cfg      Config
	kind     kind
	negLabel float64
}

// Validate checks the loss name and adversarial temperature.
func (c Config) Validate() error {
	if _, err := parseKind(c.Name); err != nil {
		return err
	}
	if c.NegAdvSampling && c.NegAdvTemp <= 0 {
		return fmt.Errorf("loss: adversarial temperature must be positive, got %v", c.NegAdvTemp)
	}
	return nil
}

// New validates cfg and builds the loss.
func New[T tensor.Float, B tensor.Backend](cfg Config) (*Function[T, B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	k, _ := parseKind(cfg.Name)

	negLabel := -1.0
	if k == bce {
		negLabel = 0
	}
	return &Function[T, B]{cfg: cfg, kind: k, negLabel: negLabel}, nil
}

// Config returns the configuration the loss was built with.
func (f *Function[T, B]) Config() Config { return f.cfg }

// Forward returns the scalar loss.
//
// pos holds one score per positive triple. neg holds the negative scores of
// each positive along its last dim, e.g. [chunks, n, M] for pos [chunks, n].
// In pairwise mode every positive is compared with each of its negatives.
// weights is optional; when set it must hold one weight per positive and
// the means over positives become weighted means, in both modes.
func (f *Function[T, B]) Forward(pos, neg, weights *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	if f.cfg.Pairwise {
		pair := f.elem(pos.Unsqueeze(-1).Sub(neg), 1)
		if weights != nil {
			return weightedMean(pair.MeanDim(-1, false), weights)
		}
		return pair.Mean()
	}

	posLoss := f.elem(pos, 1)
	negLoss := f.elem(neg, f.negLabel)

	if f.cfg.NegAdvSampling {
		// Softmax weights are constants: no gradient flows through them.
		adv := neg.MulScalar(T(f.cfg.NegAdvTemp)).Softmax(-1)
		negLoss = adv.Mul(negLoss).SumDim(-1, false)
	} else {
		negLoss = negLoss.MeanDim(-1, false)
	}

	var posMean, negMean *tensor.Tensor[T, B]
	if weights != nil {
		posMean = weightedMean(posLoss, weights)
		negMean = weightedMean(negLoss, weights)
	} else {
		posMean = posLoss.Mean()
		negMean = negLoss.Mean()
	}

	return posMean.Add(negMean).DivScalar(2)
}

// elem applies the element loss with the given label.
func (f *Function[T, B]) elem(score *tensor.Tensor[T, B], label float64) *tensor.Tensor[T, B] {
	switch f.kind {
	case hinge:
		return score.MulScalar(T(label)).RSubScalar(T(f.cfg.Margin)).ReLU()
	case logistic:
		return score.MulScalar(T(-label)).Softplus()
	case logSigmoid:
		return score.MulScalar(T(label)).LogSigmoid().Neg()
	case bce:
		// softplus(s) - y·s == -[y·log σ(s) + (1-y)·log(1-σ(s))]
		return score.Softplus().Sub(score.MulScalar(T(label)))
	default:
		panic(fmt.Sprintf("loss: unhandled kind %d", f.kind))
	}
}

func weightedMean[T tensor.Float, B tensor.Backend](x, w *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	n := w.NumElements()
	if x.NumElements() != n {
		panic(fmt.Sprintf("loss: %d sample weights for %d losses", n, x.NumElements()))
	}
	flatW := w.Reshape(n)
	return x.Reshape(n).Mul(flatW).Sum().Div(flatW.Sum())
}
