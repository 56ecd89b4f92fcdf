package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/graph4kg/internal/tensor"
)

// ReLU computes max(x, 0).
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("relu", x, func(v float64) float64 {
		return math.Max(v, 0)
	})
}

// Sigmoid computes 1 / (1 + exp(-x)).
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("sigmoid", x, sigmoid)
}

// LogSigmoid computes log(sigmoid(x)) without overflowing for large |x|.
func (cpu *CPUBackend) LogSigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("logsigmoid", x, func(v float64) float64 {
		return -softplus(-v)
	})
}

// Softplus computes log(1 + exp(x)) without overflowing for large |x|.
func (cpu *CPUBackend) Softplus(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("softplus", x, softplus)
}

func sigmoid(v float64) float64 {
	if v >= 0 {
		return 1 / (1 + math.Exp(-v))
	}
	e := math.Exp(v)
	return e / (1 + e)
}

func softplus(v float64) float64 {
	if v > 0 {
		return v + math.Log1p(math.Exp(-v))
	}
	return math.Log1p(math.Exp(v))
}

// Softmax computes softmax along the specified dimension.
// Softmax(x_i) = exp(x_i - max) / sum(exp(x_j - max)) for all j in dimension.
func (cpu *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	dim = normalizeDim("softmax", dim, len(x.Shape()))
	result := cpu.alloc("softmax", x.Shape(), x.DType())
	outer, size, inner := splitAt(x.Shape(), dim)

	switch x.DType() {
	case tensor.Float32:
		softmaxKernel(view[float32](result), view[float32](x), outer, size, inner)
	case tensor.Float64:
		softmaxKernel(view[float64](result), view[float64](x), outer, size, inner)
	default:
		panic(fmt.Sprintf("softmax: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

func softmaxKernel[T float](dst, src []T, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*size*inner + in

			maxVal := math.Inf(-1)
			for k := 0; k < size; k++ {
				maxVal = math.Max(maxVal, float64(src[base+k*inner]))
			}

			var sum float64
			for k := 0; k < size; k++ {
				e := math.Exp(float64(src[base+k*inner]) - maxVal)
				dst[base+k*inner] = T(e)
				sum += e
			}

			for k := 0; k < size; k++ {
				dst[base+k*inner] = T(float64(dst[base+k*inner]) / sum)
			}
		}
	}
}
