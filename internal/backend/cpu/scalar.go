package cpu

import (
	"fmt"

	"github.com/born-ml/graph4kg/internal/parallel"
	"github.com/born-ml/graph4kg/internal/tensor"
)

// Scalar operations - element-wise operations with a scalar value.

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.withScalar(opMul, x, scalar)
}

// AddScalar adds a scalar value to each element of the tensor.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.withScalar(opAdd, x, scalar)
}

// SubScalar subtracts a scalar value from each element of the tensor.
func (cpu *CPUBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.withScalar(opSub, x, scalar)
}

// DivScalar divides each element of the tensor by a scalar value.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.withScalar(opDiv, x, scalar)
}

func (cpu *CPUBackend) withScalar(op binaryOp, x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	name := op.String() + "Scalar"
	result := cpu.alloc(name, x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		scalarKernel(binaryFunc[float32](op), view[float32](result), view[float32](x), castScalar[float32](name, scalar), cpu.parallel)
	case tensor.Float64:
		scalarKernel(binaryFunc[float64](op), view[float64](result), view[float64](x), castScalar[float64](name, scalar), cpu.parallel)
	case tensor.Int32:
		scalarKernel(binaryFunc[int32](op), view[int32](result), view[int32](x), castScalar[int32](name, scalar), cpu.parallel)
	case tensor.Int64:
		scalarKernel(binaryFunc[int64](op), view[int64](result), view[int64](x), castScalar[int64](name, scalar), cpu.parallel)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %v", name, x.DType()))
	}

	return result
}

func scalarKernel[T number](f func(x, y T) T, dst, src []T, s T, cfg parallel.Config) {
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = f(src[i], s)
		}
	}, cfg)
}

// ClampMin replaces elements below minValue with minValue.
func (cpu *CPUBackend) ClampMin(x *tensor.RawTensor, minValue any) *tensor.RawTensor {
	result := cpu.alloc("clampMin", x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		clampMinKernel(view[float32](result), view[float32](x), castScalar[float32]("clampMin", minValue), cpu.parallel)
	case tensor.Float64:
		clampMinKernel(view[float64](result), view[float64](x), castScalar[float64]("clampMin", minValue), cpu.parallel)
	case tensor.Int32:
		clampMinKernel(view[int32](result), view[int32](x), castScalar[int32]("clampMin", minValue), cpu.parallel)
	case tensor.Int64:
		clampMinKernel(view[int64](result), view[int64](x), castScalar[int64]("clampMin", minValue), cpu.parallel)
	default:
		panic(fmt.Sprintf("clampMin: unsupported dtype %v", x.DType()))
	}

	return result
}

func clampMinKernel[T number](dst, src []T, lo T, cfg parallel.Config) {
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = max(src[i], lo)
		}
	}, cfg)
}
