package cpu

import (
	"fmt"

	"github.com/born-ml/graph4kg/internal/parallel"
	"github.com/born-ml/graph4kg/internal/tensor"
)

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
//
// Example:
//
//	y := backend.SumDim(x, -1, true)   // [2, 3, 4] -> [2, 3, 1]
//	z := backend.SumDim(x, -1, false)  // [2, 3, 4] -> [2, 3]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("sumdim", dim, len(shape))
	result := cpu.alloc("sumdim", reducedShape(shape, dim, keepDim), x.DType())
	outer, size, inner := splitAt(shape, dim)

	switch x.DType() {
	case tensor.Float32:
		sumDimKernel(view[float32](result), view[float32](x), outer, size, inner, cpu.parallel)
	case tensor.Float64:
		sumDimKernel(view[float64](result), view[float64](x), outer, size, inner, cpu.parallel)
	case tensor.Int32:
		sumDimKernel(view[int32](result), view[int32](x), outer, size, inner, cpu.parallel)
	case tensor.Int64:
		sumDimKernel(view[int64](result), view[int64](x), outer, size, inner, cpu.parallel)
	default:
		panic(fmt.Sprintf("sumdim: unsupported dtype %s", x.DType()))
	}

	return result
}

// MeanDim computes the mean of tensor elements along the specified dimension.
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	if !x.DType().IsFloat() {
		panic(fmt.Sprintf("meandim: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}
	d := normalizeDim("meandim", dim, len(x.Shape()))
	return cpu.DivScalar(cpu.SumDim(x, d, keepDim), float64(x.Shape()[d]))
}

func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	if keepDim {
		out := shape.Clone()
		out[dim] = 1
		return out
	}
	out := make(tensor.Shape, 0, len(shape)-1)
	out = append(out, shape[:dim]...)
	return append(out, shape[dim+1:]...)
}

func sumDimKernel[T number](dst, src []T, outer, size, inner int, cfg parallel.Config) {
	parallel.ForRange(outer*inner, func(start, end int) {
		for j := start; j < end; j++ {
			o, in := j/inner, j%inner
			base := o*size*inner + in
			var acc T
			for k := 0; k < size; k++ {
				acc += src[base+k*inner]
			}
			dst[j] = acc
		}
	}, cfg)
}

// Sum computes the total sum of all elements in the tensor (scalar result).
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.alloc("sum", tensor.Shape{}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		view[float32](result)[0] = sumAll(view[float32](x))
	case tensor.Float64:
		view[float64](result)[0] = sumAll(view[float64](x))
	case tensor.Int32:
		view[int32](result)[0] = sumAll(view[int32](x))
	case tensor.Int64:
		view[int64](result)[0] = sumAll(view[int64](x))
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}

	return result
}

func sumAll[T number](src []T) T {
	var sum T
	for _, v := range src {
		sum += v
	}
	return sum
}
