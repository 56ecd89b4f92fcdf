package cpu

import (
	"fmt"

	"github.com/born-ml/graph4kg/internal/tensor"
)

// Shape manipulation kernels work on raw bytes, so every dtype shares one
// implementation. View operations (Reshape, Unsqueeze, Squeeze) share the
// input buffer, which is safe because kernels never mutate their inputs.

// Reshape returns a tensor with the same data but different shape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result, err := t.WithShape(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return result
}

// Transpose permutes the tensor's dimensions. With no axes all dimensions
// are reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}
	result := cpu.alloc("transpose", newShape, t.DType())

	elem := t.DType().Size()
	src, dst := t.Data(), result.Data()
	srcStrides := t.Strides()
	dstStrides := newShape.ComputeStrides()
	coords := make([]int, ndim)

	for i := 0; i < t.NumElements(); i++ {
		rem := i
		for d := 0; d < ndim; d++ {
			coords[d] = rem / srcStrides[d]
			rem %= srcStrides[d]
		}
		dstIdx := 0
		for dstDim, srcDim := range axes {
			dstIdx += coords[srcDim] * dstStrides[dstDim]
		}
		copy(dst[dstIdx*elem:(dstIdx+1)*elem], src[i*elem:(i+1)*elem])
	}

	return result
}

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same shape except along the concatenation dimension.
// Supports negative dim indexing (-1 = last dimension).
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	shape := tensors[0].Shape()
	ndim := len(shape)
	dtype := tensors[0].DType()
	dim = normalizeDim("cat", dim, ndim)

	totalDim := 0
	for i, t := range tensors {
		tShape := t.Shape()
		if len(tShape) != ndim {
			panic(fmt.Sprintf("cat: tensor %d has %d dimensions, expected %d", i, len(tShape), ndim))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, expected %s", i, t.DType(), dtype))
		}
		for d := 0; d < ndim; d++ {
			if d == dim {
				totalDim += tShape[d]
			} else if tShape[d] != shape[d] {
				panic(fmt.Sprintf("cat: tensor %d dimension %d is %d, expected %d", i, d, tShape[d], shape[d]))
			}
		}
	}

	outShape := shape.Clone()
	outShape[dim] = totalDim
	result := cpu.alloc("cat", outShape, dtype)

	elem := dtype.Size()
	outer, _, inner := splitAt(outShape, dim)
	dst := result.Data()
	dstRow := totalDim * inner * elem

	offset := 0
	for _, t := range tensors {
		rowBytes := t.Shape()[dim] * inner * elem
		src := t.Data()
		for o := 0; o < outer; o++ {
			copy(dst[o*dstRow+offset:o*dstRow+offset+rowBytes], src[o*rowBytes:(o+1)*rowBytes])
		}
		offset += rowBytes
	}

	return result
}

// Chunk splits the tensor into n equal parts along the specified dimension.
// The dimension size must be divisible by n.
func (cpu *CPUBackend) Chunk(x *tensor.RawTensor, n, dim int) []*tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("chunk", dim, len(shape))
	if n <= 0 {
		panic(fmt.Sprintf("chunk: number of chunks must be positive, got %d", n))
	}
	if shape[dim]%n != 0 {
		panic(fmt.Sprintf("chunk: dimension %d of size %d is not divisible by %d", dim, shape[dim], n))
	}

	partShape := shape.Clone()
	partShape[dim] = shape[dim] / n

	elem := x.DType().Size()
	outer, size, inner := splitAt(shape, dim)
	srcRow := size * inner * elem
	partRow := partShape[dim] * inner * elem
	src := x.Data()

	parts := make([]*tensor.RawTensor, n)
	for p := range parts {
		part := cpu.alloc("chunk", partShape, x.DType())
		dst := part.Data()
		for o := 0; o < outer; o++ {
			start := o*srcRow + p*partRow
			copy(dst[o*partRow:(o+1)*partRow], src[start:start+partRow])
		}
		parts[p] = part
	}

	return parts
}

// Unsqueeze adds a dimension of size 1 at the specified position.
// Negative dims count from the end of the output shape (-1 appends).
func (cpu *CPUBackend) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("unsqueeze", dim, len(shape)+1)

	newShape := make(tensor.Shape, 0, len(shape)+1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, shape[dim:]...)

	return cpu.Reshape(x, newShape)
}

// Squeeze removes a dimension of size 1 at the specified position.
func (cpu *CPUBackend) Squeeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("squeeze", dim, len(shape))
	if shape[dim] != 1 {
		panic(fmt.Sprintf("squeeze: dimension %d has size %d, expected 1", dim, shape[dim]))
	}

	newShape := make(tensor.Shape, 0, len(shape)-1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, shape[dim+1:]...)

	return cpu.Reshape(x, newShape)
}
