package cpu

import (
	"fmt"

	"github.com/born-ml/graph4kg/internal/parallel"
	"github.com/born-ml/graph4kg/internal/tensor"
)

// BatchMatMul performs batched matrix multiplication.
//
// For 3D: [B, M, K] @ [B, K, N] -> [B, M, N]
// For 4D: [B, H, M, K] @ [B, H, K, N] -> [B, H, M, N]
//
// The last two dimensions are treated as matrix dimensions.
// All leading dimensions must match (batch dimensions).
func (cpu *CPUBackend) BatchMatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()
	ndim := len(aShape)

	if ndim < 2 {
		panic(fmt.Sprintf("BatchMatMul: inputs must be at least 2D, got %dD", ndim))
	}
	if len(bShape) != ndim {
		panic(fmt.Sprintf("BatchMatMul: dimension mismatch, got %dD and %dD", ndim, len(bShape)))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("BatchMatMul: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}
	for i := 0; i < ndim-2; i++ {
		if aShape[i] != bShape[i] {
			panic(fmt.Sprintf("BatchMatMul: batch dimension mismatch at dim %d: %d vs %d", i, aShape[i], bShape[i]))
		}
	}

	m, k := aShape[ndim-2], aShape[ndim-1]
	n := bShape[ndim-1]
	if k != bShape[ndim-2] {
		panic(fmt.Sprintf("BatchMatMul: inner dimension mismatch: %d vs %d", k, bShape[ndim-2]))
	}

	batchSize := 1
	for i := 0; i < ndim-2; i++ {
		batchSize *= aShape[i]
	}

	outShape := aShape.Clone()
	outShape[ndim-1] = n
	result := cpu.alloc("BatchMatMul", outShape, a.DType())

	switch a.DType() {
	case tensor.Float32:
		batchMatmulKernel(view[float32](result), view[float32](a), view[float32](b), batchSize, m, k, n, cpu.parallel)
	case tensor.Float64:
		batchMatmulKernel(view[float64](result), view[float64](a), view[float64](b), batchSize, m, k, n, cpu.parallel)
	default:
		panic(fmt.Sprintf("BatchMatMul: unsupported dtype %s", a.DType()))
	}

	return result
}

// batchMatmulKernel computes every output row (batch, i) independently using
// the i-k-j loop order so the inner loop walks both b and c contiguously.
func batchMatmulKernel[T float](c, a, b []T, batchSize, m, k, n int, cfg parallel.Config) {
	rowCfg := cfg
	rowCfg.MinChunkSize = max(1, cfg.MinChunkSize/max(1, k*n))

	parallel.ForRange(batchSize*m, func(start, end int) {
		for row := start; row < end; row++ {
			batch, i := row/m, row%m
			aRow := a[batch*m*k+i*k : batch*m*k+(i+1)*k]
			bMat := b[batch*k*n : (batch+1)*k*n]
			cRow := c[batch*m*n+i*n : batch*m*n+(i+1)*n]

			for kIdx, av := range aRow {
				bRow := bMat[kIdx*n : (kIdx+1)*n]
				for j, bv := range bRow {
					cRow[j] += av * bv
				}
			}
		}
	}, rowCfg)
}
