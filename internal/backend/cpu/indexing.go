package cpu

import (
	"fmt"

	"github.com/born-ml/graph4kg/internal/parallel"
	"github.com/born-ml/graph4kg/internal/tensor"
)

// Embedding performs embedding lookup: output[..., :] = weight[indices[...], :].
//
// Parameters:
//   - weight: [numEmbeddings, embeddingDim] float tensor
//   - indices: int32 or int64 ids of any shape
//
// Returns a tensor of shape indices.Shape() + [embeddingDim].
// Panics if an index is outside [0, numEmbeddings).
func (cpu *CPUBackend) Embedding(weight, indices *tensor.RawTensor) *tensor.RawTensor {
	wShape := weight.Shape()
	if len(wShape) != 2 {
		panic(fmt.Sprintf("embedding: weight must be 2D, got shape %v", wShape))
	}
	numEmbeddings, embeddingDim := wShape[0], wShape[1]

	ids := make([]int64, indices.NumElements())
	switch indices.DType() {
	case tensor.Int64:
		copy(ids, indices.AsInt64())
	case tensor.Int32:
		for i, v := range indices.AsInt32() {
			ids[i] = int64(v)
		}
	default:
		panic(fmt.Sprintf("embedding: indices must be int32 or int64, got %s", indices.DType()))
	}
	for i, id := range ids {
		if id < 0 || id >= int64(numEmbeddings) {
			panic(fmt.Sprintf("embedding: index %d at position %d out of range [0, %d)", id, i, numEmbeddings))
		}
	}

	outShape := append(indices.Shape().Clone(), embeddingDim)
	result := cpu.alloc("embedding", outShape, weight.DType())

	rowBytes := embeddingDim * weight.DType().Size()
	src, dst := weight.Data(), result.Data()
	parallel.ForRange(len(ids), func(start, end int) {
		for i := start; i < end; i++ {
			row := int(ids[i])
			copy(dst[i*rowBytes:(i+1)*rowBytes], src[row*rowBytes:(row+1)*rowBytes])
		}
	}, cpu.parallel)

	return result
}
