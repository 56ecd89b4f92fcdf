package tensor

// Add performs element-wise addition with broadcasting.
//
// Example:
//
//	a := tensor.Ones[float32](Shape{3, 1}, backend)
//	b := tensor.Ones[float32](Shape{3, 5}, backend)
//	c := a.Add(b) // Shape: [3, 5] (broadcasted)
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.Add(t.raw, other.raw))
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.Sub(t.raw, other.raw))
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.Mul(t.raw, other.raw))
}

// Div performs element-wise division with broadcasting.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.Div(t.raw, other.raw))
}

// BatchMatMul performs batched matrix multiplication.
//
// Requirements:
//   - (B, M, K) @ (B, K, N) → (B, M, N)
//   - any number of matching leading batch dimensions
//
// Example:
//
//	a := tensor.Zeros[float64](Shape{2, 3, 4}, backend)
//	b := tensor.Zeros[float64](Shape{2, 4, 5}, backend)
//	c := a.BatchMatMul(b) // Shape: [2, 3, 5]
func (t *Tensor[T, B]) BatchMatMul(other *Tensor[T, B]) *Tensor[T, B] {
	return t.wrap(t.backend.BatchMatMul(t.raw, other.raw))
}

// Reshape returns a tensor with the same data but different shape.
// The new shape must have the same number of elements.
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	return t.wrap(t.backend.Reshape(t.raw, Shape(newShape)))
}

// Transpose permutes the tensor's dimensions.
// If axes is empty, all dimensions are reversed.
//
// Example:
//
//	x := tensor.Zeros[float32](Shape{2, 3, 4}, backend)
//	y := x.Transpose(0, 2, 1) // Shape: [2, 4, 3]
func (t *Tensor[T, B]) Transpose(axes ...int) *Tensor[T, B] {
	return t.wrap(t.backend.Transpose(t.raw, axes...))
}

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same shape except along the concatenation
// dimension. Supports negative dim indexing (-1 = last dimension).
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	raws := make([]*RawTensor, len(tensors))
	for i, t := range tensors {
		raws[i] = t.raw
	}
	return tensors[0].wrap(tensors[0].backend.Cat(raws, dim))
}

// Chunk splits the tensor into n equal parts along the specified dimension.
// The dimension size must be divisible by n.
//
// Example:
//
//	x := tensor.Zeros[float32](Shape{2, 3, 6}, backend)
//	parts := x.Chunk(2, -1) // 2 tensors of shape [2, 3, 3]
func (t *Tensor[T, B]) Chunk(n, dim int) []*Tensor[T, B] {
	rawParts := t.backend.Chunk(t.raw, n, dim)
	parts := make([]*Tensor[T, B], len(rawParts))
	for i, raw := range rawParts {
		parts[i] = t.wrap(raw)
	}
	return parts
}

// Unsqueeze adds a dimension of size 1 at the specified position.
func (t *Tensor[T, B]) Unsqueeze(dim int) *Tensor[T, B] {
	return t.wrap(t.backend.Unsqueeze(t.raw, dim))
}

// Squeeze removes a dimension of size 1 at the specified position.
func (t *Tensor[T, B]) Squeeze(dim int) *Tensor[T, B] {
	return t.wrap(t.backend.Squeeze(t.raw, dim))
}

// Embedding treats t as a [num, dim] weight table and gathers the rows named
// by indices. The result has shape indices.Shape() + [dim].
func (t *Tensor[T, B]) Embedding(indices *Tensor[int64, B]) *Tensor[T, B] {
	return t.wrap(t.backend.Embedding(t.raw, indices.raw))
}

func (t *Tensor[T, B]) wrap(raw *RawTensor) *Tensor[T, B] {
	return New[T, B](raw, t.backend)
}
