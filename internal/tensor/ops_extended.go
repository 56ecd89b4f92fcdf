package tensor

// Extended tensor operations: typed wrappers for the scalar, math,
// activation and reduction kernels of the backend.

// MulScalar multiplies each element of the tensor by a scalar value.
func (t *Tensor[T, B]) MulScalar(scalar T) *Tensor[T, B] {
	return t.wrap(t.backend.MulScalar(t.raw, scalar))
}

// AddScalar adds a scalar value to each element of the tensor.
func (t *Tensor[T, B]) AddScalar(scalar T) *Tensor[T, B] {
	return t.wrap(t.backend.AddScalar(t.raw, scalar))
}

// SubScalar subtracts a scalar value from each element of the tensor.
func (t *Tensor[T, B]) SubScalar(scalar T) *Tensor[T, B] {
	return t.wrap(t.backend.SubScalar(t.raw, scalar))
}

// DivScalar divides each element of the tensor by a scalar value.
func (t *Tensor[T, B]) DivScalar(scalar T) *Tensor[T, B] {
	return t.wrap(t.backend.DivScalar(t.raw, scalar))
}

// Neg negates every element.
func (t *Tensor[T, B]) Neg() *Tensor[T, B] {
	return t.MulScalar(T(0) - T(1))
}

// RSubScalar computes scalar - t element-wise.
//
// Example:
//
//	score := dist.RSubScalar(gamma) // gamma - dist
func (t *Tensor[T, B]) RSubScalar(scalar T) *Tensor[T, B] {
	return t.Neg().AddScalar(scalar)
}

// ClampMin replaces every element smaller than minValue with minValue.
func (t *Tensor[T, B]) ClampMin(minValue T) *Tensor[T, B] {
	return t.wrap(t.backend.ClampMin(t.raw, minValue))
}

// Square computes x² element-wise.
func (t *Tensor[T, B]) Square() *Tensor[T, B] {
	return t.Mul(t)
}

// Exp computes the exponential (e^x) of each element.
func (t *Tensor[T, B]) Exp() *Tensor[T, B] {
	return t.wrap(t.backend.Exp(t.raw))
}

// Log computes the natural logarithm of each element.
func (t *Tensor[T, B]) Log() *Tensor[T, B] {
	return t.wrap(t.backend.Log(t.raw))
}

// Sqrt computes the square root of each element.
func (t *Tensor[T, B]) Sqrt() *Tensor[T, B] {
	return t.wrap(t.backend.Sqrt(t.raw))
}

// Cos computes the cosine of each element (input in radians).
func (t *Tensor[T, B]) Cos() *Tensor[T, B] {
	return t.wrap(t.backend.Cos(t.raw))
}

// Sin computes the sine of each element (input in radians).
func (t *Tensor[T, B]) Sin() *Tensor[T, B] {
	return t.wrap(t.backend.Sin(t.raw))
}

// Abs computes |x| element-wise.
func (t *Tensor[T, B]) Abs() *Tensor[T, B] {
	return t.wrap(t.backend.Abs(t.raw))
}

// ReLU computes max(x, 0) element-wise.
func (t *Tensor[T, B]) ReLU() *Tensor[T, B] {
	return t.wrap(t.backend.ReLU(t.raw))
}

// Sigmoid computes 1 / (1 + e^-x) element-wise.
func (t *Tensor[T, B]) Sigmoid() *Tensor[T, B] {
	return t.wrap(t.backend.Sigmoid(t.raw))
}

// LogSigmoid computes log(sigmoid(x)) element-wise in a numerically stable way.
func (t *Tensor[T, B]) LogSigmoid() *Tensor[T, B] {
	return t.wrap(t.backend.LogSigmoid(t.raw))
}

// Softplus computes log(1 + e^x) element-wise in a numerically stable way.
func (t *Tensor[T, B]) Softplus() *Tensor[T, B] {
	return t.wrap(t.backend.Softplus(t.raw))
}

// Softmax computes the softmax function along the specified dimension.
// Supports negative dimension indexing (-1 = last dimension).
func (t *Tensor[T, B]) Softmax(dim int) *Tensor[T, B] {
	return t.wrap(t.backend.Softmax(t.raw, dim))
}

// Sum reduces all elements to a scalar tensor.
func (t *Tensor[T, B]) Sum() *Tensor[T, B] {
	return t.wrap(t.backend.Sum(t.raw))
}

// Mean averages all elements into a scalar tensor.
func (t *Tensor[T, B]) Mean() *Tensor[T, B] {
	return t.Sum().DivScalar(T(t.NumElements()))
}

// SumDim sums along dim. With keepDim the reduced dimension stays with size 1.
func (t *Tensor[T, B]) SumDim(dim int, keepDim bool) *Tensor[T, B] {
	return t.wrap(t.backend.SumDim(t.raw, dim, keepDim))
}

// MeanDim averages along dim. With keepDim the reduced dimension stays with size 1.
func (t *Tensor[T, B]) MeanDim(dim int, keepDim bool) *Tensor[T, B] {
	return t.wrap(t.backend.MeanDim(t.raw, dim, keepDim))
}

// NormL2 computes the Euclidean norm along dim (the dimension is removed).
func (t *Tensor[T, B]) NormL2(dim int) *Tensor[T, B] {
	return t.Square().SumDim(dim, false).Sqrt()
}

// NormL1 computes the Manhattan norm along dim (the dimension is removed).
func (t *Tensor[T, B]) NormL1(dim int) *Tensor[T, B] {
	return t.Abs().SumDim(dim, false)
}
