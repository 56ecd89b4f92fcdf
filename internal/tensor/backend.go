package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations and panic on
// shape or dtype misuse, the same way indexing a slice out of range does.
//
// Implementations:
//   - CPU: pure Go kernels (internal/backend/cpu)
type Backend interface {
	// Element-wise binary operations with NumPy broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// BatchMatMul performs batched matrix multiplication.
	// [..., M, K] @ [..., K, N] -> [..., M, N], leading dims must match.
	BatchMatMul(a, b *RawTensor) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Scalar operations (element-wise with scalar).
	MulScalar(x *RawTensor, scalar any) *RawTensor
	AddScalar(x *RawTensor, scalar any) *RawTensor
	SubScalar(x *RawTensor, scalar any) *RawTensor
	DivScalar(x *RawTensor, scalar any) *RawTensor
	ClampMin(x *RawTensor, minValue any) *RawTensor

	// Math operations (element-wise, float only).
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Sqrt(x *RawTensor) *RawTensor
	Cos(x *RawTensor) *RawTensor
	Sin(x *RawTensor) *RawTensor
	Abs(x *RawTensor) *RawTensor

	// Activation functions.
	ReLU(x *RawTensor) *RawTensor
	Sigmoid(x *RawTensor) *RawTensor
	LogSigmoid(x *RawTensor) *RawTensor
	Softplus(x *RawTensor) *RawTensor
	Softmax(x *RawTensor, dim int) *RawTensor

	// Reduction operations.
	Sum(x *RawTensor) *RawTensor                            // total sum (scalar result)
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor  // sum along dimension
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor // mean along dimension

	// Manipulation operations.
	Cat(tensors []*RawTensor, dim int) *RawTensor
	Chunk(x *RawTensor, n, dim int) []*RawTensor
	Unsqueeze(x *RawTensor, dim int) *RawTensor
	Squeeze(x *RawTensor, dim int) *RawTensor

	// Embedding gathers rows of a 2D weight by integer ids of any shape.
	Embedding(weight, indices *RawTensor) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
