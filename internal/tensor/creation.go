package tensor

// Source yields uniformly distributed float64 values in [0, 1).
// internal/random provides a NumPy-compatible implementation.
type Source interface {
	Float64() float64
}

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	raw, err := NewRaw(shape, inferDataType[T](), b.Device())
	if err != nil {
		panic(err) // Shape validation should prevent this
	}
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, T(1), b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float64](Shape{3, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Rand creates a tensor of values drawn from src, uniformly distributed in
// [0, 1). Values are drawn in row-major order, so a NumPy-compatible source
// seeded like np.random.seed reproduces np.random.random(shape).
func Rand[T Float, B Backend](shape Shape, src Source, b B) *Tensor[T, B] {
	return Uniform[T, B](shape, 0, 1, src, b)
}

// Uniform creates a tensor of values uniformly distributed in [low, high).
//
// Example:
//
//	emb := tensor.Uniform[float32](Shape{100, 64}, -0.1, 0.1, src, backend)
func Uniform[T Float, B Backend](shape Shape, low, high float64, src Source, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	span := high - low
	for i := range data {
		data[i] = T(low + span*src.Float64())
	}
	return t
}

// Arange creates a 1D tensor with values start, start+1, ..., end-1.
//
// Example:
//
//	ids := tensor.Arange[int64](0, 10, backend) // [0, 1, ..., 9]
func Arange[T DType, B Backend](start, end int, b B) *Tensor[T, B] {
	if end <= start {
		panic("arange: end must be greater than start")
	}
	t := Zeros[T, B](Shape{end - start}, b)
	data := t.Data()
	for i := range data {
		data[i] = T(start + i)
	}
	return t
}
