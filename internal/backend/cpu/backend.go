// Package cpu implements the pure Go CPU backend for tensor operations.
package cpu

import (
	"fmt"

	"github.com/born-ml/graph4kg/internal/parallel"
	"github.com/born-ml/graph4kg/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
// Large element-wise, reduction and matmul loops fan out over goroutines.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a new CPU backend with the default parallel configuration.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with an explicit parallel configuration.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// alloc creates a zeroed result tensor, panicking with the op name on failure.
func (cpu *CPUBackend) alloc(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

// number is the set of element types the kernels are instantiated for.
type number interface {
	float32 | float64 | int32 | int64
}

// float is the set of element types supported by math kernels.
type float interface {
	float32 | float64
}

// view returns the typed slice of a raw tensor.
func view[T number](r *tensor.RawTensor) []T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(r.AsFloat32()).([]T)
	case float64:
		return any(r.AsFloat64()).([]T)
	case int32:
		return any(r.AsInt32()).([]T)
	default:
		return any(r.AsInt64()).([]T)
	}
}

// castScalar converts a scalar passed through the Backend interface to T.
func castScalar[T number](op string, v any) T {
	switch s := v.(type) {
	case float32:
		return T(s)
	case float64:
		return T(s)
	case int:
		return T(s)
	case int32:
		return T(s)
	case int64:
		return T(s)
	default:
		panic(fmt.Sprintf("%s: unsupported scalar type %T", op, v))
	}
}

// normalizeDim resolves a negative dim, panicking with the op name when out of range.
func normalizeDim(op string, dim, ndim int) int {
	d, err := tensor.NormalizeDim(dim, ndim)
	if err != nil {
		panic(fmt.Sprintf("%s: dimension %d: %v", op, dim, err))
	}
	return d
}

// splitAt decomposes a shape around dim into (outer, size, inner) extents so
// that element (o, k, i) lives at flat index (o*size+k)*inner+i.
func splitAt(shape tensor.Shape, dim int) (outer, size, inner int) {
	outer, inner = 1, 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	return outer, shape[dim], inner
}
