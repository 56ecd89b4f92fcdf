// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/graph4kg/internal/tensor"
)

// DType is a constraint for tensor element types.
type DType = tensor.DType

// Float is the constraint for floating point element types.
type Float = tensor.Float

// DataType is the runtime element type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
)

// Device is where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU  Device = tensor.CPU
	CUDA Device = tensor.CUDA
)

// Shape is the dimensions of a tensor.
type Shape = tensor.Shape

// RawTensor is the untyped storage behind a Tensor.
type RawTensor = tensor.RawTensor

// Backend executes tensor operations on a device.
type Backend = tensor.Backend

// Source yields uniform float64 values in [0, 1).
type Source = tensor.Source

// Tensor is a typed tensor bound to a backend.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// FromSlice creates a tensor holding a copy of data.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice(data, shape, b)
}

// Zeros creates a zero-filled tensor.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T](shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T](shape, b)
}

// Full creates a tensor filled with value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full(shape, value, b)
}

// Rand creates a tensor of values drawn uniformly from [0, 1).
func Rand[T Float, B Backend](shape Shape, src Source, b B) *Tensor[T, B] {
	return tensor.Rand[T](shape, src, b)
}

// Uniform creates a tensor of values drawn uniformly from [low, high),
// in row-major order.
func Uniform[T Float, B Backend](shape Shape, low, high float64, src Source, b B) *Tensor[T, B] {
	return tensor.Uniform[T](shape, low, high, src, b)
}

// Arange creates the 1D tensor [start, end).
func Arange[T DType, B Backend](start, end int, b B) *Tensor[T, B] {
	return tensor.Arange[T](start, end, b)
}

// Cat concatenates tensors along dim.
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	return tensor.Cat(tensors, dim)
}
