// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend for tensor operations.
//
// Kernels never mutate their inputs and split work over goroutines once a
// tensor is large enough. Broadcasting follows NumPy rules.
//
//	backend := cpu.New()
//	ent := tensor.Uniform[float32](tensor.Shape{100, 64}, -0.2, 0.2, random.New(0), backend)
package cpu
