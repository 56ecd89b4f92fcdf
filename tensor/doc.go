// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor API of graph4kg.
//
// Tensors are generic over their element type and the backend executing
// their operations:
//
//	backend := cpu.New()
//	x := tensor.Uniform[float32](tensor.Shape{4, 8}, -1, 1, random.New(0), backend)
//	y := x.Mul(x).SumDim(-1, false)
//
// # Element Types
//
// float32 and float64 carry embeddings, scores and losses. int32 and int64
// carry entity and relation ids for embedding lookups.
//
// # Randomness
//
// Random constructors take a Source. The random package provides a
// generator whose stream matches NumPy's legacy seeding, so that
// initialisations are reproducible across implementations.
package tensor
