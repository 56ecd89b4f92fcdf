// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package random provides a seeded generator whose stream matches NumPy's
// legacy global generator.
package random

import (
	"github.com/born-ml/graph4kg/internal/random"
)

// Generator is a MT19937 generator. It implements tensor.Source.
// A Generator is not safe for concurrent use.
type Generator = random.Generator

// New returns a generator equivalent to np.random.seed(seed).
func New(seed uint32) *Generator {
	return random.New(seed)
}
