// Copyright 2025 Fusionlab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/fusionlab-ml/fusionlab/internal/backend/cpu"
	"github.com/fusionlab-ml/fusionlab/internal/parallel"
	"github.com/fusionlab-ml/fusionlab/tensor"
)

// Backend is the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Option configures a Backend.
type Option = internalcpu.Option

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a CPU backend that uses every CPU for batched kernels.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}

// WithWorkers limits batched kernels to n goroutines. n <= 1 runs them on
// the calling goroutine.
func WithWorkers(n int) Option {
	if n <= 1 {
		return internalcpu.WithParallel(parallel.Serial())
	}
	return internalcpu.WithParallel(parallel.Config{Enabled: true, NumWorkers: n, MinChunkSize: 1})
}

// WithName overrides the name reported by Backend.Name.
func WithName(name string) Option {
	return internalcpu.WithName(name)
}
