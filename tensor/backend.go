// Copyright 2025 Fusionlab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/fusionlab-ml/fusionlab/internal/tensor"

// Backend is the set of kernels a compute device provides to tensors.
//
// Implementations must not modify their inputs. Shape or dtype errors panic.
type Backend = tensor.Backend

// ReferenceBackend runs every operation in plain float64 loops. It is meant
// for checking other backends, not for speed.
type ReferenceBackend = tensor.ReferenceBackend

// NewReferenceBackend creates a ReferenceBackend.
func NewReferenceBackend() *ReferenceBackend {
	return tensor.NewReferenceBackend()
}
