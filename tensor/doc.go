// Copyright 2025 Fusionlab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensors for fusionlab.
//
// # Overview
//
// Tensors are the data every fusionlab layer consumes and produces:
//   - Generic type-safe tensors (Tensor[T, B]) over float32, float64 and int32
//   - NumPy-style broadcasting for element-wise operations
//   - Zero-copy reshapes and first-axis views
//   - Pluggable compute backends
//
// # Basic Usage
//
//	import (
//	    "github.com/fusionlab-ml/fusionlab/backend/cpu"
//	    "github.com/fusionlab-ml/fusionlab/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{3, 4}, backend)
//	    z := x.MatMul(y) // [2, 4]
//	}
//
// # Shape Operations
//
// Reshape and Transpose express head splitting without a pattern language:
//
//	q := x.Reshape(batch, tokens, heads, headDim).Transpose(0, 2, 1, 3)
//
// Reshape accepts a single -1 to infer one dimension.
//
// # Errors
//
// Operations on incompatible shapes or dtypes panic with a message naming
// the operation. Constructors such as FromSlice return errors instead.
package tensor
