// Copyright 2025 Fusionlab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend.
//
// Matrix products run through gonum's BLAS routines; batched products are
// spread over a worker pool, one task per leading (batch, head) slice.
// Element-wise operations follow NumPy broadcasting, and softmax subtracts
// the row maximum before exponentiating.
//
//	import (
//	    "github.com/fusionlab-ml/fusionlab/backend/cpu"
//	    "github.com/fusionlab-ml/fusionlab/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    attn, err := nn.NewSelfAttention(nn.SelfAttentionConfig{HiddenSize: 64, NumHeads: 4}, backend)
//	    ...
//	}
//
// Use WithWorkers(1) to keep every kernel on the calling goroutine.
package cpu
