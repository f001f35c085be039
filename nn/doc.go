// Copyright 2025 Fusionlab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks for fusionlab.
//
// # Overview
//
// The central block is SelfAttention, the scaled multi-head self-attention
// used by ViT-style encoders. Around it sit the pieces it is built from:
//   - Linear: fully connected layer (y = x @ W.T + b)
//   - Dropout: inverted dropout, active only in training mode
//   - Embedding: token id lookup table
//   - ScaledDotProductAttention: the per-head attention kernel
//
// # Basic Usage
//
//	import (
//	    "github.com/fusionlab-ml/fusionlab/backend/cpu"
//	    "github.com/fusionlab-ml/fusionlab/nn"
//	    "github.com/fusionlab-ml/fusionlab/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    attn, err := nn.NewSelfAttention(nn.SelfAttentionConfig{
//	        HiddenSize:  768,
//	        NumHeads:    12,
//	        DropoutRate: 0.1,
//	        SaveAttn:    true,
//	    }, backend)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    x := tensor.Randn[float32](tensor.Shape{2, 197, 768}, nil, backend)
//	    y := attn.Forward(x)          // [2, 197, 768]
//	    a := attn.AttentionWeights()  // [2, 12, 197, 197]
//	}
//
// # Training and Inference
//
// Blocks start in inference mode, where dropout is the identity. Call
// SetTraining(true) to enable it.
//
// # Attention Weights
//
// With SaveAttn set, Forward keeps a copy of the latest normalized weights,
// readable through AttentionWeights. Concurrent callers that need the
// weights of their own call should use ForwardWithWeights, which returns
// them and leaves the block untouched.
package nn
