// Copyright 2025 Fusionlab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/fusionlab-ml/fusionlab/internal/nn"
	"github.com/fusionlab-ml/fusionlab/internal/tensor"
)

// Module is the interface shared by layers with a float32 forward pass.
type Module[B tensor.Backend] = nn.Module[B]

// ModeSetter is implemented by modules that behave differently in training.
type ModeSetter = nn.ModeSetter

// Parameter is a named weight tensor owned by a module.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// CountParameters returns the total number of elements across params.
func CountParameters[B tensor.Backend](params []*Parameter[B]) int {
	return nn.CountParameters(params)
}

// Configuration errors returned by constructors. Check with errors.Is.
var (
	ErrInvalidConfig      = nn.ErrInvalidConfig
	ErrInvalidDropoutRate = nn.ErrInvalidDropoutRate
	ErrHeadsNotDivisible  = nn.ErrHeadsNotDivisible
)

// Attention

// SelfAttentionConfig configures a SelfAttention block.
type SelfAttentionConfig = nn.SelfAttentionConfig

// SelfAttention is a scaled multi-head self-attention block.
type SelfAttention[B tensor.Backend] = nn.SelfAttention[B]

// NewSelfAttention validates cfg and creates the block.
//
// Example:
//
//	attn, err := nn.NewSelfAttention(nn.SelfAttentionConfig{HiddenSize: 64, NumHeads: 8}, backend)
func NewSelfAttention[B tensor.Backend](cfg SelfAttentionConfig, backend B) (*SelfAttention[B], error) {
	return nn.NewSelfAttention(cfg, backend)
}

// ScaledDotProductAttention computes softmax(Q @ K.T * scale) @ V over
// [batch, heads, seq, head_dim] inputs. It returns the output and the
// weights taken before dropout; dropout may be nil.
func ScaledDotProductAttention[B tensor.Backend](
	query, key, value *tensor.Tensor[float32, B],
	scale float64,
	dropout *Dropout[B],
) (*tensor.Tensor[float32, B], *tensor.Tensor[float32, B]) {
	return nn.ScaledDotProductAttention(query, key, value, scale, dropout)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a linear layer with Xavier-uniform weights and a zero
// bias. A nil rng uses the package-level source.
//
// Example:
//
//	layer := nn.NewLinear(784, 128, true, nil, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, useBias bool, rng *rand.Rand, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, useBias, rng, backend)
}

// Dropout zeroes elements with a fixed probability while training.
type Dropout[B tensor.Backend] = nn.Dropout[B]

// NewDropout creates a dropout layer in inference mode.
func NewDropout[B tensor.Backend](rate float32, rng *rand.Rand, backend B) (*Dropout[B], error) {
	return nn.NewDropout(rate, rng, backend)
}

// Embedding maps int32 token ids to learned vectors.
type Embedding[B tensor.Backend] = nn.Embedding[B]

// NewEmbedding creates a [numEmbeddings, embeddingDim] table initialized
// from N(0, 1).
func NewEmbedding[B tensor.Backend](numEmbeddings, embeddingDim int, rng *rand.Rand, backend B) *Embedding[B] {
	return nn.NewEmbedding(numEmbeddings, embeddingDim, rng, backend)
}

// Initialization

// Xavier returns a tensor drawn from the Xavier/Glorot uniform distribution.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, rng, backend)
}
