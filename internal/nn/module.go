// Package nn implements neural network building blocks for fusionlab.
//
// This package provides:
//   - Module: the interface every block implements
//   - Parameter: a named trainable tensor
//   - Linear, Dropout, Embedding: basic layers
//   - SelfAttention: scaled multi-head self-attention
package nn

import (
	"github.com/fusionlab-ml/fusionlab/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Blocks compose by holding other modules and forwarding their parameters:
//
//	attn, _ := nn.NewSelfAttention(nn.SelfAttentionConfig{HiddenSize: 64, NumHeads: 4}, backend)
//	y := attn.Forward(x)
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module for input.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters, including those of
	// nested modules. Modules without weights return an empty slice.
	Parameters() []*Parameter[B]
}

// ModeSetter is implemented by modules that behave differently while
// training, such as Dropout. Modules start in inference mode.
type ModeSetter interface {
	SetTraining(training bool)
	Training() bool
}
