package nn

import (
	"fmt"

	"github.com/fusionlab-ml/fusionlab/internal/tensor"
)

// ScaledDotProductAttention computes
//
//	weights = softmax(Q @ K^T * scale)
//	output  = dropout(weights) @ V
//
// for each leading (batch, head) pair independently.
//
// Parameters:
//   - query: [batch, heads, seq_q, head_dim]
//   - key:   [batch, heads, seq_k, head_dim]
//   - value: [batch, heads, seq_k, head_dim]
//   - scale: multiplier applied to the raw scores
//   - dropout: applied to the weights before aggregation; may be nil
//
// Returns the attended values [batch, heads, seq_q, head_dim] and the
// normalized weights [batch, heads, seq_q, seq_k] taken before dropout.
func ScaledDotProductAttention[B tensor.Backend](
	query, key, value *tensor.Tensor[float32, B],
	scale float64,
	dropout *Dropout[B],
) (*tensor.Tensor[float32, B], *tensor.Tensor[float32, B]) {
	validateAttentionInputs(query, key, value)

	scores := query.BatchMatMul(key.Transpose(0, 1, 3, 2)).MulScalar(scale)
	weights := scores.Softmax(-1)

	attn := weights
	if dropout != nil {
		attn = dropout.Forward(weights)
	}
	return attn.BatchMatMul(value), weights
}

func validateAttentionInputs[B tensor.Backend](query, key, value *tensor.Tensor[float32, B]) {
	for name, t := range map[string]*tensor.Tensor[float32, B]{"query": query, "key": key, "value": value} {
		if len(t.Shape()) != 4 {
			panic(fmt.Sprintf("ScaledDotProductAttention: %s must be 4D [batch, heads, seq, head_dim], got %v", name, t.Shape()))
		}
	}
	if query.Shape()[3] != key.Shape()[3] {
		panic("ScaledDotProductAttention: query and key must have same head_dim")
	}
	if key.Shape()[2] != value.Shape()[2] {
		panic("ScaledDotProductAttention: key and value must have same seq length")
	}
}
