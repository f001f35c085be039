package nn_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusionlab-ml/fusionlab/backend/cpu"
	"github.com/fusionlab-ml/fusionlab/nn"
	"github.com/fusionlab-ml/fusionlab/tensor"
)

var (
	_ nn.Module[*cpu.Backend] = (*nn.SelfAttention[*cpu.Backend])(nil)
	_ nn.Module[*cpu.Backend] = (*nn.Linear[*cpu.Backend])(nil)
	_ nn.Module[*cpu.Backend] = (*nn.Dropout[*cpu.Backend])(nil)
	_ nn.ModeSetter           = (*nn.SelfAttention[*cpu.Backend])(nil)
	_ nn.ModeSetter           = (*nn.Dropout[*cpu.Backend])(nil)
)

func TestSelfAttention_PublicAPI(t *testing.T) {
	backend := cpu.New()
	attn, err := nn.NewSelfAttention(nn.SelfAttentionConfig{
		HiddenSize: 32,
		NumHeads:   4,
		SaveAttn:   true,
		Rand:       rand.New(rand.NewSource(1)),
	}, backend)
	require.NoError(t, err)

	x := tensor.Randn[float32](tensor.Shape{2, 10, 32}, rand.New(rand.NewSource(2)), backend)
	y := attn.Forward(x)
	assert.Equal(t, x.Shape(), y.Shape())
	assert.Equal(t, tensor.Shape{2, 4, 10, 10}, attn.AttentionWeights().Shape())
	assert.Equal(t, 32*96+32*32+32, nn.CountParameters(attn.Parameters()))
}

func TestSelfAttention_ConfigErrors(t *testing.T) {
	backend := cpu.New()

	_, err := nn.NewSelfAttention(nn.SelfAttentionConfig{HiddenSize: 10, NumHeads: 3}, backend)
	assert.True(t, errors.Is(err, nn.ErrHeadsNotDivisible))

	_, err = nn.NewSelfAttention(nn.SelfAttentionConfig{HiddenSize: 8, NumHeads: 2, DropoutRate: 1.5}, backend)
	assert.True(t, errors.Is(err, nn.ErrInvalidDropoutRate))

	_, err = nn.NewSelfAttention(nn.SelfAttentionConfig{}, backend)
	assert.True(t, errors.Is(err, nn.ErrInvalidConfig))
}

func TestEmbeddingFeedsAttention(t *testing.T) {
	backend := cpu.New()
	emb := nn.NewEmbedding(10, 8, rand.New(rand.NewSource(1)), backend)
	attn, err := nn.NewSelfAttention(nn.SelfAttentionConfig{HiddenSize: 8, NumHeads: 2}, backend)
	require.NoError(t, err)

	ids, err := tensor.FromSlice([]int32{1, 4, 4, 9}, tensor.Shape{1, 4}, backend)
	require.NoError(t, err)

	out, weights := attn.ForwardWithWeights(emb.Forward(ids))
	assert.Equal(t, tensor.Shape{1, 4, 8}, out.Shape())

	// Tokens 1 and 2 share an id, so their attention rows match.
	for h := 0; h < 2; h++ {
		for k := 0; k < 4; k++ {
			assert.InDelta(t, weights.At(0, h, 1, k), weights.At(0, h, 2, k), 1e-6)
		}
	}
}

func TestScaledDotProductAttention(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(1))
	q := tensor.Randn[float32](tensor.Shape{1, 2, 3, 4}, rng, backend)

	drop, err := nn.NewDropout(0.5, rng, backend)
	require.NoError(t, err)

	out, weights := nn.ScaledDotProductAttention(q, q, q, 0.5, drop)
	assert.Equal(t, tensor.Shape{1, 2, 3, 4}, out.Shape())
	assert.Equal(t, tensor.Shape{1, 2, 3, 3}, weights.Shape())
}
