package backend_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusionlab-ml/fusionlab/backend"
	"github.com/fusionlab-ml/fusionlab/nn"
	"github.com/fusionlab-ml/fusionlab/tensor"
)

func TestResolveBuiltins(t *testing.T) {
	for _, name := range []string{backend.CPU, backend.CPUSerial, backend.Reference} {
		b, err := backend.Resolve(name)
		require.NoError(t, err)
		assert.Equal(t, name, b.Name())
	}
	assert.Subset(t, backend.Names(), []string{"cpu", "cpu-serial", "reference"})
}

func TestResolveUnknown(t *testing.T) {
	_, err := backend.Resolve("cuda")
	assert.True(t, errors.Is(err, backend.ErrUnknownBackend))
}

func TestResolvedBackendDrivesAttention(t *testing.T) {
	b, err := backend.Resolve(backend.CPUSerial)
	require.NoError(t, err)

	attn, err := nn.NewSelfAttention(nn.SelfAttentionConfig{HiddenSize: 8, NumHeads: 2}, b)
	require.NoError(t, err)

	x := tensor.Ones[float32](tensor.Shape{1, 3, 8}, b)
	assert.Equal(t, tensor.Shape{1, 3, 8}, attn.Forward(x).Shape())
}
