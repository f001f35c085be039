package tensor_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusionlab-ml/fusionlab/backend/cpu"
	"github.com/fusionlab-ml/fusionlab/tensor"
)

func TestCreation(t *testing.T) {
	backend := cpu.New()

	z := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
	assert.Equal(t, tensor.Shape{2, 3}, z.Shape())
	assert.Equal(t, tensor.Float32, z.DType())
	assert.Equal(t, tensor.CPU, z.Device())

	o := tensor.Ones[float64](tensor.Shape{4}, backend)
	assert.Equal(t, []float64{1, 1, 1, 1}, o.Data())

	f := tensor.Full[int32](tensor.Shape{2}, 7, backend)
	assert.Equal(t, []int32{7, 7}, f.Data())

	a := tensor.Randn[float32](tensor.Shape{8}, rand.New(rand.NewSource(3)), backend)
	b := tensor.Randn[float32](tensor.Shape{8}, rand.New(rand.NewSource(3)), backend)
	assert.Equal(t, a.Data(), b.Data())

	u := tensor.Rand[float64](tensor.Shape{100}, rand.New(rand.NewSource(4)), backend)
	for _, v := range u.Data() {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestFromSlice(t *testing.T) {
	backend := cpu.New()
	src := []float32{1, 2, 3, 4, 5, 6}

	x, err := tensor.FromSlice(src, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)
	src[0] = 100
	assert.Equal(t, float32(1), x.At(0, 0))
	assert.Equal(t, float32(6), x.At(1, 2))

	_, err = tensor.FromSlice(src, tensor.Shape{4, 2}, backend)
	assert.Error(t, err)
}

func TestHeadSplitRoundTrip(t *testing.T) {
	backend := cpu.New()
	const batch, tokens, heads, headDim = 2, 3, 4, 5

	x := tensor.Randn[float32](tensor.Shape{batch, tokens, heads * headDim}, rand.New(rand.NewSource(1)), backend)
	split := x.Reshape(batch, tokens, heads, headDim).Transpose(0, 2, 1, 3)
	require.Equal(t, tensor.Shape{batch, heads, tokens, headDim}, split.Shape())
	assert.Equal(t, x.At(1, 2, 3*headDim+4), split.At(1, 3, 2, 4))

	merged := split.Transpose(0, 2, 1, 3).Reshape(batch, tokens, -1)
	assert.Equal(t, x.Data(), merged.Data())
}

func TestBackendsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	fast := cpu.New()
	ref := tensor.NewReferenceBackend()

	a := tensor.Randn[float32](tensor.Shape{3, 4, 5}, rng, fast)
	b := tensor.Randn[float32](tensor.Shape{3, 5, 2}, rng, fast)
	got := a.BatchMatMul(b).Softmax(-1)

	ra := tensor.New[float32](a.Raw(), ref)
	rb := tensor.New[float32](b.Raw(), ref)
	want := ra.BatchMatMul(rb).Softmax(-1)

	require.Equal(t, want.Shape(), got.Shape())
	for i := range want.Data() {
		assert.InDelta(t, want.Data()[i], got.Data()[i], 1e-5)
	}
}

func TestShapeHelpers(t *testing.T) {
	shape, broadcast, err := tensor.BroadcastShapes(tensor.Shape{3, 1}, tensor.Shape{3, 4})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 4}, shape)
	assert.True(t, broadcast)

	assert.Equal(t, tensor.Shape{2, 6}, tensor.InferShape([]int{2, -1}, 12))

	raw, err := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Int32, tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, 16, raw.ByteSize())
}
