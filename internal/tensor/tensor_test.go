package tensor

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataType(t *testing.T) {
	assert.Equal(t, 4, Float32.Size())
	assert.Equal(t, 8, Float64.Size())
	assert.Equal(t, 4, Int32.Size())
	assert.Equal(t, "float64", Float64.String())
	assert.True(t, Float32.IsFloat())
	assert.False(t, Int32.IsFloat())
}

func TestFromSlice(t *testing.T) {
	b := NewReferenceBackend()

	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, b)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, x.Shape())
	assert.Equal(t, Float32, x.DType())
	assert.Equal(t, float32(6), x.At(1, 2))

	_, err = FromSlice([]float32{1, 2, 3}, Shape{2, 3}, b)
	assert.Error(t, err)
}

func TestTensor_AtSet(t *testing.T) {
	x := Zeros[float64](Shape{2, 3, 4}, NewReferenceBackend())
	x.Set(7, 1, 2, 3)
	assert.Equal(t, 7.0, x.At(1, 2, 3))
	assert.Equal(t, 7.0, x.Data()[23])
	assert.Panics(t, func() { x.At(2, 0, 0) })
	assert.Panics(t, func() { x.At(0, 0) })
}

func TestTensor_CloneIsDeep(t *testing.T) {
	x := Ones[float32](Shape{2, 2}, NewReferenceBackend())
	c := x.Clone()
	c.Set(5, 0, 0)
	assert.Equal(t, float32(1), x.At(0, 0))
	assert.Equal(t, float32(5), c.At(0, 0))
}

func TestRandn_Seeded(t *testing.T) {
	b := NewReferenceBackend()
	a := Randn[float32](Shape{16}, rand.New(rand.NewSource(3)), b)
	c := Randn[float32](Shape{16}, rand.New(rand.NewSource(3)), b)
	assert.Equal(t, a.Data(), c.Data())
	assert.Panics(t, func() { Randn[int32](Shape{4}, nil, b) })
}

func TestRaw_WithShapeSharesStorage(t *testing.T) {
	r := MustNewRaw(Shape{2, 3}, Float32, CPU)
	v, err := r.WithShape(Shape{3, 2})
	require.NoError(t, err)
	v.AsFloat32()[5] = 9
	assert.Equal(t, float32(9), r.AsFloat32()[5])

	_, err = r.WithShape(Shape{4, 2})
	assert.Error(t, err)
}

func TestReference_BatchMatMul(t *testing.T) {
	b := NewReferenceBackend()
	// Two batches of [2,2] @ [2,1].
	x, _ := FromSlice([]float32{1, 2, 3, 4, 1, 0, 0, 1}, Shape{2, 2, 2}, b)
	y, _ := FromSlice([]float32{1, 1, 2, 3}, Shape{2, 2, 1}, b)

	out := x.BatchMatMul(y)
	assert.Equal(t, Shape{2, 2, 1}, out.Shape())
	assert.Equal(t, []float32{3, 7, 2, 3}, out.Data())
}

func TestReference_TransposeAndSoftmax(t *testing.T) {
	b := NewReferenceBackend()
	x, _ := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3}, b)

	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, x.T().Data())

	s := x.Softmax(-1)
	for row := 0; row < 2; row++ {
		var sum float64
		for col := 0; col < 3; col++ {
			sum += s.At(row, col)
		}
		assert.InDelta(t, 1.0, sum, 1e-12)
	}
	assert.InDelta(t, math.Exp(1)/(math.Exp(1)+math.Exp(2)+math.Exp(3)), s.At(0, 0), 1e-12)
}

func TestReference_AddBroadcast(t *testing.T) {
	b := NewReferenceBackend()
	x := Zeros[float32](Shape{2, 3}, b)
	bias, _ := FromSlice([]float32{1, 2, 3}, Shape{1, 3}, b)
	assert.Equal(t, []float32{1, 2, 3, 1, 2, 3}, x.Add(bias).Data())
	assert.Panics(t, func() { x.Add(Zeros[float32](Shape{2, 4}, b)) })
}

func TestTensor_IndexSharesStorage(t *testing.T) {
	x, _ := FromSlice([]float32{0, 1, 2, 3, 4, 5}, Shape{3, 2}, NewReferenceBackend())
	row := x.Index(1)
	assert.Equal(t, Shape{2}, row.Shape())
	assert.Equal(t, []float32{2, 3}, row.Data())

	row.Set(9, 0)
	assert.Equal(t, float32(9), x.At(1, 0))
	assert.Panics(t, func() { x.Index(3) })
}
