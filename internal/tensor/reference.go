package tensor

import (
	"fmt"
	"math"
)

var _ Backend = (*ReferenceBackend)(nil)

// ReferenceBackend implements every operation with plain nested loops in
// float64 arithmetic. It is slow and exists to cross-check optimized
// backends.
type ReferenceBackend struct{}

// NewReferenceBackend creates a ReferenceBackend.
func NewReferenceBackend() *ReferenceBackend {
	return &ReferenceBackend{}
}

// Name returns the backend name.
func (r *ReferenceBackend) Name() string {
	return "reference"
}

// Device returns CPU.
func (r *ReferenceBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition with broadcasting.
func (r *ReferenceBackend) Add(a, b *RawTensor) *RawTensor {
	return r.elementWise("add", a, b, func(x, y float64) float64 { return x + y })
}

// Mul performs element-wise multiplication with broadcasting.
func (r *ReferenceBackend) Mul(a, b *RawTensor) *RawTensor {
	return r.elementWise("mul", a, b, func(x, y float64) float64 { return x * y })
}

func (r *ReferenceBackend) elementWise(op string, a, b *RawTensor, f func(float64, float64) float64) *RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType()))
	}
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	av, bv := toFloat64(a), toFloat64(b)
	out := make([]float64, outShape.NumElements())
	idx := make([]int, len(outShape))
	for i := range out {
		unravel(i, outShape, idx)
		out[i] = f(av[broadcastOffset(idx, a.Shape())], bv[broadcastOffset(idx, b.Shape())])
	}
	return fromFloat64(out, outShape, a.DType())
}

// MatMul performs 2D matrix multiplication.
func (r *ReferenceBackend) MatMul(a, b *RawTensor) *RawTensor {
	as, bs := a.Shape(), b.Shape()
	if len(as) != 2 || len(bs) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(as), len(bs)))
	}
	if as[1] != bs[0] {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", as[0], as[1], bs[0], bs[1]))
	}
	return r.BatchMatMul(a, b)
}

// BatchMatMul multiplies the trailing matrices of a and b.
func (r *ReferenceBackend) BatchMatMul(a, b *RawTensor) *RawTensor {
	as, bs := a.Shape(), b.Shape()
	nd := len(as)
	if nd < 2 || len(bs) != nd {
		panic(fmt.Sprintf("BatchMatMul: rank mismatch %v vs %v", as, bs))
	}
	for i := 0; i < nd-2; i++ {
		if as[i] != bs[i] {
			panic(fmt.Sprintf("BatchMatMul: batch dimension mismatch at dim %d: %d vs %d", i, as[i], bs[i]))
		}
	}
	m, k, n := as[nd-2], as[nd-1], bs[nd-1]
	if bs[nd-2] != k {
		panic(fmt.Sprintf("BatchMatMul: inner dimension mismatch: %d vs %d", k, bs[nd-2]))
	}

	outShape := as.Clone()
	outShape[nd-1] = n
	batches := as[:nd-2].NumElements()

	av, bv := toFloat64(a), toFloat64(b)
	out := make([]float64, outShape.NumElements())
	for p := 0; p < batches; p++ {
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				var sum float64
				for q := 0; q < k; q++ {
					sum += av[p*m*k+i*k+q] * bv[p*k*n+q*n+j]
				}
				out[p*m*n+i*n+j] = sum
			}
		}
	}
	return fromFloat64(out, outShape, a.DType())
}

// Reshape copies t into newShape.
func (r *ReferenceBackend) Reshape(t *RawTensor, newShape Shape) *RawTensor {
	if newShape.NumElements() != t.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v", t.Shape(), newShape))
	}
	return fromFloat64(toFloat64(t), newShape, t.DType())
}

// Transpose permutes dimensions; no axes reverses them.
func (r *ReferenceBackend) Transpose(t *RawTensor, axes ...int) *RawTensor {
	shape := t.Shape()
	if len(axes) == 0 {
		axes = make([]int, len(shape))
		for i := range axes {
			axes[i] = len(shape) - 1 - i
		}
	}
	if len(axes) != len(shape) {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), len(shape)))
	}

	newShape := shape.Permute(axes)
	in := toFloat64(t)
	out := make([]float64, len(in))
	strides := t.Strides()
	idx := make([]int, len(newShape))
	for i := range out {
		unravel(i, newShape, idx)
		src := 0
		for d, ax := range axes {
			src += idx[d] * strides[ax]
		}
		out[i] = in[src]
	}
	return fromFloat64(out, newShape, t.DType())
}

// MulScalar multiplies every element by scalar.
func (r *ReferenceBackend) MulScalar(x *RawTensor, scalar float64) *RawTensor {
	vals := toFloat64(x)
	for i := range vals {
		vals[i] *= scalar
	}
	return fromFloat64(vals, x.Shape(), x.DType())
}

// Softmax normalizes along dim.
func (r *ReferenceBackend) Softmax(x *RawTensor, dim int) *RawTensor {
	shape := x.Shape()
	if dim < 0 {
		dim += len(shape)
	}
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("softmax: dim out of range for %dD tensor", len(shape)))
	}

	in := toFloat64(x)
	out := make([]float64, len(in))
	outer := shape[:dim].NumElements()
	size := shape[dim]
	inner := shape[dim+1:].NumElements()
	for o := 0; o < outer; o++ {
		for j := 0; j < inner; j++ {
			base := o*size*inner + j
			maxVal := math.Inf(-1)
			for a := 0; a < size; a++ {
				maxVal = math.Max(maxVal, in[base+a*inner])
			}
			var sum float64
			for a := 0; a < size; a++ {
				out[base+a*inner] = math.Exp(in[base+a*inner] - maxVal)
				sum += out[base+a*inner]
			}
			for a := 0; a < size; a++ {
				out[base+a*inner] /= sum
			}
		}
	}
	return fromFloat64(out, shape, x.DType())
}

func toFloat64(r *RawTensor) []float64 {
	out := make([]float64, r.NumElements())
	switch d := r.data.(type) {
	case []float32:
		for i, v := range d {
			out[i] = float64(v)
		}
	case []float64:
		copy(out, d)
	case []int32:
		for i, v := range d {
			out[i] = float64(v)
		}
	}
	return out
}

func fromFloat64(vals []float64, shape Shape, dtype DataType) *RawTensor {
	out := MustNewRaw(shape, dtype, CPU)
	switch d := out.data.(type) {
	case []float32:
		for i, v := range vals {
			d[i] = float32(v)
		}
	case []float64:
		copy(d, vals)
	case []int32:
		for i, v := range vals {
			d[i] = int32(v)
		}
	}
	return out
}

// unravel writes the multi-index of flat position i within shape into idx.
func unravel(i int, shape Shape, idx []int) {
	for d := len(shape) - 1; d >= 0; d-- {
		idx[d] = i % shape[d]
		i /= shape[d]
	}
}

// broadcastOffset maps an output multi-index onto a (possibly smaller or
// size-1) source shape.
func broadcastOffset(idx []int, src Shape) int {
	lead := len(idx) - len(src)
	off, stride := 0, 1
	for d := len(src) - 1; d >= 0; d-- {
		if src[d] != 1 {
			off += idx[lead+d] * stride
		}
		stride *= src[d]
	}
	return off
}
