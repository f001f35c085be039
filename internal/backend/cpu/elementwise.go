package cpu

import (
	"fmt"

	"github.com/fusionlab-ml/fusionlab/internal/tensor"
)

type number interface {
	~float32 | ~float64 | ~int32
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, opAdd)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, opMul)
}

type binaryOp int

const (
	opAdd binaryOp = iota
	opMul
)

func apply[T number](op binaryOp, x, y T) T {
	if op == opMul {
		return x * y
	}
	return x + y
}

func (cpu *CPUBackend) binary(name string, a, b *tensor.RawTensor, op binaryOp) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result := tensor.MustNewRaw(outShape, a.DType(), cpu.device)

	switch a.DType() {
	case tensor.Float32:
		binaryKernel(op, result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, needsBroadcast)
	case tensor.Float64:
		binaryKernel(op, result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, needsBroadcast)
	case tensor.Int32:
		binaryKernel(op, result.AsInt32(), a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape, needsBroadcast)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}
	return result
}

func binaryKernel[T number](op binaryOp, out, a, b []T, aShape, bShape, outShape tensor.Shape, broadcast bool) {
	if !broadcast {
		for i := range out {
			out[i] = apply(op, a[i], b[i])
		}
		return
	}

	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(aShape, outShape)
	bStrides := broadcastStrides(bShape, outShape)
	for i := range out {
		out[i] = apply(op, a[flatIndex(i, outStrides, aStrides)], b[flatIndex(i, outStrides, bStrides)])
	}
}

// broadcastStrides returns inShape's strides aligned to outShape, with zero
// strides on padded and size-1 dimensions.
func broadcastStrides(inShape, outShape tensor.Shape) []int {
	strides := make([]int, len(outShape))
	offset := len(outShape) - len(inShape)
	orig := inShape.ComputeStrides()

	for i := range strides {
		in := i - offset
		if in >= 0 && inShape[in] != 1 {
			strides[i] = orig[in]
		}
	}
	return strides
}

// flatIndex maps a flat output position to the source position given the
// source's broadcast strides.
func flatIndex(outIdx int, outStrides, inStrides []int) int {
	flat := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flat += coord * inStrides[i]
	}
	return flat
}

// MulScalar multiplies every element by scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result := tensor.MustNewRaw(x.Shape(), x.DType(), cpu.device)

	switch x.DType() {
	case tensor.Float32:
		scale(result.AsFloat32(), x.AsFloat32(), float32(scalar))
	case tensor.Float64:
		scale(result.AsFloat64(), x.AsFloat64(), scalar)
	case tensor.Int32:
		scale(result.AsInt32(), x.AsInt32(), int32(scalar))
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %s", x.DType()))
	}
	return result
}

func scale[T number](out, in []T, s T) {
	for i, v := range in {
		out[i] = v * s
	}
}
