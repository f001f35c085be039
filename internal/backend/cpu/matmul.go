package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/fusionlab-ml/fusionlab/internal/parallel"
	"github.com/fusionlab-ml/fusionlab/internal/tensor"
)

// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) -> (M, N).
// Float types use BLAS GEMM.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	result := tensor.MustNewRaw(tensor.Shape{m, n}, a.DType(), cpu.device)
	gemm(result, a, b, 0, 0, 0, m, k, n)
	return result
}

// BatchMatMul multiplies the trailing matrices of a and b. All leading
// dimensions are batch dimensions and must match.
//
// For 3D: [B, M, K] @ [B, K, N] -> [B, M, N]
// For 4D: [B, H, M, K] @ [B, H, K, N] -> [B, H, M, N]
//
// Each batch entry is independent and is dispatched through parallel.For.
func (cpu *CPUBackend) BatchMatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	ndim := len(aShape)

	if ndim < 3 {
		panic(fmt.Sprintf("BatchMatMul: inputs must be at least 3D, got %dD", ndim))
	}
	if len(bShape) != ndim {
		panic(fmt.Sprintf("BatchMatMul: dimension mismatch, got %dD and %dD", ndim, len(bShape)))
	}
	for i := 0; i < ndim-2; i++ {
		if aShape[i] != bShape[i] {
			panic(fmt.Sprintf("BatchMatMul: batch dimension mismatch at dim %d: %d vs %d", i, aShape[i], bShape[i]))
		}
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("BatchMatMul: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	m, k1 := aShape[ndim-2], aShape[ndim-1]
	k2, n := bShape[ndim-2], bShape[ndim-1]
	if k1 != k2 {
		panic(fmt.Sprintf("BatchMatMul: inner dimension mismatch: %d vs %d", k1, k2))
	}

	batchSize := aShape[:ndim-2].NumElements()
	outShape := aShape.Clone()
	outShape[ndim-1] = n

	result := tensor.MustNewRaw(outShape, a.DType(), cpu.device)
	parallel.For(batchSize, func(p int) {
		gemm(result, a, b, p*m*n, p*m*k1, p*k1*n, m, k1, n)
	}, cpu.parallel)
	return result
}

// gemm computes one [m,k] @ [k,n] product at the given element offsets.
func gemm(c, a, b *tensor.RawTensor, cOff, aOff, bOff, m, k, n int) {
	switch a.DType() {
	case tensor.Float32:
		blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
			blas32.General{Rows: m, Cols: k, Stride: k, Data: a.AsFloat32()[aOff : aOff+m*k]},
			blas32.General{Rows: k, Cols: n, Stride: n, Data: b.AsFloat32()[bOff : bOff+k*n]},
			0,
			blas32.General{Rows: m, Cols: n, Stride: n, Data: c.AsFloat32()[cOff : cOff+m*n]})
	case tensor.Float64:
		blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
			blas64.General{Rows: m, Cols: k, Stride: k, Data: a.AsFloat64()[aOff : aOff+m*k]},
			blas64.General{Rows: k, Cols: n, Stride: n, Data: b.AsFloat64()[bOff : bOff+k*n]},
			0,
			blas64.General{Rows: m, Cols: n, Stride: n, Data: c.AsFloat64()[cOff : cOff+m*n]})
	case tensor.Int32:
		matmulInt32(c.AsInt32()[cOff:cOff+m*n], a.AsInt32()[aOff:aOff+m*k], b.AsInt32()[bOff:bOff+k*n], m, k, n)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}
}

// BLAS has no integer GEMM.
func matmulInt32(c, a, b []int32, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum int32
			for p := 0; p < k; p++ {
				sum += a[i*k+p] * b[p*n+j]
			}
			c[i*n+j] = sum
		}
	}
}
