package cpu

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/fusionlab-ml/fusionlab/internal/tensor"
)

// Softmax applies a numerically stable softmax along dim: the maximum of
// each slice is subtracted before exponentiation.
func (cpu *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 {
		dim += len(shape)
	}
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("softmax: dim out of range for %dD tensor", len(shape)))
	}

	outer := shape[:dim].NumElements()
	size := shape[dim]
	inner := shape[dim+1:].NumElements()

	result := tensor.MustNewRaw(shape, x.DType(), cpu.device)

	switch x.DType() {
	case tensor.Float32:
		softmaxFloat32(result.AsFloat32(), x.AsFloat32(), outer, size, inner)
	case tensor.Float64:
		softmaxFloat64(result.AsFloat64(), x.AsFloat64(), outer, size, inner)
	default:
		panic(fmt.Sprintf("softmax: unsupported dtype %s", x.DType()))
	}
	return result
}

func softmaxFloat32(out, in []float32, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		for j := 0; j < inner; j++ {
			base := o*size*inner + j

			maxVal := float32(math.Inf(-1))
			for a := 0; a < size; a++ {
				if v := in[base+a*inner]; v > maxVal {
					maxVal = v
				}
			}

			var sum float64
			for a := 0; a < size; a++ {
				e := math.Exp(float64(in[base+a*inner] - maxVal))
				out[base+a*inner] = float32(e)
				sum += e
			}

			inv := float32(1 / sum)
			for a := 0; a < size; a++ {
				out[base+a*inner] *= inv
			}
		}
	}
}

func softmaxFloat64(out, in []float64, outer, size, inner int) {
	if inner == 1 {
		// Contiguous rows.
		for o := 0; o < outer; o++ {
			row := out[o*size : (o+1)*size]
			copy(row, in[o*size:(o+1)*size])
			floats.AddConst(-floats.Max(row), row)
			for i, v := range row {
				row[i] = math.Exp(v)
			}
			floats.Scale(1/floats.Sum(row), row)
		}
		return
	}

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
}
