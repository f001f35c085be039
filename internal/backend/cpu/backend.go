// Package cpu implements the CPU backend. Matrix products go through gonum's
// BLAS; batched products fan out over the batch dimensions.
package cpu

import (
	"fmt"

	"github.com/fusionlab-ml/fusionlab/internal/parallel"
	"github.com/fusionlab-ml/fusionlab/internal/tensor"
)

var _ tensor.Backend = (*CPUBackend)(nil)

// CPUBackend implements tensor operations on the CPU.
//
// It holds no mutable state and is safe for concurrent use.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
	name     string
}

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithParallel sets the worker configuration used by batched kernels.
func WithParallel(cfg parallel.Config) Option {
	return func(c *CPUBackend) {
		c.parallel = cfg
	}
}

// WithName overrides the name reported by Name.
func WithName(name string) Option {
	return func(c *CPUBackend) {
		c.name = name
	}
}

// New creates a CPU backend. By default batched kernels use every CPU.
func New(opts ...Option) *CPUBackend {
	c := &CPUBackend{
		device:   tensor.CPU,
		parallel: parallel.DefaultConfig(),
		name:     "CPU",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return cpu.name
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Reshape returns a view of t with newShape. No elements are copied.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	view, err := t.WithShape(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v -> %v: %v", t.Shape(), newShape, err))
	}
	return view
}

// Transpose permutes the dimensions of t. With no axes the order is reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	result := tensor.MustNewRaw(shape.Permute(axes), t.DType(), cpu.device)

	switch t.DType() {
	case tensor.Float32:
		permute(result.AsFloat32(), t.AsFloat32(), shape, t.Strides(), axes)
	case tensor.Float64:
		permute(result.AsFloat64(), t.AsFloat64(), shape, t.Strides(), axes)
	case tensor.Int32:
		permute(result.AsInt32(), t.AsInt32(), shape, t.Strides(), axes)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}
	return result
}

// permute walks the output in row-major order with an odometer over the
// permuted source strides.
func permute[T number](out, in []T, inShape tensor.Shape, inStrides, axes []int) {
	ndim := len(axes)
	dims := make([]int, ndim)
	strides := make([]int, ndim)
	for i, ax := range axes {
		dims[i] = inShape[ax]
		strides[i] = inStrides[ax]
	}

	idx := make([]int, ndim)
	src := 0
	for i := range out {
		out[i] = in[src]
		for d := ndim - 1; d >= 0; d-- {
			idx[d]++
			src += strides[d]
			if idx[d] < dims[d] {
				break
			}
			src -= idx[d] * strides[d]
			idx[d] = 0
		}
	}
}
