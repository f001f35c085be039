package tensor

import "fmt"

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	default:
		return "Unknown"
	}
}

// RawTensor is the untyped, contiguous, row-major tensor representation that
// backends operate on. The element slice is owned by the tensor; operations
// never modify their inputs.
type RawTensor struct {
	shape  Shape
	stride []int
	dtype  DataType
	device Device
	data   any // []float32, []float64 or []int32
}

// NewRaw allocates a zero-filled RawTensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	n := shape.NumElements()
	var data any
	switch dtype {
	case Float32:
		data = make([]float32, n)
	case Float64:
		data = make([]float64, n)
	case Int32:
		data = make([]int32, n)
	default:
		return nil, fmt.Errorf("unsupported dtype %v", dtype)
	}

	return &RawTensor{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
		data:   data,
	}, nil
}

// MustNewRaw is like NewRaw but panics on error. Backends use it for result
// buffers whose shapes were derived from already-validated inputs.
func MustNewRaw(shape Shape, dtype DataType, device Device) *RawTensor {
	r, err := NewRaw(shape, dtype, device)
	if err != nil {
		panic(err)
	}
	return r
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's row-major strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the memory footprint of the elements in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// AsFloat32 returns the elements as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	return r.data.([]float32)
}

// AsFloat64 returns the elements as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	return r.data.([]float64)
}

// AsInt32 returns the elements as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 {
	if r.dtype != Int32 {
		panic(fmt.Sprintf("tensor dtype is %s, not int32", r.dtype))
	}
	return r.data.([]int32)
}

// Clone returns a deep copy of the tensor.
func (r *RawTensor) Clone() *RawTensor {
	out := &RawTensor{
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
	switch d := r.data.(type) {
	case []float32:
		out.data = append([]float32(nil), d...)
	case []float64:
		out.data = append([]float64(nil), d...)
	case []int32:
		out.data = append([]int32(nil), d...)
	}
	return out
}

// WithShape returns a tensor that shares r's elements under a new shape.
// The element count must match.
func (r *RawTensor) WithShape(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != r.NumElements() {
		return nil, fmt.Errorf("cannot view %d elements as shape %v (%d elements)",
			r.NumElements(), shape, shape.NumElements())
	}
	return &RawTensor{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  r.dtype,
		device: r.device,
		data:   r.data,
	}, nil
}

// Index returns a view of the i-th sub-tensor along the first dimension.
// Panics for scalars or an out-of-range index.
func (r *RawTensor) Index(i int) *RawTensor {
	if len(r.shape) == 0 {
		panic("index: scalar tensor has no first dimension")
	}
	if i < 0 || i >= r.shape[0] {
		panic(fmt.Sprintf("index: %d out of bounds for dimension 0 (size %d)", i, r.shape[0]))
	}

	sub := r.shape[1:].Clone()
	n := sub.NumElements()
	out := &RawTensor{
		shape:  sub,
		stride: sub.ComputeStrides(),
		dtype:  r.dtype,
		device: r.device,
	}
	switch d := r.data.(type) {
	case []float32:
		out.data = d[i*n : (i+1)*n : (i+1)*n]
	case []float64:
		out.data = d[i*n : (i+1)*n : (i+1)*n]
	case []int32:
		out.data = d[i*n : (i+1)*n : (i+1)*n]
	}
	return out
}
