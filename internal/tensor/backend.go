package tensor

// Backend executes tensor operations for a device.
//
// Operations never modify their inputs. Shape or dtype mismatches are
// programming errors and panic with an "op: detail" message.
type Backend interface {
	// Element-wise binary operations with NumPy broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// MatMul multiplies 2D tensors: [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *RawTensor) *RawTensor

	// BatchMatMul multiplies the last two dimensions of tensors whose
	// leading (batch) dimensions match:
	// [..., M, K] @ [..., K, N] -> [..., M, N].
	BatchMatMul(a, b *RawTensor) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// MulScalar multiplies every element by scalar.
	MulScalar(x *RawTensor, scalar float64) *RawTensor

	// Softmax normalizes along dim; negative dims count from the end.
	Softmax(x *RawTensor, dim int) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}
