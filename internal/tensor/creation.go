package tensor

import "math/rand"

// Zeros creates a tensor filled with zeros.
//
//	t := tensor.Zeros[float32](tensor.Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	raw, err := NewRaw(shape, inferDataType[T](), b.Device())
	if err != nil {
		panic(err)
	}
	return New[T, B](raw, b)
}

// Full creates a tensor filled with value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, T(1), b)
}

// Randn creates a float tensor with values drawn from N(0, 1).
// A nil rng uses the package-level source.
func Randn[T DType, B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[T, B] {
	if !inferDataType[T]().IsFloat() {
		panic("Randn only supports float32 and float64 types")
	}
	norm := rand.NormFloat64 //nolint:gosec // G404: weights and test data, not secrets
	if rng != nil {
		norm = rng.NormFloat64
	}

	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = T(norm())
	}
	return t
}

// Rand creates a float tensor with values uniform in [0, 1).
// A nil rng uses the package-level source.
func Rand[T DType, B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[T, B] {
	if !inferDataType[T]().IsFloat() {
		panic("Rand only supports float32 and float64 types")
	}
	uniform := rand.Float64 //nolint:gosec // G404: weights and test data, not secrets
	if rng != nil {
		uniform = rng.Float64
	}

	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = T(uniform())
	}
	return t
}
