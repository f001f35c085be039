package nn

import (
	"math"
	"math/rand"

	"github.com/fusionlab-ml/fusionlab/internal/tensor"
)

// Xavier draws weights from U(-sqrt(6/(fanIn+fanOut)), sqrt(6/(fanIn+fanOut))).
// A nil rng uses the package-level source.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	uniform := rand.Float64 //nolint:gosec // weight initialization is not security-critical
	if rng != nil {
		uniform = rng.Float64
	}

	t := tensor.Zeros[float32](shape, backend)
	data := t.Data()
	for i := range data {
		data[i] = float32((uniform()*2.0 - 1.0) * bound)
	}
	return t
}

// Zeros creates a zero-filled float32 tensor, used for biases.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}
