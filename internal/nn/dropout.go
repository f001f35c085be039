package nn

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/fusionlab-ml/fusionlab/internal/tensor"
)

// Dropout zeroes each element with probability Rate while training and
// scales the survivors by 1/(1-Rate), so expectations are unchanged.
// In inference mode it is the identity.
//
//	drop, err := nn.NewDropout(0.1, nil, backend)
//	drop.SetTraining(true)
//	y := drop.Forward(x)
type Dropout[B tensor.Backend] struct {
	rate     float32
	training bool
	backend  B

	mu  sync.Mutex // guards rng
	rng *rand.Rand // nil uses the package-level source
}

// NewDropout creates a Dropout layer in inference mode. The rate must lie in
// [0, 1]; otherwise the error wraps ErrInvalidDropoutRate.
func NewDropout[B tensor.Backend](rate float32, rng *rand.Rand, backend B) (*Dropout[B], error) {
	if err := validateDropoutRate(rate); err != nil {
		return nil, err
	}
	return &Dropout[B]{rate: rate, rng: rng, backend: backend}, nil
}

func validateDropoutRate(rate float32) error {
	if math.IsNaN(float64(rate)) || rate < 0 || rate > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidDropoutRate, rate)
	}
	return nil
}

// Rate returns the drop probability.
func (d *Dropout[B]) Rate() float32 {
	return d.rate
}

// SetTraining switches between training (stochastic) and inference (identity).
// The mode must not change while Forward runs on other goroutines.
func (d *Dropout[B]) SetTraining(training bool) {
	d.training = training
}

// Training reports whether the layer is in training mode.
func (d *Dropout[B]) Training() bool {
	return d.training
}

// Forward applies dropout. The input is returned unchanged in inference mode
// or when Rate is 0.
func (d *Dropout[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !d.training || d.rate == 0 {
		return input
	}
	return input.Mul(d.mask(input.Shape()))
}

// mask draws a keep mask with entries 0 or 1/(1-rate). A rate of 1 yields
// all zeros.
func (d *Dropout[B]) mask(shape tensor.Shape) *tensor.Tensor[float32, B] {
	m := tensor.Zeros[float32](shape, d.backend)
	if d.rate >= 1 {
		return m
	}

	keep := float32(1 / (1 - float64(d.rate)))
	data := m.Data()

	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range data {
		if d.uniform() >= float64(d.rate) {
			data[i] = keep
		}
	}
	return m
}

func (d *Dropout[B]) uniform() float64 {
	if d.rng != nil {
		return d.rng.Float64()
	}
	return rand.Float64() //nolint:gosec // dropout masks are not security-critical
}

// Parameters returns nil; Dropout has no weights.
func (d *Dropout[B]) Parameters() []*Parameter[B] {
	return nil
}
