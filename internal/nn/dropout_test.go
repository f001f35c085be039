package nn

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/fusionlab-ml/fusionlab/internal/backend/cpu"
	"github.com/fusionlab-ml/fusionlab/internal/tensor"
)

func TestNewDropout_RateValidation(t *testing.T) {
	backend := cpu.New()
	for _, rate := range []float32{-0.01, 1.01, float32(math.NaN())} {
		_, err := NewDropout(rate, nil, backend)
		assert.True(t, errors.Is(err, ErrInvalidDropoutRate), "rate %v", rate)
	}
	for _, rate := range []float32{0, 0.5, 1} {
		_, err := NewDropout(rate, nil, backend)
		assert.NoError(t, err, "rate %v", rate)
	}
}

func TestDropout_IdentityInInference(t *testing.T) {
	backend := cpu.New()
	d, err := NewDropout(0.9, nil, backend)
	require.NoError(t, err)
	assert.False(t, d.Training())

	x := tensor.Ones[float32](tensor.Shape{4, 4}, backend)
	assert.Same(t, x, d.Forward(x))
	assert.Nil(t, d.Parameters())
}

func TestDropout_TrainingStatistics(t *testing.T) {
	backend := cpu.New()
	const rate = 0.3

	d, err := NewDropout(rate, rand.New(rand.NewSource(42)), backend)
	require.NoError(t, err)
	d.SetTraining(true)

	x := tensor.Ones[float32](tensor.Shape{200, 500}, backend)
	out := d.Forward(x).Data()

	keep := float32(1 / (1 - rate))
	values := make([]float64, len(out))
	zeros := 0
	for i, v := range out {
		values[i] = float64(v)
		if v == 0 {
			zeros++
			continue
		}
		assert.InDelta(t, keep, v, 1e-6)
	}

	// 100k Bernoulli draws: the standard error of the fraction is ~0.0015.
	assert.InDelta(t, rate, float64(zeros)/float64(len(out)), 0.01)
	assert.InDelta(t, 1.0, stat.Mean(values, nil), 0.02)
}

func TestDropout_RateOneZeroesEverything(t *testing.T) {
	backend := cpu.New()
	d, err := NewDropout(1, nil, backend)
	require.NoError(t, err)
	d.SetTraining(true)

	for _, v := range d.Forward(tensor.Ones[float32](tensor.Shape{8, 8}, backend)).Data() {
		assert.Zero(t, v)
	}
}

func TestDropout_FreshMaskPerCall(t *testing.T) {
	backend := cpu.New()
	d, err := NewDropout(0.5, rand.New(rand.NewSource(1)), backend)
	require.NoError(t, err)
	d.SetTraining(true)

	x := tensor.Ones[float32](tensor.Shape{64}, backend)
	assert.NotEqual(t, d.Forward(x).Data(), d.Forward(x).Data())
}
