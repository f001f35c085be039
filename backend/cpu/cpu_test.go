package cpu_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fusionlab-ml/fusionlab/backend/cpu"
	"github.com/fusionlab-ml/fusionlab/tensor"
)

func TestNew(t *testing.T) {
	b := cpu.New()
	assert.Equal(t, "CPU", b.Name())
	assert.Equal(t, tensor.CPU, b.Device())

	named := cpu.New(cpu.WithName("host"))
	assert.Equal(t, "host", named.Name())
}

func TestWithWorkers(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := tensor.Randn[float32](tensor.Shape{6, 4, 3}, rng, cpu.New())
	b := tensor.Randn[float32](tensor.Shape{6, 3, 5}, rng, cpu.New())

	var results [][]float32
	for _, n := range []int{0, 1, 3, 16} {
		backend := cpu.New(cpu.WithWorkers(n))
		x := tensor.New[float32](a.Raw(), backend)
		y := tensor.New[float32](b.Raw(), backend)
		results = append(results, x.BatchMatMul(y).Data())
	}
	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}
