package nn

import (
	"fmt"
	"math/rand"

	"github.com/fusionlab-ml/fusionlab/internal/tensor"
)

// Linear implements a fully connected layer: y = x @ W.T + b.
//
//   - x: [rows, in_features]
//   - W: [out_features, in_features], Xavier-uniform initialized
//   - b: [out_features], zero initialized, optional
//   - y: [rows, out_features]
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B]
	bias        *Parameter[B] // nil when the layer has no bias
	backend     B
}

// NewLinear creates a Linear layer. A nil rng uses the package-level source
// for weight initialization.
//
//	layer := nn.NewLinear(784, 128, true, nil, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, useBias bool, rng *rand.Rand, backend B) *Linear[B] {
	weight := NewParameter("weight", Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, rng, backend))

	var bias *Parameter[B]
	if useBias {
		bias = NewParameter("bias", Zeros(tensor.Shape{outFeatures}, backend))
	}

	return &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
		backend:     backend,
	}
}

// Forward computes x @ W.T + b for a [rows, in_features] input.
func (l *Linear[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2D input [rows, features], got shape %v", shape))
	}
	if shape[1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, shape[1]))
	}

	output := input.MatMul(l.weight.Tensor().T())
	if l.bias != nil {
		output = output.Add(l.bias.Tensor().Reshape(1, l.outFeatures))
	}
	return output
}

// Parameters returns [weight, bias], or [weight] without bias.
func (l *Linear[B]) Parameters() []*Parameter[B] {
	if l.bias != nil {
		return []*Parameter[B]{l.weight, l.bias}
	}
	return []*Parameter[B]{l.weight}
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] {
	return l.weight
}

// Bias returns the bias parameter, or nil.
func (l *Linear[B]) Bias() *Parameter[B] {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear[B]) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear[B]) OutFeatures() int {
	return l.outFeatures
}

// StateDict returns the parameters keyed "weight" and "bias".
func (l *Linear[B]) StateDict() map[string]*tensor.RawTensor {
	state := map[string]*tensor.RawTensor{"weight": l.weight.Tensor().Raw()}
	if l.bias != nil {
		state["bias"] = l.bias.Tensor().Raw()
	}
	return state
}

// LoadStateDict copies weights from state into the layer. Shapes and dtypes
// must match; a bias entry is required exactly when the layer has a bias.
func (l *Linear[B]) LoadStateDict(state map[string]*tensor.RawTensor) error {
	if err := loadInto(l.weight, state["weight"], tensor.Shape{l.outFeatures, l.inFeatures}); err != nil {
		return err
	}
	if l.bias == nil {
		if _, ok := state["bias"]; ok {
			return fmt.Errorf("unexpected bias in state dict for layer without bias")
		}
		return nil
	}
	return loadInto(l.bias, state["bias"], tensor.Shape{l.outFeatures})
}

func loadInto[B tensor.Backend](p *Parameter[B], raw *tensor.RawTensor, want tensor.Shape) error {
	if raw == nil {
		return fmt.Errorf("missing %s in state dict", p.Name())
	}
	if !raw.Shape().Equal(want) {
		return fmt.Errorf("%s shape mismatch: expected %v, got %v", p.Name(), want, raw.Shape())
	}
	if raw.DType() != tensor.Float32 {
		return fmt.Errorf("%s dtype mismatch: expected float32, got %v", p.Name(), raw.DType())
	}
	copy(p.Tensor().Data(), raw.AsFloat32())
	return nil
}
