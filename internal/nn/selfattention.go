package nn

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"

	"github.com/fusionlab-ml/fusionlab/internal/tensor"
)

// SelfAttentionConfig configures a SelfAttention block.
type SelfAttentionConfig struct {
	HiddenSize  int        // Embedding size per token; must be divisible by NumHeads
	NumHeads    int        // Number of attention heads
	DropoutRate float32    // Drop probability for weights and output, in [0, 1] (default 0)
	QKVBias     bool       // Bias on the joint QKV projection (default false)
	SaveAttn    bool       // Keep a copy of the last attention weights (default false)
	Rand        *rand.Rand // Source for initialization and dropout; nil uses the package-level source
}

// SelfAttention is a scaled multi-head self-attention block in the style of
// ViT encoders.
//
// Architecture, for x of shape [batch, tokens, hidden]:
//
//	q, k, v = split(x @ W_qkv.T (+ b_qkv))        each [batch, heads, tokens, head_dim]
//	a       = softmax(q @ k.T * head_dim^-0.5)    [batch, heads, tokens, tokens]
//	y       = merge(dropout(a) @ v) @ W_out.T + b_out
//	y       = dropout(y)
//
// The output has the shape of the input. Dropout is active only in training
// mode; blocks start in inference mode.
//
// Example:
//
//	attn, err := nn.NewSelfAttention(nn.SelfAttentionConfig{
//	    HiddenSize: 768,
//	    NumHeads:   12,
//	    SaveAttn:   true,
//	}, backend)
//	y := attn.Forward(x)          // [batch, tokens, 768]
//	a := attn.AttentionWeights()  // [batch, 12, tokens, tokens]
type SelfAttention[B tensor.Backend] struct {
	QKV     *Linear[B] // [3*hidden, hidden]
	OutProj *Linear[B] // [hidden, hidden], always with bias

	dropWeights *Dropout[B]
	dropOutput  *Dropout[B]

	config  SelfAttentionConfig
	headDim int
	scale   float64
	backend B

	mu   sync.RWMutex
	attn *tensor.Tensor[float32, B]
}

// NewSelfAttention validates cfg and creates the block.
//
// Errors wrap ErrInvalidConfig for non-positive sizes, ErrInvalidDropoutRate
// for a rate outside [0, 1] and ErrHeadsNotDivisible when HiddenSize is not a
// multiple of NumHeads.
func NewSelfAttention[B tensor.Backend](cfg SelfAttentionConfig, backend B) (*SelfAttention[B], error) {
	if cfg.HiddenSize <= 0 || cfg.NumHeads <= 0 {
		return nil, fmt.Errorf("%w: hidden size %d and num heads %d must be positive",
			ErrInvalidConfig, cfg.HiddenSize, cfg.NumHeads)
	}
	if err := validateDropoutRate(cfg.DropoutRate); err != nil {
		return nil, err
	}
	if cfg.HiddenSize%cfg.NumHeads != 0 {
		return nil, fmt.Errorf("%w: hidden size %d, num heads %d",
			ErrHeadsNotDivisible, cfg.HiddenSize, cfg.NumHeads)
	}

	// Each dropout draws from its own source.
	var weightsRng, outputRng *rand.Rand
	if cfg.Rand != nil {
		weightsRng = rand.New(rand.NewSource(cfg.Rand.Int63())) //nolint:gosec // dropout masks
		outputRng = rand.New(rand.NewSource(cfg.Rand.Int63()))  //nolint:gosec // dropout masks
	}
	dropWeights, err := NewDropout(cfg.DropoutRate, weightsRng, backend)
	if err != nil {
		return nil, err
	}
	dropOutput, err := NewDropout(cfg.DropoutRate, outputRng, backend)
	if err != nil {
		return nil, err
	}

	headDim := cfg.HiddenSize / cfg.NumHeads

	return &SelfAttention[B]{
		QKV:         NewLinear(cfg.HiddenSize, 3*cfg.HiddenSize, cfg.QKVBias, cfg.Rand, backend),
		OutProj:     NewLinear(cfg.HiddenSize, cfg.HiddenSize, true, cfg.Rand, backend),
		dropWeights: dropWeights,
		dropOutput:  dropOutput,
		config:      cfg,
		headDim:     headDim,
		scale:       math.Pow(float64(headDim), -0.5),
		backend:     backend,
	}, nil
}

// Forward attends x [batch, tokens, hidden] to itself and returns a tensor
// of the same shape. With SaveAttn set, the normalized weights of this call
// replace the stored snapshot.
//
// The token count may differ between calls. Inputs of the wrong rank or
// hidden size panic inside the tensor operations.
func (m *SelfAttention[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out, weights := m.attend(x)
	if m.config.SaveAttn {
		snapshot := weights.Clone()
		m.mu.Lock()
		m.attn = snapshot
		m.mu.Unlock()
	}
	return out
}

// ForwardWithWeights is Forward that returns the normalized attention
// weights [batch, heads, tokens, tokens] instead of storing them. It never
// touches the snapshot, so concurrent callers each see their own weights.
func (m *SelfAttention[B]) ForwardWithWeights(x *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], *tensor.Tensor[float32, B]) {
	return m.attend(x)
}

func (m *SelfAttention[B]) attend(x *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], *tensor.Tensor[float32, B]) {
	shape := x.Shape()
	if len(shape) != 3 {
		panic(fmt.Sprintf("SelfAttention.Forward: expected 3D input [batch, tokens, hidden], got shape %v", shape))
	}
	batch, tokens, hidden := shape[0], shape[1], m.config.HiddenSize

	// [batch*tokens, 3*hidden] -> [batch, tokens, 3, heads, head_dim] -> [3, batch, heads, tokens, head_dim]
	qkv := m.QKV.Forward(x.Reshape(batch*tokens, hidden)).
		Reshape(batch, tokens, 3, m.config.NumHeads, m.headDim).
		Transpose(2, 0, 3, 1, 4)
	q, k, v := qkv.Index(0), qkv.Index(1), qkv.Index(2)

	context, weights := ScaledDotProductAttention(q, k, v, m.scale, m.dropWeights)

	// [batch, heads, tokens, head_dim] -> [batch, tokens, heads, head_dim] -> [batch*tokens, hidden]
	merged := context.Transpose(0, 2, 1, 3).Reshape(batch*tokens, hidden)

	out := m.OutProj.Forward(merged).Reshape(batch, tokens, hidden)
	return m.dropOutput.Forward(out), weights
}

// AttentionWeights returns the weights stored by the last Forward call, or
// nil when SaveAttn is off or Forward has not run yet. The snapshot is a
// copy; it does not alias any tensor used by the computation.
func (m *SelfAttention[B]) AttentionWeights() *tensor.Tensor[float32, B] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.attn
}

// SetTraining toggles both dropout layers. Call it only while no Forward
// or ForwardWithWeights is in flight.
func (m *SelfAttention[B]) SetTraining(training bool) {
	m.dropWeights.SetTraining(training)
	m.dropOutput.SetTraining(training)
}

// Training reports whether the block is in training mode.
func (m *SelfAttention[B]) Training() bool {
	return m.dropWeights.Training()
}

// HiddenSize returns the embedding size per token.
func (m *SelfAttention[B]) HiddenSize() int {
	return m.config.HiddenSize
}

// NumHeads returns the number of heads.
func (m *SelfAttention[B]) NumHeads() int {
	return m.config.NumHeads
}

// HeadDim returns HiddenSize / NumHeads.
func (m *SelfAttention[B]) HeadDim() int {
	return m.headDim
}

// Scale returns the score multiplier head_dim^-0.5.
func (m *SelfAttention[B]) Scale() float64 {
	return m.scale
}

// Config returns the configuration the block was built with.
func (m *SelfAttention[B]) Config() SelfAttentionConfig {
	return m.config
}

// Parameters returns the QKV weight (and bias when enabled) followed by the
// output projection weight and bias.
func (m *SelfAttention[B]) Parameters() []*Parameter[B] {
	params := make([]*Parameter[B], 0, 4)
	params = append(params, m.QKV.Parameters()...)
	params = append(params, m.OutProj.Parameters()...)
	return params
}

// StateDict returns the weights keyed "qkv.weight", "qkv.bias",
// "out_proj.weight" and "out_proj.bias".
func (m *SelfAttention[B]) StateDict() map[string]*tensor.RawTensor {
	state := make(map[string]*tensor.RawTensor)
	for prefix, layer := range m.layers() {
		for name, raw := range layer.StateDict() {
			state[prefix+"."+name] = raw
		}
	}
	return state
}

// LoadStateDict copies weights produced by StateDict (or an equivalent map)
// into the block.
func (m *SelfAttention[B]) LoadStateDict(state map[string]*tensor.RawTensor) error {
	for prefix, layer := range m.layers() {
		sub := make(map[string]*tensor.RawTensor)
		for key, raw := range state {
			if name, ok := strings.CutPrefix(key, prefix+"."); ok {
				sub[name] = raw
			}
		}
		if err := layer.LoadStateDict(sub); err != nil {
			return fmt.Errorf("%s: %w", prefix, err)
		}
	}
	return nil
}

func (m *SelfAttention[B]) layers() map[string]*Linear[B] {
	return map[string]*Linear[B]{"qkv": m.QKV, "out_proj": m.OutProj}
}
