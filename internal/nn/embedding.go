package nn

import (
	"fmt"
	"math/rand"

	"github.com/fusionlab-ml/fusionlab/internal/tensor"
)

// Embedding maps token ids to dense vectors through a learnable table.
//
//   - Weight: [NumEmbed, EmbedDim], initialized from N(0, 1)
//   - Forward: ids [batch, seq] -> [batch, seq, EmbedDim]
type Embedding[B tensor.Backend] struct {
	Weight   *Parameter[B]
	NumEmbed int
	EmbedDim int
	backend  B
}

// NewEmbedding creates an Embedding layer. A nil rng uses the package-level
// source.
func NewEmbedding[B tensor.Backend](numEmbeddings, embeddingDim int, rng *rand.Rand, backend B) *Embedding[B] {
	weight := tensor.Randn[float32](tensor.Shape{numEmbeddings, embeddingDim}, rng, backend)
	return &Embedding[B]{
		Weight:   NewParameter("weight", weight),
		NumEmbed: numEmbeddings,
		EmbedDim: embeddingDim,
		backend:  backend,
	}
}

// Forward looks up every id. Panics if an id is outside [0, NumEmbed).
func (e *Embedding[B]) Forward(ids *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	outShape := append(ids.Shape().Clone(), e.EmbedDim)
	out := tensor.Zeros[float32](outShape, e.backend)

	table := e.Weight.Tensor().Data()
	dst := out.Data()
	for i, id := range ids.Data() {
		if id < 0 || int(id) >= e.NumEmbed {
			panic(fmt.Sprintf("Embedding.Forward: id %d out of range [0, %d)", id, e.NumEmbed))
		}
		row := int(id) * e.EmbedDim
		copy(dst[i*e.EmbedDim:(i+1)*e.EmbedDim], table[row:row+e.EmbedDim])
	}
	return out
}

// Parameters returns the embedding table.
func (e *Embedding[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{e.Weight}
}
