package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Vocabulary sizes of the supported encodings, special tokens included.
var vocabSizes = map[string]int{
	tiktoken.MODEL_O200K_BASE:  200019,
	tiktoken.MODEL_CL100K_BASE: 100277,
	tiktoken.MODEL_P50K_BASE:   50281,
	tiktoken.MODEL_P50K_EDIT:   50284,
	tiktoken.MODEL_R50K_BASE:   50257,
}

// TikToken wraps pkoukk/tiktoken-go.
type TikToken struct {
	encoding *tiktoken.Tiktoken
	name     string // encoding or model the tokenizer was created for
	base     string // underlying encoding name
}

// NewTikToken loads an encoding by name, e.g. "cl100k_base".
func NewTikToken(encodingName string) (*TikToken, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding %q: %w", encodingName, err)
	}
	return &TikToken{encoding: encoding, name: encodingName, base: encodingName}, nil
}

// NewTikTokenForModel loads the encoding used by a model, e.g. "gpt-4".
func NewTikTokenForModel(modelName string) (*TikToken, error) {
	encoding, err := tiktoken.EncodingForModel(modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken for model %q: %w", modelName, err)
	}

	base := tiktoken.MODEL_TO_ENCODING[modelName]
	if base == "" {
		for prefix, enc := range tiktoken.MODEL_PREFIX_TO_ENCODING {
			if strings.HasPrefix(modelName, prefix) {
				base = enc
				break
			}
		}
	}
	return &TikToken{encoding: encoding, name: modelName, base: base}, nil
}

// Encode converts text to token IDs. Special tokens are encoded as text.
func (t *TikToken) Encode(text string) ([]int32, error) {
	tokens := t.encoding.Encode(text, nil, nil)

	result := make([]int32, len(tokens))
	for i, tok := range tokens {
		result[i] = int32(tok) //nolint:gosec // G115: vocab size < 2^31
	}
	return result, nil
}

// Decode converts token IDs back to text.
func (t *TikToken) Decode(tokens []int32) (string, error) {
	ids := make([]int, len(tokens))
	for i, tok := range tokens {
		if tok < 0 {
			return "", fmt.Errorf("invalid token id %d at position %d", tok, i)
		}
		ids[i] = int(tok)
	}
	return t.encoding.Decode(ids), nil
}

// VocabSize returns the vocabulary size of the underlying encoding, or 0
// when it is not known.
func (t *TikToken) VocabSize() int {
	return vocabSizes[t.base]
}

// Name returns the encoding or model name passed to the constructor.
func (t *TikToken) Name() string {
	return t.name
}

// Encoding returns the underlying encoding name.
func (t *TikToken) Encoding() string {
	return t.base
}
