// Package tokenizer turns text into token ids for fusionlab models.
//
// This package wraps the internal tokenizer implementations.
//
// Supported tokenizers:
//   - TikToken: OpenAI BPE encodings (cl100k_base, p50k_base, r50k_base, o200k_base)
//   - Bytes: one token per UTF-8 byte, no vocabulary files needed
//
// Example usage:
//
//	import "github.com/fusionlab-ml/fusionlab/tokenizer"
//
//	tok, err := tokenizer.NewTikToken("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ids, err := tok.Encode("Hello, world!")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Relabel onto a small dense range for an embedding table.
//	dense, vocab := tokenizer.Compact(ids)
//	emb := nn.NewEmbedding(len(vocab), 64, nil, backend)
package tokenizer

import (
	"github.com/fusionlab-ml/fusionlab/internal/tokenizer"
)

// Tokenizer converts between text and token ids.
type Tokenizer = tokenizer.Tokenizer

// Bytes treats every UTF-8 byte as a token.
type Bytes = tokenizer.Bytes

// NewTikToken loads a tiktoken encoding by name.
func NewTikToken(encodingName string) (Tokenizer, error) {
	tok, err := tokenizer.NewTikToken(encodingName)
	if err != nil {
		return nil, err
	}
	return tok, nil
}

// NewTikTokenForModel loads the tiktoken encoding used by a model, such as
// "gpt-4".
func NewTikTokenForModel(modelName string) (Tokenizer, error) {
	tok, err := tokenizer.NewTikTokenForModel(modelName)
	if err != nil {
		return nil, err
	}
	return tok, nil
}

// New returns the tokenizer for name: "bytes" or a tiktoken encoding.
func New(name string) (Tokenizer, error) {
	if name == "bytes" {
		return Bytes{}, nil
	}
	return NewTikToken(name)
}

// Compact relabels ids onto [0, len(vocab)) in order of first appearance.
// vocab[d] is the original id of dense id d.
func Compact(ids []int32) (dense []int32, vocab []int32) {
	return tokenizer.Compact(ids)
}
