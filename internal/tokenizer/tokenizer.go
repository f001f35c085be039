package tokenizer

import "fmt"

// Tokenizer converts between text and token ids.
type Tokenizer interface {
	// Encode converts text to token IDs.
	Encode(text string) ([]int32, error)

	// Decode converts token IDs back to text.
	Decode(tokens []int32) (string, error)

	// VocabSize returns the number of distinct token ids.
	VocabSize() int

	// Name returns the encoding or model name.
	Name() string
}

// Compact relabels ids onto [0, len(vocab)) in order of first appearance.
// vocab[d] is the original id of dense id d.
func Compact(ids []int32) (dense []int32, vocab []int32) {
	index := make(map[int32]int32, len(ids))
	dense = make([]int32, len(ids))
	for i, id := range ids {
		d, ok := index[id]
		if !ok {
			d = int32(len(vocab)) //nolint:gosec // G115: bounded by len(ids)
			index[id] = d
			vocab = append(vocab, id)
		}
		dense[i] = d
	}
	return dense, vocab
}

// Bytes treats every UTF-8 byte as a token. It needs no vocabulary files.
type Bytes struct{}

// Encode returns the bytes of text as token ids.
func (Bytes) Encode(text string) ([]int32, error) {
	ids := make([]int32, len(text))
	for i := 0; i < len(text); i++ {
		ids[i] = int32(text[i])
	}
	return ids, nil
}

// Decode reassembles the bytes. Ids outside [0, 256) are an error.
func (Bytes) Decode(tokens []int32) (string, error) {
	buf := make([]byte, len(tokens))
	for i, tok := range tokens {
		if tok < 0 || tok > 255 {
			return "", fmt.Errorf("invalid byte token %d at position %d", tok, i)
		}
		buf[i] = byte(tok)
	}
	return string(buf), nil
}

// VocabSize returns 256.
func (Bytes) VocabSize() int {
	return 256
}

// Name returns "bytes".
func (Bytes) Name() string {
	return "bytes"
}
