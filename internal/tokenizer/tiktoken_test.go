package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadOrSkip skips when the BPE ranks cannot be fetched (offline runs).
func loadOrSkip(t *testing.T, encoding string) *TikToken {
	t.Helper()
	tok, err := NewTikToken(encoding)
	if err != nil {
		t.Skipf("tiktoken encoding %s unavailable: %v", encoding, err)
	}
	return tok
}

func TestTikToken_NewTikToken(t *testing.T) {
	tests := []struct {
		encoding  string
		vocabSize int
	}{
		{"cl100k_base", 100277},
		{"p50k_base", 50281},
		{"r50k_base", 50257},
	}

	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			tok := loadOrSkip(t, tt.encoding)
			assert.Equal(t, tt.encoding, tok.Name())
			assert.Equal(t, tt.encoding, tok.Encoding())
			assert.Equal(t, tt.vocabSize, tok.VocabSize())
		})
	}
}

func TestTikToken_UnknownEncoding(t *testing.T) {
	tok, err := NewTikToken("invalid_encoding_xyz")
	assert.Error(t, err)
	assert.Nil(t, tok)

	tok, err = NewTikTokenForModel("no-such-model")
	assert.Error(t, err)
	assert.Nil(t, tok)
}

func TestTikToken_ForModel(t *testing.T) {
	loadOrSkip(t, "cl100k_base")

	tok, err := NewTikTokenForModel("gpt-4")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", tok.Name())
	assert.Equal(t, "cl100k_base", tok.Encoding())
	assert.Equal(t, 100277, tok.VocabSize())

	tok, err = NewTikTokenForModel("gpt-3.5-turbo-0613")
	require.NoError(t, err)
	assert.Equal(t, "cl100k_base", tok.Encoding())
}

func TestTikToken_Roundtrip(t *testing.T) {
	tok := loadOrSkip(t, "cl100k_base")

	texts := []string{
		"Hello, world!",
		"Hello\nWorld\n",
		"Hello 世界! 🌍",
		"",
		"The quick brown fox jumps over the lazy dog.",
	}

	for _, text := range texts {
		ids, err := tok.Encode(text)
		require.NoError(t, err)
		if text == "" {
			assert.Empty(t, ids)
		}
		for _, id := range ids {
			assert.Less(t, int(id), tok.VocabSize())
		}

		decoded, err := tok.Decode(ids)
		require.NoError(t, err)
		assert.Equal(t, text, decoded)
	}
}

func TestTikToken_DecodeRejectsNegative(t *testing.T) {
	tok := loadOrSkip(t, "cl100k_base")
	_, err := tok.Decode([]int32{9906, -1})
	assert.ErrorContains(t, err, "position 1")
}

func TestCompact(t *testing.T) {
	dense, vocab := Compact([]int32{500, 7, 500, 9000, 7, 7})
	assert.Equal(t, []int32{0, 1, 0, 2, 1, 1}, dense)
	assert.Equal(t, []int32{500, 7, 9000}, vocab)

	dense, vocab = Compact(nil)
	assert.Empty(t, dense)
	assert.Empty(t, vocab)
}

func TestTikToken_ImplementsTokenizer(t *testing.T) {
	var _ Tokenizer = (*TikToken)(nil)
}
