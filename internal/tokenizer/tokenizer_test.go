package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	var tok Tokenizer = Bytes{}
	assert.Equal(t, "bytes", tok.Name())
	assert.Equal(t, 256, tok.VocabSize())

	ids, err := tok.Encode("hé!")
	require.NoError(t, err)
	assert.Equal(t, []int32{'h', 0xc3, 0xa9, '!'}, ids)

	text, err := tok.Decode(ids)
	require.NoError(t, err)
	assert.Equal(t, "hé!", text)

	_, err = tok.Decode([]int32{65, 300})
	assert.ErrorContains(t, err, "position 1")
}
