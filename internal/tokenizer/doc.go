// Package tokenizer turns text into the int32 token ids consumed by
// nn.Embedding.
//
// Encodings come from pkoukk/tiktoken-go (cl100k_base, p50k_base,
// r50k_base, o200k_base). Loading an encoding may fetch its BPE ranks on
// first use.
//
//	tok, err := tokenizer.NewTikToken("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ids, err := tok.Encode("Hello, world!")
//
// Large vocabularies make for large embedding tables, so Compact maps the
// ids of a single text onto a dense range:
//
//	dense, vocab := tokenizer.Compact(ids)
//	emb := nn.NewEmbedding(len(vocab), hidden, rng, backend)
package tokenizer
