package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"text/tabwriter"

	"github.com/fusionlab-ml/fusionlab/backend"
	"github.com/fusionlab-ml/fusionlab/nn"
	"github.com/fusionlab-ml/fusionlab/tensor"
	"github.com/fusionlab-ml/fusionlab/tokenizer"
)

type attnOptions struct {
	text     string
	hidden   int
	heads    int
	encoding string
	backend  string
	seed     int64
	head     int
}

func runAttn(args []string, stdout io.Writer) error {
	var opts attnOptions
	fs := flag.NewFlagSet("attn", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.StringVar(&opts.text, "text", "the quick brown fox", "Text to attend over")
	fs.IntVar(&opts.hidden, "hidden", 16, "Hidden size of the attention block")
	fs.IntVar(&opts.heads, "heads", 2, "Number of attention heads")
	fs.StringVar(&opts.encoding, "encoding", "cl100k_base", `Tokenizer encoding, or "bytes" for one token per byte`)
	fs.StringVar(&opts.backend, "backend", backend.CPU, "Compute backend (see 'fusionlab backends')")
	fs.Int64Var(&opts.seed, "seed", 1, "Seed for embeddings and projection weights")
	fs.IntVar(&opts.head, "head", 0, "Head whose attention map is printed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return attend(opts, stdout)
}

func attend(opts attnOptions, stdout io.Writer) error {
	tok, err := tokenizer.New(opts.encoding)
	if err != nil {
		return err
	}
	ids, err := tok.Encode(opts.text)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if len(ids) == 0 {
		return errors.New("text produced no tokens")
	}

	b, err := backend.Resolve(opts.backend)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(opts.seed)) //nolint:gosec // reproducible weights
	attn, err := nn.NewSelfAttention(nn.SelfAttentionConfig{
		HiddenSize: opts.hidden,
		NumHeads:   opts.heads,
		SaveAttn:   true,
		Rand:       rng,
	}, b)
	if err != nil {
		return err
	}
	if opts.head < 0 || opts.head >= opts.heads {
		return fmt.Errorf("head %d out of range [0, %d)", opts.head, opts.heads)
	}

	dense, vocab := tokenizer.Compact(ids)
	emb := nn.NewEmbedding(len(vocab), opts.hidden, rng, b)
	input, err := tensor.FromSlice(dense, tensor.Shape{1, len(dense)}, b)
	if err != nil {
		return err
	}

	attn.Forward(emb.Forward(input))
	weights := attn.AttentionWeights()

	labels := make([]string, len(ids))
	for i, id := range ids {
		piece, err := tok.Decode([]int32{id})
		if err != nil {
			return fmt.Errorf("decode token %d: %w", id, err)
		}
		labels[i] = strconv.Quote(piece)
	}

	fmt.Fprintf(stdout, "backend=%s encoding=%s tokens=%d hidden=%d heads=%d head=%d\n",
		b.Name(), tok.Name(), len(ids), opts.hidden, opts.heads, opts.head)
	return printMatrix(stdout, labels, func(q, k int) float32 {
		return weights.At(0, opts.head, q, k)
	})
}

func printMatrix(w io.Writer, labels []string, at func(q, k int) float32) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for k := range labels {
		fmt.Fprintf(tw, "%d\t", k)
	}
	fmt.Fprintln(tw)
	for q, label := range labels {
		fmt.Fprintf(tw, "%d %s\t", q, label)
		for k := range labels {
			fmt.Fprintf(tw, "%.3f\t", at(q, k))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
