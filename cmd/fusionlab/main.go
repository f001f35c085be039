// Package main provides the fusionlab CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fusionlab-ml/fusionlab/backend"
)

const version = "v0.1.0-dev"

func main() {
	log.SetFlags(0)
	log.SetPrefix("fusionlab: ")

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "fusionlab %s\n", version)
		return nil
	case "backends":
		for _, name := range backend.Names() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	case "attn":
		return runAttn(args[1:], stdout)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		usage(stdout)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "fusionlab - neural network building blocks for Go")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  backends   List compute backends")
	fmt.Fprintln(w, "  attn       Print the self-attention map of a text")
}
