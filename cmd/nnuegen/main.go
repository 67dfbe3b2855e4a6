package main

import (
	"flag"
	"fmt"
	"os"

	"peregrine/nnue"
)

// nnuegen writes a deterministic pseudo-random network in the engine's
// weight format. The result plays weak but legal chess, which is enough
// for protocol testing and for packaging before a trained net exists.
func main() {
	out := flag.String("out", "peregrine.nnue", "output weight file")
	seed := flag.Uint64("seed", 1, "generator seed")
	flag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", *out, err)
		os.Exit(1)
	}
	net := nnue.GenerateNetwork(*seed)
	if err := net.WriteTo(f); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (input %d, hidden %d, seed %d)\n", *out, nnue.InputSize, nnue.HiddenSize, *seed)
}
