package main

import (
	"flag"
	"fmt"
	"os"

	"peregrine/engine"
	"peregrine/nnue"
)

func main() {
	nnuePath := flag.String("nnue", "peregrine.nnue", "path to the network weight file")
	hashMB := flag.Int("hash", 64, "transposition table size in MB")
	flag.Parse()

	net, err := nnue.LoadNetwork(*nnuePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: network %s: %v\n", *nnuePath, err)
		os.Exit(1)
	}
	searcher := engine.NewSearcher(net, *hashMB)

	if flag.Arg(0) == "bench" {
		engine.Bench(searcher, engine.BenchDepth, os.Stdout)
		return
	}

	newUCI(searcher, net, os.Stdin, os.Stdout).loop()
}
