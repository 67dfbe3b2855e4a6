package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"peregrine/chess"
	"peregrine/engine"
	"peregrine/nnue"
)

// searchbench runs fixed-depth searches for profiling and regression
// timing. Without -nnue it uses a deterministic generated network, so
// node counts are stable across runs and machines.
func main() {
	depthFlag := flag.Int("depth", 10, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	nnueFlag := flag.String("nnue", "", "network weight file (empty = generated network)")
	hashFlag := flag.Int("hash", 64, "transposition table size in MB")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	var net *nnue.Network
	if *nnueFlag != "" {
		loaded, err := nnue.LoadNetwork(*nnueFlag)
		if err != nil {
			log.Fatalf("network %s: %v", *nnueFlag, err)
		}
		net = loaded
	} else {
		net = nnue.GenerateNetwork(1)
	}
	searcher := engine.NewSearcher(net, *hashFlag)

	fen := *fenFlag
	if fen == "" {
		fen = chess.StartPosFEN
	}

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d\n", fen, *depthFlag, *repeatFlag)

	var totalNodes uint64
	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		board, err := chess.ParseFEN(fen)
		if err != nil {
			log.Fatalf("ParseFEN error: %v", err)
		}
		searcher.NewGame()

		iterStart := time.Now()
		best := searcher.Search(board, nil, engine.Limits{Depth: *depthFlag}, os.Stdout)
		iterElapsed := time.Since(iterStart)
		totalNodes += searcher.Nodes()
		fmt.Printf("run %d: bestmove %s nodes %d time %s\n", i+1, best, searcher.Nodes(), iterElapsed)
	}
	elapsed := time.Since(startAll)
	nps := float64(totalNodes) / elapsed.Seconds()
	fmt.Printf("total: nodes %d time %s nps %.0f\n", totalNodes, elapsed, nps)

	if *memProfile != "" {
		memFile, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		if err := pprof.WriteHeapProfile(memFile); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
		memFile.Close()
	}
}
