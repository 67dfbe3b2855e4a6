package engine

import (
	"fmt"
	"io"
	"time"

	"peregrine/chess"
)

// BenchDepth is the fixed depth used by the bench command so node counts
// are comparable across versions.
const BenchDepth = 6

// benchPositions is the built-in suite: openings, middlegames, tactical
// melees, pawn endings and mating attacks, so the search exercises every
// phase.
var benchPositions = []string{
	chess.StartPosFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 0 1",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"r2q1rk1/ppp2ppp/2n1bn2/2b1p3/3pP3/3P1NPP/PPP1NPB1/R1BQ1RK1 b - - 0 9",
	"rnbqkb1r/pp2pppp/5n2/2pp4/3P1B2/2N5/PPP1PPPP/R2QKBNR w KQkq - 0 4",
	"r1bq1rk1/pp2bppp/2n2n2/2pp4/8/1P1P1NP1/PBPN1PBP/R2Q1RK1 b - - 0 9",
	"4rrk1/pp1n3p/3q2pQ/2p1pb2/2PP4/2P3N1/P2B2PP/4RRK1 b - - 7 19",
	"2r2rk1/1bqnbpp1/1p1ppn1p/pP6/N1P1P3/P2B1N1P/1B2QPP1/R2R2K1 b - - 0 16",
	"6k1/6p1/6Pp/ppp5/3pn2P/1P3K2/1PP2P2/3N4 b - - 0 1",
	"8/8/1p1kp1p1/p1pr1n1p/P6P/1R4P1/1P3PK1/1R6 b - - 28 58",
	"3r3k/2r4p/1p1b3q/p4P2/P2Pp3/1B2P3/3BQ1RP/6K1 w - - 3 87",
	"2rqr1k1/1p3p1p/p2p2p1/P1nPb3/2B1P3/5P2/1PQ2NPP/R1R4K w - - 0 1",
	"6k1/5ppp/1q6/2b5/8/2R1pPP1/1P2Q2P/7K w - - 2 1",
	"8/8/8/8/5kp1/P7/8/1K1N4 w - - 0 1",
	"7k/3p2pp/4q3/8/4Q3/5Kp1/P6b/8 w - - 0 1",
	"8/2p4P/8/kr6/6R1/8/8/1K6 w - - 0 1",
	"2K5/p7/7P/5pR1/8/5k2/r7/8 w - - 0 1",
}

// Bench runs a fixed-depth search over the built-in suite and prints the
// aggregate node count and speed. The searcher state is reset per position
// so the run is reproducible.
func Bench(s *Searcher, depth int, out io.Writer) {
	if depth <= 0 {
		depth = BenchDepth
	}
	s.ClearStop()
	var totalNodes uint64
	start := time.Now()
	for i, fen := range benchPositions {
		board, err := chess.ParseFEN(fen)
		if err != nil {
			fmt.Fprintf(out, "bench: position %d: %v\n", i+1, err)
			continue
		}
		s.NewGame()
		best := s.Search(board, nil, Limits{Depth: depth}, io.Discard)
		totalNodes += s.Nodes()
		fmt.Fprintf(out, "position %2d/%d bestmove %-6s nodes %9d\n", i+1, len(benchPositions), best, s.Nodes())
	}
	elapsed := time.Since(start)
	nps := uint64(0)
	if secs := elapsed.Seconds(); secs > 0 {
		nps = uint64(float64(totalNodes) / secs)
	}
	fmt.Fprintf(out, "\n%d nodes %d nps\n", totalNodes, nps)
}
