package peregrine_test

import (
	"math/rand"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"

	"peregrine/chess"
)

// Cross-checks against dragontoothmg, an independent magic-bitboard move
// generator. Any divergence in the legal move set or the perft count points
// at a generator or make/unmake bug on one side, and dragontoothmg has been
// perft-verified for years.

var oracleFENs = []string{
	chess.StartPosFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"8/8/8/8/k1p4R/8/3P4/3K4 w - - 0 1",
	"n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1",
	"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2",
}

func moveSet(b *chess.Board) []string {
	moves := b.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	slices.Sort(out)
	return out
}

func oracleMoveSet(b *dragontoothmg.Board) []string {
	moves := b.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for i := range moves {
		out = append(out, moves[i].String())
	}
	slices.Sort(out)
	return out
}

func oraclePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		nodes += oraclePerft(b, depth-1)
		unapply()
	}
	return nodes
}

func TestLegalMovesMatchOracle(t *testing.T) {
	for _, fen := range oracleFENs {
		board, err := chess.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		oracle := dragontoothmg.ParseFen(fen)

		got := moveSet(board)
		want := oracleMoveSet(&oracle)
		if !slices.Equal(got, want) {
			t.Errorf("%s:\n got %v\nwant %v", fen, got, want)
		}
	}
}

func TestPerftMatchesOracle(t *testing.T) {
	for _, fen := range oracleFENs {
		board, err := chess.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		oracle := dragontoothmg.ParseFen(fen)

		for depth := 1; depth <= 3; depth++ {
			got := chess.Perft(board, depth)
			want := oraclePerft(&oracle, depth)
			if got != want {
				t.Errorf("%s: perft(%d) = %d, oracle %d", fen, depth, got, want)
			}
		}
	}
}

// A long random game where both generators must agree at every ply.
func TestRandomWalkMatchesOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(31))

	for game := 0; game < 5; game++ {
		board, err := chess.ParseFEN(chess.StartPosFEN)
		if err != nil {
			t.Fatal(err)
		}
		oracle := dragontoothmg.ParseFen(chess.StartPosFEN)

		for ply := 0; ply < 120; ply++ {
			got := moveSet(board)
			want := oracleMoveSet(&oracle)
			if !slices.Equal(got, want) {
				t.Fatalf("game %d ply %d (%s):\n got %v\nwant %v",
					game, ply, board.ToFEN(), got, want)
			}
			if len(got) == 0 {
				break
			}

			pick := got[rng.Intn(len(got))]
			m, err := board.ParseMove(pick)
			if err != nil {
				t.Fatalf("game %d ply %d: ParseMove(%q): %v", game, ply, pick, err)
			}
			if ok, _ := board.MakeMove(m); !ok {
				t.Fatalf("game %d ply %d: MakeMove(%q) rejected", game, ply, pick)
			}
			applied := false
			for _, om := range oracle.GenerateLegalMoves() {
				if om.String() == pick {
					oracle.Apply(om)
					applied = true
					break
				}
			}
			if !applied {
				t.Fatalf("game %d ply %d: oracle has no move %q", game, ply, pick)
			}
		}
	}
}
