package peregrine_test

import (
	"testing"

	"peregrine/chess"
)

// The canonical perft suite. Each position stresses a different generator
// corner: castling through attacks, en passant discoveries, promotions,
// and the mirrored bugs position.
var perftSuite = []struct {
	name   string
	fen    string
	counts []uint64 // counts[i] is perft(i+1)
}{
	{
		"initial",
		chess.StartPosFEN,
		[]uint64{20, 400, 8902, 197281},
	},
	{
		"kiwipete",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		[]uint64{48, 2039, 97862},
	},
	{
		"position3",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		[]uint64{14, 191, 2812, 43238},
	},
	{
		"position4",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		[]uint64{6, 264, 9467},
	},
	{
		"position4 mirrored",
		"r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1",
		[]uint64{6, 264, 9467},
	},
	{
		"position5",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		[]uint64{44, 1486, 62379},
	},
	{
		"position6",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		[]uint64{46, 2079, 89890},
	},
	{
		"en passant discovered check",
		"8/8/8/8/k1p4R/8/3P4/3K4 w - - 0 1",
		[]uint64{18, 92, 1670},
	},
	{
		"promotion storm",
		"n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1",
		[]uint64{24, 496, 9483},
	},
}

func TestPerftSuite(t *testing.T) {
	for _, tc := range perftSuite {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			board, err := chess.ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", tc.fen, err)
			}
			for i, want := range tc.counts {
				depth := i + 1
				if got := chess.Perft(board, depth); got != want {
					t.Fatalf("perft(%d) = %d, want %d", depth, got, want)
				}
			}
		})
	}
}

func TestPerftDeepInitial(t *testing.T) {
	if testing.Short() {
		t.Skip("deep perft in short mode")
	}
	board, err := chess.ParseFEN(chess.StartPosFEN)
	if err != nil {
		t.Fatal(err)
	}
	if got := chess.Perft(board, 5); got != 4865609 {
		t.Fatalf("perft(5) = %d, want 4865609", got)
	}
	if got := chess.Perft(board, 6); got != 119060324 {
		t.Fatalf("perft(6) = %d, want 119060324", got)
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	board, err := chess.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	div := chess.PerftDivide(board, 3)
	if len(div) != 48 {
		t.Fatalf("48 root moves expected, got %d", len(div))
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 97862 {
		t.Fatalf("divide sums to %d, want 97862", sum)
	}
}

func TestPerftLeavesBoardUntouched(t *testing.T) {
	board, err := chess.ParseFEN(chess.StartPosFEN)
	if err != nil {
		t.Fatal(err)
	}
	before := *board
	chess.Perft(board, 4)
	if *board != before {
		t.Fatalf("perft mutated the board")
	}
}
