package engine

import (
	"testing"

	"peregrine/chess"
)

// seeMove parses a capture in coordinate notation against the legal moves
// of the position and runs the static exchange evaluation on it.
func seeMove(t *testing.T, fen, uci string) int {
	t.Helper()
	b, err := chess.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	m, err := b.ParseMove(uci)
	if err != nil {
		t.Fatalf("%s: ParseMove(%q): %v", fen, uci, err)
	}
	return see(b, m)
}

func TestSEE(t *testing.T) {
	pawn := pieceValues[chess.Pawn]
	knight := pieceValues[chess.Knight]
	rook := pieceValues[chess.Rook]

	cases := []struct {
		name string
		fen  string
		uci  string
		want int
	}{
		{
			"free pawn",
			"4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1",
			"e4d5",
			pawn,
		},
		{
			"even pawn trade",
			"4k3/5p2/4p3/3P4/8/8/8/4K3 w - - 0 1",
			"d5e6",
			0,
		},
		{
			"rook grabs a defended pawn",
			"4k3/8/3p4/4p3/8/8/4R3/4K3 w - - 0 1",
			"e2e5",
			pawn - rook,
		},
		{
			"knight grabs a defended pawn",
			"4k3/8/3p4/4p3/8/3N4/8/4K3 w - - 0 1",
			"d3e5",
			pawn - knight,
		},
		{
			"stacked rooks win the pawn through the x-ray",
			"3r2k1/8/8/3p4/8/8/3R4/3R2K1 w - - 0 1",
			"d2d5",
			pawn,
		},
		{
			"en passant capture of a free pawn",
			"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",
			"e5d6",
			pawn,
		},
	}

	for _, tc := range cases {
		if got := seeMove(t, tc.fen, tc.uci); got != tc.want {
			t.Errorf("%s: see = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestSEESignDrivesQuiescencePruning(t *testing.T) {
	// The quiescence search only needs the sign. Losing captures must come
	// out negative, winning and equal ones must not.
	if got := seeMove(t, "4k3/8/3p4/4p3/8/8/4R3/4K3 w - - 0 1", "e2e5"); got >= 0 {
		t.Errorf("losing capture scored %d, want negative", got)
	}
	if got := seeMove(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4d5"); got < 0 {
		t.Errorf("winning capture scored %d, want non-negative", got)
	}
}
