package chess

import "testing"

func TestParseFENRoundTrip(t *testing.T) {
	fens := []string{
		StartPosFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	}
	for _, fen := range fens {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if !b.Validate() {
			t.Fatalf("parsed board fails validation: %s", fen)
		}
		if got := b.ToFEN(); got != fen {
			t.Errorf("round trip mismatch:\n in  %s\n out %s", fen, got)
		}
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",        // missing fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",    // 7 ranks
		"rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // 9 files
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",  // side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1",  // castling
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1", // ep square
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1",  // clock
		"8/8/8/8/8/8/8/8 w - - 0 1", // no kings
		"rnbqxbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // bad piece
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q): expected error", fen)
		}
	}
}

func TestStartPositionBasics(t *testing.T) {
	b, err := ParseFEN(StartPosFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if b.SideToMove() != White {
		t.Errorf("white moves first")
	}
	if b.KingSquare(White) != 4 || b.KingSquare(Black) != 60 {
		t.Errorf("kings on e1/e8, got %s/%s", b.KingSquare(White), b.KingSquare(Black))
	}
	if b.PieceAt(0) != WhiteRook || b.PieceAt(63) != BlackRook {
		t.Errorf("rooks on a1/h8")
	}
	if b.AllOccupied() != 0xFFFF00000000FFFF {
		t.Errorf("occupancy mask: %016x", b.AllOccupied())
	}
}
