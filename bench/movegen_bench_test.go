package bench

import (
	"testing"

	"peregrine/chess"
)

func benchmarkGenerate(b *testing.B, fen string, mode chess.GenMode) {
	board, err := chess.ParseFEN(fen)
	if err != nil {
		b.Fatal(err)
	}
	var buf [256]chess.Move
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		moves := board.GenerateMoves(buf[:0], mode)
		if len(moves) == 0 {
			b.Fatal("no moves generated")
		}
	}
}

func BenchmarkGenerateAllInitial(b *testing.B) {
	benchmarkGenerate(b, chess.StartPosFEN, chess.GenAll)
}

func BenchmarkGenerateAllKiwipete(b *testing.B) {
	benchmarkGenerate(b, kiwipeteFEN, chess.GenAll)
}

func BenchmarkGenerateCapturesKiwipete(b *testing.B) {
	benchmarkGenerate(b, kiwipeteFEN, chess.GenCaptures)
}

func BenchmarkMakeUnmake(b *testing.B) {
	board, err := chess.ParseFEN(kiwipeteFEN)
	if err != nil {
		b.Fatal(err)
	}
	var buf [256]chess.Move
	moves := board.GenerateMoves(buf[:0], chess.GenAll)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := moves[i%len(moves)]
		if ok, st := board.MakeMove(m); ok {
			board.UnmakeMove(m, st)
		}
	}
}

func BenchmarkLegalMovesKiwipete(b *testing.B) {
	board, err := chess.ParseFEN(kiwipeteFEN)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if moves := board.GenerateLegalMoves(); len(moves) != 48 {
			b.Fatalf("48 legal moves expected, got %d", len(moves))
		}
	}
}
