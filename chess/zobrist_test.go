package chess

import (
	"math/rand"
	"testing"
)

// The incremental hash must equal a from-scratch recomputation at every
// node of a random legal walk.
func TestIncrementalHashMatchesRecompute(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	b, _ := ParseFEN(StartPosFEN)
	for ply := 0; ply < 200; ply++ {
		if b.Hash() != b.ComputeZobrist() {
			t.Fatalf("ply %d: incremental %016x != recomputed %016x\n%s", ply, b.Hash(), b.ComputeZobrist(), b.ToFEN())
		}
		moves := b.GenerateLegalMoves()
		if len(moves) == 0 {
			break
		}
		b.MakeMove(moves[rnd.Intn(len(moves))])
	}
}

// Positions reached through different move orders must hash identically.
func TestHashTransposition(t *testing.T) {
	apply := func(moves ...string) *Board {
		b, _ := ParseFEN(StartPosFEN)
		for _, s := range moves {
			m, err := b.ParseMove(s)
			if err != nil {
				t.Fatalf("apply %s: %v", s, err)
			}
			b.MakeMove(m)
		}
		return b
	}

	a := apply("e2e3", "e7e6", "d2d3")
	c := apply("d2d3", "e7e6", "e2e3")
	if a.Hash() != c.Hash() {
		t.Fatalf("transposed positions differ: %016x vs %016x", a.Hash(), c.Hash())
	}

	// A knight shuffle returning to the start must reproduce the start hash.
	start, _ := ParseFEN(StartPosFEN)
	d := apply("g1f3", "g8f6", "f3g1", "f6g8")
	if d.Hash() != start.Hash() {
		t.Fatalf("shuffled-back position differs from start: %016x vs %016x", d.Hash(), start.Hash())
	}
}

func TestHashComponents(t *testing.T) {
	b, _ := ParseFEN(StartPosFEN)
	base := b.Hash()

	// Side to move flips the hash.
	flipped, _ := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	if flipped.Hash() == base {
		t.Errorf("side to move must be hashed")
	}

	// Castling rights are hashed.
	noCastle, _ := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1")
	if noCastle.Hash() == base {
		t.Errorf("castling rights must be hashed")
	}

	// The halfmove clock is deliberately not part of the hash.
	clock, _ := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 5 10")
	if clock.Hash() != base {
		t.Errorf("clocks must not affect the hash")
	}
}
