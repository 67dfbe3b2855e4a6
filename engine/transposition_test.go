package engine

import (
	"testing"

	"peregrine/chess"
)

func TestTTStoreProbe(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0xDEADBEEFCAFEF00D)
	mv := chess.NewMove(12, 28, chess.WhitePawn, chess.NoPiece, chess.NoPiece, chess.FlagNone)

	tt.Store(key, mv, 123, 5, 0, BoundExact)

	gotMove, score, usable := tt.Probe(key, 5, 0, -Infinity, Infinity)
	if !usable {
		t.Fatalf("exact entry at sufficient depth must be usable")
	}
	if score != 123 || gotMove != mv {
		t.Fatalf("got score=%d move=%s, want 123 %s", score, gotMove, mv)
	}

	// Shallower stored depth: move still returned, score not usable.
	gotMove, _, usable = tt.Probe(key, 6, 0, -Infinity, Infinity)
	if usable {
		t.Fatalf("entry below requested depth must not cut off")
	}
	if gotMove != mv {
		t.Fatalf("move should still be available for ordering")
	}
}

func TestTTRejectsAliasedKey(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0x1234567890ABCDEF)
	tt.Store(key, chess.NullMove, 50, 3, 0, BoundExact)

	// Same slot, different full key.
	alias := key + tt.mask + 1
	if _, _, usable := tt.Probe(alias, 1, 0, -Infinity, Infinity); usable {
		t.Fatalf("aliased key must be rejected by the full-hash check")
	}
}

func TestTTBoundSemantics(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(42)

	tt.Store(key, chess.NullMove, 80, 4, 0, BoundLower)
	if _, _, usable := tt.Probe(key, 4, 0, -100, 100); usable {
		t.Errorf("lower bound below beta must not cut off")
	}
	if _, score, usable := tt.Probe(key, 4, 0, -100, 60); !usable || score != 80 {
		t.Errorf("lower bound at or above beta must cut off, got usable=%v score=%d", usable, score)
	}

	tt.Clear()
	tt.Store(key, chess.NullMove, -80, 4, 0, BoundUpper)
	if _, _, usable := tt.Probe(key, 4, 0, -100, 100); usable {
		t.Errorf("upper bound above alpha must not cut off")
	}
	if _, score, usable := tt.Probe(key, 4, 0, -60, 100); !usable || score != -80 {
		t.Errorf("upper bound at or below alpha must cut off, got usable=%v score=%d", usable, score)
	}
}

func TestTTMateScoreRebased(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(7)
	// Mate found 3 plies from the root, stored from ply 3.
	tt.Store(key, chess.NullMove, MateValue-3, 8, 3, BoundExact)
	// Probed from ply 5: distance to mate grows by the ply difference.
	_, score, usable := tt.Probe(key, 8, 5, -Infinity, Infinity)
	if !usable {
		t.Fatalf("exact entry must be usable")
	}
	if want := MateValue - 5; score != want {
		t.Fatalf("mate score not rebased: got %d want %d", score, want)
	}
}

func TestTTReplacementPrefersDepth(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(99)
	deep := chess.NewMove(0, 8, chess.WhiteRook, chess.NoPiece, chess.NoPiece, chess.FlagNone)

	tt.Store(key, deep, 10, 9, 0, BoundExact)
	// A same-generation, shallower, non-exact result must not evict.
	tt.Store(key, chess.NullMove, 20, 2, 0, BoundLower)

	gotMove, score, usable := tt.Probe(key, 9, 0, -Infinity, Infinity)
	if !usable || score != 10 || gotMove != deep {
		t.Fatalf("deep entry was evicted by a shallow one: move=%s score=%d usable=%v", gotMove, score, usable)
	}

	// A stale generation is fair game.
	tt.NextGeneration()
	tt.Store(key, chess.NullMove, 30, 2, 0, BoundLower)
	if _, score, usable := tt.Probe(key, 2, 0, -Infinity, 30); !usable || score != 30 {
		t.Fatalf("stale entry must be replaceable, got score=%d usable=%v", score, usable)
	}
}

func TestTTResizePowerOfTwo(t *testing.T) {
	for _, mb := range []int{1, 2, 16, 64} {
		tt := NewTransTable(mb)
		n := uint64(len(tt.entries))
		if n&(n-1) != 0 {
			t.Errorf("%dMB: %d slots is not a power of two", mb, n)
		}
		if n*ttEntrySize > uint64(mb)<<20 {
			t.Errorf("%dMB: table overshoots the budget", mb)
		}
	}
}
