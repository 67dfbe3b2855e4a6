package engine

import "peregrine/chess"

// Bound qualifies a cached score: exact, a lower bound from a fail-high or
// an upper bound from a fail-low.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

// ttEntry is one transposition-table slot. The full key is stored so index
// aliasing can never smuggle in a foreign position's result.
type ttEntry struct {
	key   uint64
	move  chess.Move
	score int32
	depth int8
	bound Bound
	gen   uint8
}

// TransTable is the fixed-capacity, single-writer transposition table.
// The slot count is a power of two so the index is a mask of the hash; the
// table never grows, a full table evicts under the replacement policy.
type TransTable struct {
	entries []ttEntry
	mask    uint64
	gen     uint8
}

const ttEntrySize = 24 // bytes, keep in sync with ttEntry

// NewTransTable allocates a table of at most the given size in megabytes.
func NewTransTable(megabytes int) *TransTable {
	tt := &TransTable{}
	tt.Resize(megabytes)
	return tt
}

// Resize reallocates the table. All entries are dropped.
func (tt *TransTable) Resize(megabytes int) {
	megabytes = Clamp(megabytes, 1, 4096)
	slots := uint64(1)
	for slots*2*ttEntrySize <= uint64(megabytes)<<20 {
		slots *= 2
	}
	tt.entries = make([]ttEntry, slots)
	tt.mask = slots - 1
	tt.gen = 0
}

// Clear wipes all entries, keeping the capacity.
func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = ttEntry{}
	}
	tt.gen = 0
}

// NextGeneration marks the start of a new search; stale entries become
// preferred eviction victims.
func (tt *TransTable) NextGeneration() { tt.gen++ }

// Probe returns the cached move and, when the stored depth suffices and the
// bound clears the window, a usable score. The move is returned even when
// the score is not usable, for ordering.
func (tt *TransTable) Probe(key uint64, depth, ply, alpha, beta int) (move chess.Move, score int, usable bool) {
	e := &tt.entries[key&tt.mask]
	if e.key != key || e.bound == BoundNone {
		return chess.NullMove, 0, false
	}
	move = e.move
	if int(e.depth) < depth {
		return move, 0, false
	}
	score = scoreFromTT(int(e.score), ply)
	switch e.bound {
	case BoundExact:
		return move, score, true
	case BoundLower:
		if score >= beta {
			return move, score, true
		}
	case BoundUpper:
		if score <= alpha {
			return move, score, true
		}
	}
	return move, 0, false
}

// Store caches a search result. Replacement favors the current generation
// and deeper analysis; an entry for the same position is refreshed unless
// it is deeper than the newcomer.
func (tt *TransTable) Store(key uint64, move chess.Move, score, depth, ply int, bound Bound) {
	e := &tt.entries[key&tt.mask]
	replace := e.bound == BoundNone ||
		e.gen != tt.gen ||
		bound == BoundExact ||
		depth >= int(e.depth)
	if e.key == key && move == chess.NullMove {
		move = e.move // keep the old best move when the new result has none
	}
	if !replace && e.key != key {
		return
	}
	if e.key == key && !replace {
		// Same position, shallower result: refresh the generation only.
		e.gen = tt.gen
		return
	}
	*e = ttEntry{
		key:   key,
		move:  move,
		score: int32(scoreToTT(score, ply)),
		depth: int8(depth),
		bound: bound,
		gen:   tt.gen,
	}
}

// Mate scores are stored relative to the probing node, not the root, so a
// cached mate stays correct at any ply: distance to mate is rebased on the
// way in and out of the table.
func scoreToTT(score, ply int) int {
	if score >= mateThreshold {
		return score + ply
	}
	if score <= -mateThreshold {
		return score - ply
	}
	return score
}

func scoreFromTT(score, ply int) int {
	if score >= mateThreshold {
		return score - ply
	}
	if score <= -mateThreshold {
		return score + ply
	}
	return score
}
