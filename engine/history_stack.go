package engine

import "peregrine/chess"

// The hash stack spans the game moves received over the protocol plus the
// current search path, so repetitions across the root are detected. Only
// positions within the halfmove-clock window can repeat.
type hashStack struct {
	hashes []uint64
}

func (h *hashStack) reset(gameHashes []uint64) {
	h.hashes = append(h.hashes[:0], gameHashes...)
}

func (h *hashStack) push(hash uint64) { h.hashes = append(h.hashes, hash) }

func (h *hashStack) pop() { h.hashes = h.hashes[:len(h.hashes)-1] }

// isRepetition reports whether the current position occurred before within
// the last rule50 half-moves. A single prior occurrence counts: letting
// the search score any repetition as a draw is both safe and cheap.
func (h *hashStack) isRepetition(current uint64, rule50 int) bool {
	n := len(h.hashes)
	start := Max(n-1-rule50, 0)
	// Same side to move recurs every second ply.
	for i := n - 3; i >= start; i -= 2 {
		if h.hashes[i] == current {
			return true
		}
	}
	return false
}

// isDraw combines the repetition, fifty-move and insufficient-material
// rules for the current node.
func (s *Searcher) isDraw(b *chess.Board) bool {
	if b.HalfmoveClock() >= 100 {
		return true
	}
	if b.InsufficientMaterial() {
		return true
	}
	return s.hashes.isRepetition(b.Hash(), b.HalfmoveClock())
}
