package chess

// Perft counts leaf nodes reachable by legal moves at the given depth. It
// is the move generator's correctness oracle: results must match the
// published reference counts exactly.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	// One buffer per remaining depth, reused across siblings.
	bufs := make([][maxMoves]Move, depth)
	return perft(b, depth, bufs)
}

func perft(b *Board, depth int, bufs [][maxMoves]Move) uint64 {
	moves := b.GenerateMoves(bufs[depth-1][:0], GenAll)
	if depth == 1 {
		var nodes uint64
		for _, m := range moves {
			if ok, st := b.MakeMove(m); ok {
				b.UnmakeMove(m, st)
				nodes++
			}
		}
		return nodes
	}
	var nodes uint64
	for _, m := range moves {
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		nodes += perft(b, depth-1, bufs)
		b.UnmakeMove(m, st)
	}
	return nodes
}

// PerftDivide returns the node count per legal root move, the standard
// format for diffing against another generator.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	out := make(map[Move]uint64)
	if depth <= 0 {
		return out
	}
	bufs := make([][maxMoves]Move, depth)
	moves := b.GenerateMoves(bufs[depth-1][:0], GenAll)
	for _, m := range moves {
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		if depth == 1 {
			out[m] = 1
		} else {
			out[m] = perft(b, depth-1, bufs)
		}
		b.UnmakeMove(m, st)
	}
	return out
}
