package engine

import "peregrine/chess"

// see statically resolves the capture sequence on the target square of m,
// always recapturing with the least valuable attacker, and returns the
// material balance for the mover. Sliders uncovered by a departing
// attacker join the exchange because the attack set is recomputed on the
// shrinking occupancy.
func see(b *chess.Board, m chess.Move) int {
	to := m.To()
	var gain [32]int
	d := 0
	gain[0] = pieceValues[m.Captured().Type()]

	occ := b.AllOccupied()
	occ &^= 1 << uint(m.From())
	if m.Flag() == chess.FlagEnPassant {
		capSq := to - 8
		if m.Piece().Color() == chess.Black {
			capSq = to + 8
		}
		occ &^= 1 << uint(capSq)
	}

	attackerType := m.Piece().Type()
	stm := m.Piece().Color()
	for {
		stm = stm.Other()
		attackers := b.AttackersTo(to, occ) & b.Occupied(stm)
		if attackers == 0 {
			break
		}
		d++
		gain[d] = pieceValues[attackerType] - gain[d-1]
		if Max(-gain[d-1], gain[d]) < 0 {
			break // the exchange is already lost for both continuations
		}
		for pt := chess.Pawn; pt <= chess.King; pt++ {
			if sub := attackers & b.Pieces(stm, pt); sub != 0 {
				occ &^= sub & -sub
				attackerType = pt
				break
			}
		}
	}

	for ; d > 0; d-- {
		gain[d-1] = -Max(-gain[d-1], gain[d])
	}
	return gain[0]
}
