package chess

import "math/bits"

// Slider attacks use the obstruction-difference technique: per square and
// line we keep the ray below the square, the ray above it and the full line
// (square excluded). Given an occupancy, the attacked span of the line is
// found with one subtraction and two XORs, blockers included, no scanning.
type sliderMask struct {
	lower  uint64 // ray toward lower square indices
	upper  uint64 // ray toward higher square indices
	lineEx uint64 // lower | upper
}

// Line groups for sliderMasks.
const (
	lineFile = iota // north-south
	lineRank        // east-west
	lineDiag        // a1-h8 direction
	lineAnti        // h1-a8 direction
)

var (
	sliderMasks [64][4]sliderMask
	knightMoves [64]uint64
	kingMoves   [64]uint64
	pawnAttacks [2][64]uint64
)

// lineAttacks returns the attacked squares along one line. The most
// significant blocker below the square bounds the lower ray; subtracting it
// from the upper ray flips exactly the bits up to and including the first
// blocker above.
func lineAttacks(occ uint64, m sliderMask) uint64 {
	lower := m.lower & occ
	upper := m.upper & occ
	ms1b := uint64(0x8000000000000000) >> uint(bits.LeadingZeros64(lower|1))
	odiff := upper ^ (upper - ms1b)
	return m.lineEx & odiff
}

// RookAttacks returns the rook attack set from sq for the given occupancy,
// including the first blocker in each direction.
func RookAttacks(sq Square, occ uint64) uint64 {
	return lineAttacks(occ, sliderMasks[sq][lineFile]) |
		lineAttacks(occ, sliderMasks[sq][lineRank])
}

// BishopAttacks returns the bishop attack set from sq for the given occupancy.
func BishopAttacks(sq Square, occ uint64) uint64 {
	return lineAttacks(occ, sliderMasks[sq][lineDiag]) |
		lineAttacks(occ, sliderMasks[sq][lineAnti])
}

// QueenAttacks returns the queen attack set from sq for the given occupancy.
func QueenAttacks(sq Square, occ uint64) uint64 {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

// KnightAttacks returns the knight attack set from sq.
func KnightAttacks(sq Square) uint64 { return knightMoves[sq] }

// KingAttacks returns the king attack set from sq.
func KingAttacks(sq Square) uint64 { return kingMoves[sq] }

// PawnAttacks returns the squares a pawn of the given color attacks from sq.
func PawnAttacks(c Color, sq Square) uint64 { return pawnAttacks[c][sq] }

// ray walks from sq in the (dr, df) direction until the board edge and
// returns the traversed squares as a bitboard.
func ray(sq Square, dr, df int) uint64 {
	var out uint64
	r, f := sq.Rank()+dr, sq.File()+df
	for r >= 0 && r < 8 && f >= 0 && f < 8 {
		out |= bb(Square(r*8 + f))
		r += dr
		f += df
	}
	return out
}

func init() {
	type dir struct{ dr, df int }
	// upper direction per line group; lower is the negation
	upperDirs := [4]dir{
		lineFile: {1, 0},
		lineRank: {0, 1},
		lineDiag: {1, 1},
		lineAnti: {1, -1},
	}
	for sq := Square(0); sq < 64; sq++ {
		for line, d := range upperDirs {
			upper := ray(sq, d.dr, d.df)
			lower := ray(sq, -d.dr, -d.df)
			sliderMasks[sq][line] = sliderMask{lower: lower, upper: upper, lineEx: lower | upper}
		}

		knightDirs := []dir{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
		for _, d := range knightDirs {
			r, f := sq.Rank()+d.dr, sq.File()+d.df
			if r >= 0 && r < 8 && f >= 0 && f < 8 {
				knightMoves[sq] |= bb(Square(r*8 + f))
			}
		}

		for dr := -1; dr <= 1; dr++ {
			for df := -1; df <= 1; df++ {
				if dr == 0 && df == 0 {
					continue
				}
				r, f := sq.Rank()+dr, sq.File()+df
				if r >= 0 && r < 8 && f >= 0 && f < 8 {
					kingMoves[sq] |= bb(Square(r*8 + f))
				}
			}
		}

		for _, df := range []int{-1, 1} {
			f := sq.File() + df
			if f < 0 || f > 7 {
				continue
			}
			if r := sq.Rank() + 1; r < 8 {
				pawnAttacks[White][sq] |= bb(Square(r*8 + f))
			}
			if r := sq.Rank() - 1; r >= 0 {
				pawnAttacks[Black][sq] |= bb(Square(r*8 + f))
			}
		}
	}
}

// isAttacked reports whether sq is attacked by the given side under the
// supplied occupancy. Passing the occupancy explicitly lets en-passant
// legality and exchange evaluation query hypothetical positions.
func (b *Board) isAttacked(sq Square, by Color, occ uint64) bool {
	if pawnAttacks[by.Other()][sq]&b.pieceBB[by][Pawn] != 0 {
		return true
	}
	if knightMoves[sq]&b.pieceBB[by][Knight] != 0 {
		return true
	}
	if kingMoves[sq]&b.pieceBB[by][King] != 0 {
		return true
	}
	if RookAttacks(sq, occ)&(b.pieceBB[by][Rook]|b.pieceBB[by][Queen]) != 0 {
		return true
	}
	if BishopAttacks(sq, occ)&(b.pieceBB[by][Bishop]|b.pieceBB[by][Queen]) != 0 {
		return true
	}
	return false
}

// IsAttacked reports whether sq is attacked by the given side in the
// current position.
func (b *Board) IsAttacked(sq Square, by Color) bool {
	return b.isAttacked(sq, by, b.AllOccupied())
}

// AttackersTo returns all pieces of both colors attacking sq under the
// supplied occupancy. Used by static exchange evaluation, which peels
// attackers off the occupancy as the exchange plays out.
func (b *Board) AttackersTo(sq Square, occ uint64) uint64 {
	attackers := pawnAttacks[Black][sq] & b.pieceBB[White][Pawn]
	attackers |= pawnAttacks[White][sq] & b.pieceBB[Black][Pawn]
	attackers |= knightMoves[sq] & (b.pieceBB[White][Knight] | b.pieceBB[Black][Knight])
	attackers |= kingMoves[sq] & (b.pieceBB[White][King] | b.pieceBB[Black][King])
	rq := b.pieceBB[White][Rook] | b.pieceBB[Black][Rook] | b.pieceBB[White][Queen] | b.pieceBB[Black][Queen]
	attackers |= RookAttacks(sq, occ) & rq
	bq := b.pieceBB[White][Bishop] | b.pieceBB[Black][Bishop] | b.pieceBB[White][Queen] | b.pieceBB[Black][Queen]
	attackers |= BishopAttacks(sq, occ) & bq
	return attackers & occ
}
