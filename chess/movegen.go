package chess

import "fmt"

// maxMoves bounds the number of pseudo-legal moves in any reachable
// position; 256 is the customary safe bound.
const maxMoves = 256

// GenMode selects which moves the generator emits.
type GenMode uint8

const (
	GenAll      GenMode = iota // every pseudo-legal move
	GenCaptures                // captures, en passant and promotions only
)

// GenerateMoves appends the pseudo-legal moves of the side to move to buf
// and returns the extended slice. Callers reuse buf across nodes to keep
// the search allocation free. Moves may still leave the own king attacked;
// MakeMove rejects those.
func (b *Board) GenerateMoves(buf []Move, mode GenMode) []Move {
	us := b.sideToMove
	them := us.Other()
	own := b.occupied[us]
	occ := b.AllOccupied()

	var targets uint64
	if mode == GenCaptures {
		targets = b.occupied[them]
	} else {
		targets = ^own
	}

	buf = b.genPawnMoves(buf, mode)

	for from := b.pieceBB[us][Knight]; from != 0; {
		sq := popLSB(&from)
		buf = b.appendMoves(buf, sq, knightMoves[sq]&targets)
	}
	for from := b.pieceBB[us][Bishop]; from != 0; {
		sq := popLSB(&from)
		buf = b.appendMoves(buf, sq, BishopAttacks(sq, occ)&targets)
	}
	for from := b.pieceBB[us][Rook]; from != 0; {
		sq := popLSB(&from)
		buf = b.appendMoves(buf, sq, RookAttacks(sq, occ)&targets)
	}
	for from := b.pieceBB[us][Queen]; from != 0; {
		sq := popLSB(&from)
		buf = b.appendMoves(buf, sq, QueenAttacks(sq, occ)&targets)
	}

	ksq := b.KingSquare(us)
	buf = b.appendMoves(buf, ksq, kingMoves[ksq]&targets)
	if mode == GenAll {
		buf = b.genCastles(buf)
	}
	return buf
}

// GenerateLegalMoves returns the strictly legal moves of the side to move.
// Pseudo-legal moves are filtered through MakeMove's king-safety rejection.
func (b *Board) GenerateLegalMoves() []Move {
	var buf [maxMoves]Move
	pseudo := b.GenerateMoves(buf[:0], GenAll)
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if ok, st := b.MakeMove(m); ok {
			b.UnmakeMove(m, st)
			legal = append(legal, m)
		}
	}
	return legal
}

// ParseMove resolves coordinate notation ("e2e4", "e7e8q") against the
// legal moves of the current position. Unknown or illegal input returns an
// error and leaves the board untouched.
func (b *Board) ParseMove(s string) (Move, error) {
	for _, m := range b.GenerateLegalMoves() {
		if m.String() == s {
			return m, nil
		}
	}
	return NullMove, fmt.Errorf("illegal move %q", s)
}

// appendMoves emits one move per set bit of the target mask.
func (b *Board) appendMoves(buf []Move, from Square, mask uint64) []Move {
	piece := b.squares[from]
	for mask != 0 {
		to := popLSB(&mask)
		buf = append(buf, NewMove(from, to, piece, b.squares[to], NoPiece, FlagNone))
	}
	return buf
}

func (b *Board) genPawnMoves(buf []Move, mode GenMode) []Move {
	us := b.sideToMove
	them := us.Other()
	occ := b.AllOccupied()
	pawn := MakePiece(us, Pawn)

	var push, startRank, promoRank int
	if us == White {
		push, startRank, promoRank = 8, 1, 7
	} else {
		push, startRank, promoRank = -8, 6, 0
	}

	for pawns := b.pieceBB[us][Pawn]; pawns != 0; {
		from := popLSB(&pawns)
		toPromo := (from + Square(push)).Rank() == promoRank

		// Captures, promoting or not.
		for mask := pawnAttacks[us][from] & b.occupied[them]; mask != 0; {
			to := popLSB(&mask)
			captured := b.squares[to]
			if toPromo {
				buf = appendPromotions(buf, from, to, pawn, captured, us)
			} else {
				buf = append(buf, NewMove(from, to, pawn, captured, NoPiece, FlagNone))
			}
		}

		// En passant: the captured pawn sits beside the target square.
		if b.enPassant != NoSquare && pawnAttacks[us][from]&bb(b.enPassant) != 0 {
			buf = append(buf, NewMove(from, b.enPassant, pawn, MakePiece(them, Pawn), NoPiece, FlagEnPassant))
		}

		// Pushes. Promotions count as tactical even in capture mode.
		to := from + Square(push)
		if occ&bb(to) == 0 {
			if toPromo {
				buf = appendPromotions(buf, from, to, pawn, NoPiece, us)
			} else if mode == GenAll {
				buf = append(buf, NewMove(from, to, pawn, NoPiece, NoPiece, FlagNone))
				if from.Rank() == startRank {
					to2 := to + Square(push)
					if occ&bb(to2) == 0 {
						buf = append(buf, NewMove(from, to2, pawn, NoPiece, NoPiece, FlagNone))
					}
				}
			}
		}
	}
	return buf
}

func appendPromotions(buf []Move, from, to Square, pawn, captured Piece, us Color) []Move {
	for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
		buf = append(buf, NewMove(from, to, pawn, captured, MakePiece(us, pt), FlagNone))
	}
	return buf
}

// genCastles emits castling moves: rights intact, path empty, king neither
// in check nor crossing or landing on an attacked square.
func (b *Board) genCastles(buf []Move) []Move {
	us := b.sideToMove
	them := us.Other()
	occ := b.AllOccupied()

	type castle struct {
		right      CastlingRights
		kFrom, kTo Square
		empty      uint64 // squares between king and rook
		safe       [2]Square
	}
	var candidates [2]castle
	if us == White {
		candidates = [2]castle{
			{CastleWhiteKing, 4, 6, bb(5) | bb(6), [2]Square{5, 6}},
			{CastleWhiteQueen, 4, 2, bb(1) | bb(2) | bb(3), [2]Square{3, 2}},
		}
	} else {
		candidates = [2]castle{
			{CastleBlackKing, 60, 62, bb(61) | bb(62), [2]Square{61, 62}},
			{CastleBlackQueen, 60, 58, bb(57) | bb(58) | bb(59), [2]Square{59, 58}},
		}
	}

	king := MakePiece(us, King)
	for _, c := range candidates {
		if b.castlingRights&c.right == 0 || occ&c.empty != 0 {
			continue
		}
		if b.isAttacked(c.kFrom, them, occ) ||
			b.isAttacked(c.safe[0], them, occ) ||
			b.isAttacked(c.safe[1], them, occ) {
			continue
		}
		buf = append(buf, NewMove(c.kFrom, c.kTo, king, NoPiece, NoPiece, FlagCastle))
	}
	return buf
}
