package chess

// MoveState records everything needed to undo a move exactly, including the
// previous hash, so UnmakeMove restores bit-for-bit state.
type MoveState struct {
	captured      Piece
	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevHash      uint64
	rookFrom      Square
	rookTo        Square
}

// NullState is the undo record of a null move.
type NullState struct {
	prevEnPassant Square
	prevHalfmove  int
	prevHash      uint64
}

// castlingStrip[sq] holds the castling rights lost when a piece moves from
// or is captured on sq. Covers king moves, rook moves and rook captures on
// the home squares in one table lookup.
var castlingStrip = func() (t [64]CastlingRights) {
	t[0] = CastleWhiteQueen
	t[7] = CastleWhiteKing
	t[4] = CastleWhiteKing | CastleWhiteQueen
	t[56] = CastleBlackQueen
	t[63] = CastleBlackKing
	t[60] = CastleBlackKing | CastleBlackQueen
	return
}()

// MakeMove applies a pseudo-legal move. If the move would leave the mover's
// king attacked it is rejected: the board is restored and ok is false.
// Every field including the hash is updated incrementally.
func (b *Board) MakeMove(m Move) (ok bool, st MoveState) {
	us := b.sideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	moved := m.Piece()
	flag := m.Flag()

	st.captured = m.Captured()
	st.prevCastling = b.castlingRights
	st.prevEnPassant = b.enPassant
	st.prevHalfmove = b.halfmoveClock
	st.prevFullmove = b.fullmoveNumber
	st.prevHash = b.hash
	st.rookFrom, st.rookTo = NoSquare, NoSquare

	if b.enPassant != NoSquare {
		b.hash ^= zobristEnPassant[b.enPassant.File()]
		b.enPassant = NoSquare
	}

	// Remove the captured piece. En passant captures behind the target.
	if flag == FlagEnPassant {
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		b.removePiece(capSq)
	} else if st.captured != NoPiece {
		b.removePiece(to)
	}

	b.removePiece(from)
	if promo := m.Promotion(); promo != NoPiece {
		b.addPiece(to, promo)
	} else {
		b.addPiece(to, moved)
	}

	if flag == FlagCastle {
		st.rookFrom, st.rookTo = RookCastleSquares(to)
		rook := b.removePiece(st.rookFrom)
		b.addPiece(st.rookTo, rook)
	}

	if strip := castlingStrip[from] | castlingStrip[to]; b.castlingRights&strip != 0 {
		b.hash ^= zobristCastle[b.castlingRights]
		b.castlingRights &^= strip
		b.hash ^= zobristCastle[b.castlingRights]
	}

	// A double push exposes the crossed square to en passant.
	if moved.Type() == Pawn && (int(to)-int(from) == 16 || int(from)-int(to) == 16) {
		b.enPassant = (from + to) / 2
		b.hash ^= zobristEnPassant[b.enPassant.File()]
	}

	b.sideToMove = them
	b.hash ^= zobristSide

	if b.isAttacked(b.KingSquare(us), them, b.AllOccupied()) {
		b.UnmakeMove(m, st)
		return false, st
	}

	if moved.Type() == Pawn || st.captured != NoPiece {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if us == Black {
		b.fullmoveNumber++
	}
	return true, st
}

// RookCastleSquares maps the king's castling destination to the rook's
// from/to squares.
func RookCastleSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case 6:
		return 7, 5
	case 2:
		return 0, 3
	case 62:
		return 63, 61
	case 58:
		return 56, 59
	}
	return NoSquare, NoSquare
}

// UnmakeMove restores the exact state before MakeMove(m), hash included.
func (b *Board) UnmakeMove(m Move, st MoveState) {
	us := b.sideToMove.Other() // the side that made the move
	from, to := m.From(), m.To()

	b.removePiece(to)
	if m.Promotion() != NoPiece {
		b.addPiece(from, MakePiece(us, Pawn))
	} else {
		b.addPiece(from, m.Piece())
	}

	if m.Flag() == FlagCastle && st.rookFrom != NoSquare {
		rook := b.removePiece(st.rookTo)
		b.addPiece(st.rookFrom, rook)
	}

	if st.captured != NoPiece {
		capSq := to
		if m.Flag() == FlagEnPassant {
			capSq = to - 8
			if us == Black {
				capSq = to + 8
			}
		}
		b.addPiece(capSq, st.captured)
	}

	b.sideToMove = us
	b.castlingRights = st.prevCastling
	b.enPassant = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.fullmoveNumber = st.prevFullmove
	b.hash = st.prevHash
}

// MakeNullMove passes the turn without moving a piece, for null-move
// pruning. En passant is cleared, the clocks advance, the hash updates.
func (b *Board) MakeNullMove() (st NullState) {
	st.prevEnPassant = b.enPassant
	st.prevHalfmove = b.halfmoveClock
	st.prevHash = b.hash

	if b.enPassant != NoSquare {
		b.hash ^= zobristEnPassant[b.enPassant.File()]
		b.enPassant = NoSquare
	}
	b.halfmoveClock++
	b.sideToMove = b.sideToMove.Other()
	b.hash ^= zobristSide
	return st
}

// UnmakeNullMove restores the state before MakeNullMove.
func (b *Board) UnmakeNullMove(st NullState) {
	b.sideToMove = b.sideToMove.Other()
	b.enPassant = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.hash = st.prevHash
}
