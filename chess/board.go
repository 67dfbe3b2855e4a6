package chess

import "math/bits"

// Piece encodes a colored chess piece in 4 bits:
//   - piece & 7 gives the type in [1..6]
//   - piece & 8 != 0 indicates Black
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is the colorless piece kind, used to index piece tables.
type PieceType uint8

const (
	NoPieceType PieceType = 0
	Pawn        PieceType = 1
	Knight      PieceType = 2
	Bishop      PieceType = 3
	Rook        PieceType = 4
	Queen       PieceType = 5
	King        PieceType = 6
)

// Type returns the colorless type of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side owning the piece. NoPiece reports White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// MakePiece combines a side and a colorless type into a Piece.
func MakePiece(c Color, pt PieceType) Piece {
	if pt == NoPieceType {
		return NoPiece
	}
	return Piece(pt) | Piece(c<<3)
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

// CastlingRights is a bitmask of the four castling permissions.
type CastlingRights uint8

const (
	CastleWhiteKing CastlingRights = 1 << iota
	CastleWhiteQueen
	CastleBlackKing
	CastleBlackQueen
)

// Square indexes the board 0..63, a1=0, h1=7, a8=56, h8=63.
type Square int

const NoSquare Square = -1

// File and Rank return the 0-based file/rank of the square.
func (sq Square) File() int { return int(sq) & 7 }
func (sq Square) Rank() int { return int(sq) >> 3 }

// String renders the square in algebraic coordinates ("e4").
func (sq Square) String() string {
	if sq == NoSquare {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// Board is the full mutable game state. All mutation goes through
// MakeMove/UnmakeMove (and the null-move pair), which keep the bitboards,
// the mailbox and the Zobrist key in sync incrementally.
type Board struct {
	// pieceBB[color][pieceType], pieceType in [1..6]. Index 0 unused.
	pieceBB [2][7]uint64

	// occupied[color] is always the union of that color's piece bitboards.
	occupied [2]uint64

	// squares mirrors the bitboards for O(1) piece-at-square lookups.
	squares [64]Piece

	sideToMove     Color
	castlingRights CastlingRights
	enPassant      Square // NoSquare when no double push preceded
	halfmoveClock  int
	fullmoveNumber int

	hash uint64
}

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// CastlingRightsMask returns the current castling permissions.
func (b *Board) CastlingRightsMask() CastlingRights { return b.castlingRights }

// EnPassantSquare returns the en-passant target square or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassant }

// HalfmoveClock returns the half-moves since the last capture or pawn move.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the full move counter (incremented after Black moves).
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// Hash returns the incrementally maintained Zobrist key.
func (b *Board) Hash() uint64 { return b.hash }

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq Square) Piece { return b.squares[sq] }

// Pieces returns the bitboard of one piece kind for one side.
func (b *Board) Pieces(c Color, pt PieceType) uint64 { return b.pieceBB[c][pt] }

// Occupied returns the occupancy bitboard of one side.
func (b *Board) Occupied(c Color) uint64 { return b.occupied[c] }

// AllOccupied returns the bitboard of every occupied square.
func (b *Board) AllOccupied() uint64 { return b.occupied[White] | b.occupied[Black] }

// KingSquare returns the square of the given side's king.
func (b *Board) KingSquare(c Color) Square {
	return Square(bits.TrailingZeros64(b.pieceBB[c][King]))
}

// InCheck reports whether the given side's king is attacked.
func (b *Board) InCheck(c Color) bool {
	return b.isAttacked(b.KingSquare(c), c.Other(), b.AllOccupied())
}

// HasNonPawnMaterial reports whether the side owns any piece besides
// pawns and the king. Null-move search disables itself without it.
func (b *Board) HasNonPawnMaterial(c Color) bool {
	return b.pieceBB[c][Knight]|b.pieceBB[c][Bishop]|b.pieceBB[c][Rook]|b.pieceBB[c][Queen] != 0
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func (b *Board) HasLegalMoves() bool {
	var buf [maxMoves]Move
	moves := b.GenerateMoves(buf[:0], GenAll)
	for _, m := range moves {
		if ok, st := b.MakeMove(m); ok {
			b.UnmakeMove(m, st)
			return true
		}
	}
	return false
}

// InCheckmate reports whether the side to move is checkmated.
func (b *Board) InCheckmate() bool {
	return b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}

// InStalemate reports whether the side to move is stalemated.
func (b *Board) InStalemate() bool {
	return !b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}

// InsufficientMaterial reports positions that no sequence of legal moves can
// win: bare kings, or king and a single minor piece versus a bare king.
func (b *Board) InsufficientMaterial() bool {
	if b.pieceBB[White][Pawn]|b.pieceBB[Black][Pawn] != 0 {
		return false
	}
	if b.pieceBB[White][Rook]|b.pieceBB[Black][Rook]|b.pieceBB[White][Queen]|b.pieceBB[Black][Queen] != 0 {
		return false
	}
	minors := bits.OnesCount64(b.pieceBB[White][Knight] | b.pieceBB[White][Bishop] |
		b.pieceBB[Black][Knight] | b.pieceBB[Black][Bishop])
	return minors <= 1
}

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint(sq) }

// popLSB removes and returns the index of the least significant set bit.
func popLSB(mask *uint64) Square {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return Square(idx)
}

// addPiece places a piece on an empty square, updating bitboards,
// occupancy, the mailbox and the hash.
func (b *Board) addPiece(sq Square, p Piece) {
	c := p.Color()
	b.squares[sq] = p
	b.pieceBB[c][p.Type()] |= bb(sq)
	b.occupied[c] |= bb(sq)
	b.hash ^= zobristPiece[p][sq]
}

// removePiece clears a square, updating bitboards, occupancy, the mailbox
// and the hash. Returns the removed piece.
func (b *Board) removePiece(sq Square) Piece {
	p := b.squares[sq]
	if p == NoPiece {
		return NoPiece
	}
	c := p.Color()
	b.squares[sq] = NoPiece
	b.pieceBB[c][p.Type()] &^= bb(sq)
	b.occupied[c] &^= bb(sq)
	b.hash ^= zobristPiece[p][sq]
	return p
}

// Validate cross-checks the mailbox against the bitboards, the occupancy
// unions and the incremental hash. Intended for tests and debugging.
func (b *Board) Validate() bool {
	var pieceBB [2][7]uint64
	var occupied [2]uint64
	kings := [2]int{}
	for sq := Square(0); sq < 64; sq++ {
		p := b.squares[sq]
		if p == NoPiece {
			continue
		}
		c := p.Color()
		pieceBB[c][p.Type()] |= bb(sq)
		occupied[c] |= bb(sq)
		if p.Type() == King {
			kings[c]++
		}
	}
	if pieceBB != b.pieceBB || occupied != b.occupied {
		return false
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return false
	}
	return b.hash == b.ComputeZobrist()
}
