package chess

// Move packs a full move description into 32 bits:
//
//	bits  0-5   from square
//	bits  6-11  to square
//	bits 12-15  promotion piece (NoPiece when not a promotion)
//	bits 16-19  moved piece
//	bits 20-23  captured piece (NoPiece when quiet)
//	bits 24-25  flag
//
// Moves are produced only by the generator and are immutable.
type Move uint32

const NullMove Move = 0

// Move flags. Promotions are signalled by a non-zero promotion piece,
// double pushes are derivable from the from/to ranks of a pawn move.
const (
	FlagNone uint8 = iota
	FlagCastle
	FlagEnPassant
)

const (
	moveToShift      = 6
	movePromoShift   = 12
	movePieceShift   = 16
	moveCaptureShift = 20
	moveFlagShift    = 24
)

// NewMove assembles a move from its components.
func NewMove(from, to Square, piece, captured, promo Piece, flag uint8) Move {
	return Move(uint32(from&0x3F) |
		uint32(to&0x3F)<<moveToShift |
		uint32(promo&0xF)<<movePromoShift |
		uint32(piece&0xF)<<movePieceShift |
		uint32(captured&0xF)<<moveCaptureShift |
		uint32(flag&0x3)<<moveFlagShift)
}

// From returns the origin square.
func (m Move) From() Square { return Square(uint32(m) & 0x3F) }

// To returns the destination square.
func (m Move) To() Square { return Square(uint32(m) >> moveToShift & 0x3F) }

// Promotion returns the promotion piece, or NoPiece.
func (m Move) Promotion() Piece { return Piece(uint32(m) >> movePromoShift & 0xF) }

// Piece returns the moved piece.
func (m Move) Piece() Piece { return Piece(uint32(m) >> movePieceShift & 0xF) }

// Captured returns the captured piece, or NoPiece for quiet moves.
// For en passant the captured piece is the opposing pawn.
func (m Move) Captured() Piece { return Piece(uint32(m) >> moveCaptureShift & 0xF) }

// Flag returns the special-move flag.
func (m Move) Flag() uint8 { return uint8(uint32(m) >> moveFlagShift & 0x3) }

// IsCapture reports whether the move takes a piece (including en passant).
func (m Move) IsCapture() bool { return m.Captured() != NoPiece }

// IsQuiet reports whether the move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool { return m.Captured() == NoPiece && m.Promotion() == NoPiece }

var promoChar = [7]byte{0, 0, 'n', 'b', 'r', 'q', 0}

// String renders the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if p := m.Promotion(); p != NoPiece {
		s += string(promoChar[p.Type()])
	}
	return s
}
