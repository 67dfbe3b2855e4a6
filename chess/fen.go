package chess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartPosFEN is the standard initial position.
const StartPosFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var pieceChars = map[byte]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop,
	'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop,
	'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

var fenChars = [15]byte{
	WhitePawn: 'P', WhiteKnight: 'N', WhiteBishop: 'B',
	WhiteRook: 'R', WhiteQueen: 'Q', WhiteKing: 'K',
	BlackPawn: 'p', BlackKnight: 'n', BlackBishop: 'b',
	BlackRook: 'r', BlackQueen: 'q', BlackKing: 'k',
}

// ParseFEN builds a Board from a FEN string. The halfmove clock and
// fullmove number are optional and default to 0 and 1.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, errors.New("invalid FEN: want at least 4 fields")
	}

	b := &Board{enPassant: NoSquare, fullmoveNumber: 1}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid FEN: %d ranks, want 8", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p, known := pieceChars[ch]
			if !known {
				return nil, fmt.Errorf("invalid FEN: unknown piece %q", ch)
			}
			if file >= 8 {
				return nil, fmt.Errorf("invalid FEN: rank %d overflows", rank+1)
			}
			b.addPiece(Square(rank*8+file), p)
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("invalid FEN: rank %d has %d files", rank+1, file)
		}
	}

	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return nil, fmt.Errorf("invalid FEN: side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				b.castlingRights |= CastleWhiteKing
			case 'Q':
				b.castlingRights |= CastleWhiteQueen
			case 'k':
				b.castlingRights |= CastleBlackKing
			case 'q':
				b.castlingRights |= CastleBlackQueen
			default:
				return nil, fmt.Errorf("invalid FEN: castling flag %q", fields[2][i])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := parseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("invalid FEN: en passant: %w", err)
		}
		b.enPassant = sq
	}

	if len(fields) > 4 {
		hm, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("invalid FEN: halfmove clock %q", fields[4])
		}
		b.halfmoveClock = hm
	}
	if len(fields) > 5 {
		fm, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("invalid FEN: fullmove number %q", fields[5])
		}
		b.fullmoveNumber = fm
	}

	if b.pieceBB[White][King] == 0 || b.pieceBB[Black][King] == 0 {
		return nil, errors.New("invalid FEN: both kings required")
	}

	b.hash = b.ComputeZobrist()
	return b, nil
}

func parseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("bad square %q", s)
	}
	return Square(int(s[1]-'1')*8 + int(s[0]-'a')), nil
}

// ToFEN renders the current position as a FEN string.
func (b *Board) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[rank*8+file]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(fenChars[p])
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if b.sideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if b.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		for _, c := range []struct {
			right CastlingRights
			ch    byte
		}{
			{CastleWhiteKing, 'K'}, {CastleWhiteQueen, 'Q'},
			{CastleBlackKing, 'k'}, {CastleBlackQueen, 'q'},
		} {
			if b.castlingRights&c.right != 0 {
				sb.WriteByte(c.ch)
			}
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.enPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}
