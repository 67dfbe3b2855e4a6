package engine

import "peregrine/chess"

// Move ordering tiers. The hash move leads, then promotions and captures,
// then the quiet-move heuristics: killers, counter move, history. Quiet
// history scores stay below every tactical tier.
const (
	hashMoveScore  int32 = 30_000
	promotionScore int32 = 25_000
	captureScore   int32 = 20_000
	killerScore    int32 = 18_000
	counterScore   int32 = 17_000
)

// mvvLva scores captures by most valuable victim, least valuable attacker.
// Indexed [victim][attacker].
var mvvLva = [7][7]int32{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 14, 13, 12, 11, 10, 15}, // victim pawn
	{0, 24, 23, 22, 21, 20, 25}, // victim knight
	{0, 34, 33, 32, 31, 30, 35}, // victim bishop
	{0, 44, 43, 42, 41, 40, 45}, // victim rook
	{0, 54, 53, 52, 51, 50, 55}, // victim queen
	{0, 0, 0, 0, 0, 0, 0},
}

type scoredMove struct {
	move  chess.Move
	score int32
}

// movePicker yields moves best-first with one selection-sort step per
// call, so a node that cuts off early never pays for a full sort.
type movePicker struct {
	moves []scoredMove
	index int
}

func (p *movePicker) next() (chess.Move, bool) {
	if p.index >= len(p.moves) {
		return chess.NullMove, false
	}
	best := p.index
	for i := p.index + 1; i < len(p.moves); i++ {
		if p.moves[i].score > p.moves[best].score {
			best = i
		}
	}
	p.moves[p.index], p.moves[best] = p.moves[best], p.moves[p.index]
	m := p.moves[p.index].move
	p.index++
	return m, true
}

// scoreMoves ranks the full move list for the main search.
func (s *Searcher) scoreMoves(b *chess.Board, moves []chess.Move, buf []scoredMove, ttMove, prevMove chess.Move, ply int) movePicker {
	us := b.SideToMove()
	buf = buf[:0]
	for _, m := range moves {
		var score int32
		switch {
		case m == ttMove:
			score = hashMoveScore
		case m.Promotion() != chess.NoPiece:
			score = promotionScore + int32(pieceValues[m.Promotion().Type()])
		case m.Captured() != chess.NoPiece:
			score = captureScore + mvvLva[m.Captured().Type()][m.Piece().Type()]
		case m == s.killers[ply][0]:
			score = killerScore + 100
		case m == s.killers[ply][1]:
			score = killerScore
		default:
			score = s.history[us][m.From()][m.To()]
			if prevMove != chess.NullMove && s.counters[us][prevMove.From()][prevMove.To()] == m {
				score += counterScore
			}
		}
		buf = append(buf, scoredMove{move: m, score: score})
	}
	return movePicker{moves: buf}
}

// scoreCaptures ranks the tactical move list for quiescence.
func (s *Searcher) scoreCaptures(moves []chess.Move, buf []scoredMove, ttMove chess.Move) movePicker {
	buf = buf[:0]
	for _, m := range moves {
		var score int32
		switch {
		case m == ttMove:
			score = hashMoveScore
		case m.Promotion() != chess.NoPiece:
			score = promotionScore + int32(pieceValues[m.Promotion().Type()])
		default:
			score = mvvLva[m.Captured().Type()][m.Piece().Type()]
		}
		buf = append(buf, scoredMove{move: m, score: score})
	}
	return movePicker{moves: buf}
}

const historyMax = 16_384

// updateQuietHeuristics rewards the quiet move that produced a beta cutoff
// and penalizes the quiets tried before it. The gravity update keeps
// history values bounded by historyMax.
func (s *Searcher) updateQuietHeuristics(b *chess.Board, cutoff chess.Move, tried []chess.Move, prevMove chess.Move, depth, ply int) {
	if s.killers[ply][0] != cutoff {
		s.killers[ply][1] = s.killers[ply][0]
		s.killers[ply][0] = cutoff
	}
	us := b.SideToMove()
	if prevMove != chess.NullMove {
		s.counters[us][prevMove.From()][prevMove.To()] = cutoff
	}

	bonus := int32(Min(depth*depth, 400))
	s.bumpHistory(us, cutoff, bonus)
	for _, m := range tried {
		if m != cutoff {
			s.bumpHistory(us, m, -bonus)
		}
	}
}

func (s *Searcher) bumpHistory(us chess.Color, m chess.Move, bonus int32) {
	entry := &s.history[us][m.From()][m.To()]
	*entry += bonus - *entry*Abs(bonus)/historyMax
}
