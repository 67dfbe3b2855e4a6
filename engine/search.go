package engine

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"peregrine/chess"
	"peregrine/nnue"
)

const (
	// MaxDepth caps iterative deepening.
	MaxDepth = 64
	// MaxPly caps the search stack; extensions can push plies past the
	// nominal depth.
	MaxPly = 128
)

// Searcher owns all per-search state: the transposition table, the
// accumulator stack, ordering heuristics and reusable move buffers. One
// Searcher drives one sequential search at a time.
type Searcher struct {
	tt  *TransTable
	net *nnue.Network

	accs      [MaxPly + 2]nnue.Accumulator
	killers   [MaxPly + 2][2]chess.Move
	history   [2][64][64]int32
	counters  [2][64][64]chess.Move
	prevMoves [MaxPly + 2]chess.Move
	hashes    hashStack

	moveBufs  [MaxPly + 2][256]chess.Move
	scoreBufs [MaxPly + 2][256]scoredMove

	pvTable [MaxPly + 2][MaxPly + 2]chess.Move
	pvLen   [MaxPly + 2]int

	timer         timeHandler
	stopRequested atomic.Bool
	aborted       bool
	nodes         uint64
	out           io.Writer

	// Debug switches, normally all false.
	pruningDisabled bool // no NMP, RFP, LMR or aspiration windows
	leafEvalOnly    bool // static evaluation at depth 0 instead of quiescence
	ttDisabled      bool

	mu sync.Mutex // serializes Search against concurrent option changes
}

// NewSearcher builds a searcher around a loaded network and a hash size in
// megabytes.
func NewSearcher(net *nnue.Network, hashMB int) *Searcher {
	return &Searcher{tt: NewTransTable(hashMB), net: net}
}

// ResizeHash reallocates the transposition table.
func (s *Searcher) ResizeHash(megabytes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tt.Resize(megabytes)
}

// NewGame clears all state carried between searches.
func (s *Searcher) NewGame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tt.Clear()
	s.killers = [MaxPly + 2][2]chess.Move{}
	s.history = [2][64][64]int32{}
	s.counters = [2][64][64]chess.Move{}
}

// RequestStop asks the running search to abort at its next node check.
// Safe to call from another goroutine.
func (s *Searcher) RequestStop() { s.stopRequested.Store(true) }

// ClearStop discards a pending stop request. Callers launching Search on a
// separate goroutine must clear before the launch, not inside it, so a stop
// arriving in between is never lost.
func (s *Searcher) ClearStop() { s.stopRequested.Store(false) }

// Nodes returns the node count of the last search.
func (s *Searcher) Nodes() uint64 { return s.nodes }

// Search runs iterative deepening under the given limits and returns the
// best move of the deepest fully completed iteration. gameHashes is the
// Zobrist history of the game so far (including the current position) for
// repetition detection across the root; nil is accepted. One info line per
// completed iteration is written to out.
func (s *Searcher) Search(b *chess.Board, gameHashes []uint64, limits Limits, out io.Writer) chess.Move {
	s.mu.Lock()
	defer s.mu.Unlock()

	if out == nil {
		out = io.Discard
	}
	s.out = out
	s.aborted = false
	s.nodes = 0
	s.timer.startTimer(limits, b.SideToMove() == chess.White)
	s.tt.NextGeneration()

	s.hashes.reset(gameHashes)
	if n := len(s.hashes.hashes); n == 0 || s.hashes.hashes[n-1] != b.Hash() {
		s.hashes.push(b.Hash())
	}
	s.accs[0].Refresh(s.net, b)
	s.prevMoves[0] = chess.NullMove

	legal := b.GenerateLegalMoves()
	if len(legal) == 0 {
		return chess.NullMove
	}
	bestMove := legal[0]

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	prevScore := 0
	for depth := 1; depth <= maxDepth; depth++ {
		score := s.searchWithAspiration(b, depth, prevScore)
		if s.aborted {
			break
		}
		prevScore = score
		if s.pvLen[0] > 0 {
			bestMove = s.pvTable[0][0]
		}
		s.printInfo(depth, score)
		if s.timer.softExpired() {
			break
		}
	}
	return bestMove
}

// searchWithAspiration wraps the root search in a window around the
// previous iteration's score, widening on failure until a full window.
func (s *Searcher) searchWithAspiration(b *chess.Board, depth, prevScore int) int {
	alpha, beta := -Infinity, Infinity
	delta := 50
	if depth >= 4 && !s.pruningDisabled {
		alpha = Max(prevScore-delta, -Infinity)
		beta = Min(prevScore+delta, Infinity)
	}
	for {
		score := s.negamax(b, depth, alpha, beta, 0, true)
		if s.aborted {
			return score
		}
		switch {
		case score <= alpha:
			alpha = Max(score-delta, -Infinity)
		case score >= beta:
			beta = Min(score+delta, Infinity)
		default:
			return score
		}
		delta *= 2
		if delta > 200 {
			alpha, beta = -Infinity, Infinity
		}
	}
}

func (s *Searcher) printInfo(depth, score int) {
	elapsed := s.timer.elapsed()
	nps := uint64(0)
	if secs := elapsed.Seconds(); secs > 0 {
		nps = uint64(float64(s.nodes) / secs)
	}
	var pv strings.Builder
	for i := 0; i < s.pvLen[0]; i++ {
		if i > 0 {
			pv.WriteByte(' ')
		}
		pv.WriteString(s.pvTable[0][i].String())
	}
	fmt.Fprintf(s.out, "info depth %d score %s nodes %d nps %d time %d pv %s\n",
		depth, formatScore(score), s.nodes, nps, elapsed.Milliseconds(), pv.String())
}

// shouldStop polls the stop flag and the hard deadline at a coarse node
// interval. Once set, aborted stays set for the rest of the iteration.
func (s *Searcher) shouldStop() bool {
	if s.aborted {
		return true
	}
	if s.nodes&2047 == 0 {
		if s.stopRequested.Load() || s.timer.hardExpired() {
			s.aborted = true
		}
	}
	return s.aborted
}

func (s *Searcher) updatePV(ply int, m chess.Move) {
	s.pvTable[ply][0] = m
	copy(s.pvTable[ply][1:], s.pvTable[ply+1][:s.pvLen[ply+1]])
	s.pvLen[ply] = s.pvLen[ply+1] + 1
}

func (s *Searcher) negamax(b *chess.Board, depth, alpha, beta, ply int, allowNull bool) int {
	s.pvLen[ply] = 0
	s.nodes++
	if s.shouldStop() {
		return 0
	}

	if ply > 0 && s.isDraw(b) {
		return drawScore
	}
	if ply >= MaxPly {
		return evaluate(b, &s.accs[ply], s.net)
	}

	us := b.SideToMove()
	inCheck := b.InCheck(us)
	if inCheck {
		depth++ // search checks one ply deeper
	}
	if depth <= 0 {
		if s.leafEvalOnly {
			return evaluate(b, &s.accs[ply], s.net)
		}
		return s.quiescence(b, alpha, beta, ply)
	}

	isPV := beta-alpha > 1

	ttMove := chess.NullMove
	if !s.ttDisabled {
		var ttScore int
		var usable bool
		ttMove, ttScore, usable = s.tt.Probe(b.Hash(), depth, ply, alpha, beta)
		if usable && ply > 0 && !isPV {
			return ttScore
		}
	}

	var static int
	if !inCheck {
		static = evaluate(b, &s.accs[ply], s.net)
	}

	if !s.pruningDisabled && !isPV && !inCheck {
		// Reverse futility: a static eval far above beta at shallow depth
		// is very unlikely to drop back into the window.
		if depth <= 6 && static-100*depth >= beta && Abs(beta) < mateThreshold {
			return static
		}

		// Null move: hand the opponent a free tempo; if the reduced search
		// still fails high the real position almost certainly would too.
		// Disabled without non-pawn material, where zugzwang rules.
		if allowNull && depth >= 3 && static >= beta && b.HasNonPawnMaterial(us) {
			st := b.MakeNullMove()
			s.hashes.push(b.Hash())
			s.prevMoves[ply+1] = chess.NullMove
			s.accs[ply+1] = s.accs[ply]
			r := 3 + depth/4
			score := -s.negamax(b, depth-1-r, -beta, -beta+1, ply+1, false)
			s.hashes.pop()
			b.UnmakeNullMove(st)
			if s.aborted {
				return 0
			}
			if score >= beta {
				if score >= mateThreshold {
					score = beta // never trust a null-move mate
				}
				return score
			}
		}
	}

	moves := b.GenerateMoves(s.moveBufs[ply][:0], chess.GenAll)
	picker := s.scoreMoves(b, moves, s.scoreBufs[ply][:0], ttMove, s.prevMoves[ply], ply)

	var quiets [64]chess.Move
	numQuiets := 0
	legalMoves := 0
	bestScore := -Infinity
	bestMove := chess.NullMove
	bound := BoundUpper

	for m, ok := picker.next(); ok; m, ok = picker.next() {
		applied, st := b.MakeMove(m)
		if !applied {
			continue
		}
		legalMoves++
		s.accs[ply+1].ApplyMove(s.net, &s.accs[ply], us, m)
		s.hashes.push(b.Hash())
		s.prevMoves[ply+1] = m

		newDepth := depth - 1
		var score int
		if legalMoves == 1 {
			score = -s.negamax(b, newDepth, -beta, -alpha, ply+1, true)
		} else {
			// Late quiet moves start with a reduced null-window probe;
			// anything that beats alpha is re-searched properly.
			reduction := 0
			if !s.pruningDisabled && depth >= 3 && legalMoves > 3 && m.IsQuiet() && !inCheck {
				reduction = lmrTable[Min(depth, MaxDepth)][Min(legalMoves, 63)]
				if isPV && reduction > 0 {
					reduction--
				}
				reduction = Clamp(reduction, 0, newDepth-1)
			}
			score = -s.negamax(b, newDepth-reduction, -alpha-1, -alpha, ply+1, true)
			if score > alpha && reduction > 0 {
				score = -s.negamax(b, newDepth, -alpha-1, -alpha, ply+1, true)
			}
			if score > alpha && score < beta {
				score = -s.negamax(b, newDepth, -beta, -alpha, ply+1, true)
			}
		}

		s.hashes.pop()
		b.UnmakeMove(m, st)
		if s.aborted {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				bound = BoundExact
				s.updatePV(ply, m)
				if alpha >= beta {
					bound = BoundLower
					if m.IsQuiet() {
						s.updateQuietHeuristics(b, m, quiets[:numQuiets], s.prevMoves[ply], depth, ply)
					}
					break
				}
			}
		}
		if m.IsQuiet() && numQuiets < len(quiets) {
			quiets[numQuiets] = m
			numQuiets++
		}
	}

	if legalMoves == 0 {
		if inCheck {
			return -MateValue + ply
		}
		return drawScore
	}

	if !s.ttDisabled {
		s.tt.Store(b.Hash(), bestMove, bestScore, depth, ply, bound)
	}
	return bestScore
}

// quiescence resolves captures and promotions until the position is quiet,
// so leaf evaluations never land mid-exchange.
func (s *Searcher) quiescence(b *chess.Board, alpha, beta, ply int) int {
	s.nodes++
	if s.shouldStop() {
		return 0
	}
	if ply >= MaxPly {
		return evaluate(b, &s.accs[ply], s.net)
	}

	ttMove := chess.NullMove
	if !s.ttDisabled {
		var ttScore int
		var usable bool
		ttMove, ttScore, usable = s.tt.Probe(b.Hash(), 0, ply, alpha, beta)
		if usable {
			return ttScore
		}
	}

	static := evaluate(b, &s.accs[ply], s.net)
	if static >= beta {
		return static
	}
	alpha = Max(alpha, static)

	us := b.SideToMove()
	moves := b.GenerateMoves(s.moveBufs[ply][:0], chess.GenCaptures)
	picker := s.scoreCaptures(moves, s.scoreBufs[ply][:0], ttMove)

	bestScore := static
	bound := BoundUpper
	bestMove := chess.NullMove
	for m, ok := picker.next(); ok; m, ok = picker.next() {
		if m.Promotion() == chess.NoPiece {
			// Delta pruning: even winning this piece cannot lift alpha.
			if static+pieceValues[m.Captured().Type()]+200 <= alpha {
				continue
			}
			// Skip exchanges the swap-off already loses.
			if see(b, m) < 0 {
				continue
			}
		}

		applied, st := b.MakeMove(m)
		if !applied {
			continue
		}
		s.accs[ply+1].ApplyMove(s.net, &s.accs[ply], us, m)
		score := -s.quiescence(b, -beta, -alpha, ply+1)
		b.UnmakeMove(m, st)
		if s.aborted {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				bound = BoundExact
				if alpha >= beta {
					bound = BoundLower
					break
				}
			}
		}
	}

	if !s.ttDisabled {
		s.tt.Store(b.Hash(), bestMove, bestScore, 0, ply, bound)
	}
	return bestScore
}
