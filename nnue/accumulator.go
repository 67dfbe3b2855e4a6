package nnue

import "peregrine/chess"

// Accumulator holds the hidden-layer pre-activations from both
// perspectives. The search keeps one per ply: a child is computed from its
// parent by the 1-4 feature rows a move changes, and undo is a stack pop,
// so the parent is never mutated.
type Accumulator struct {
	values [2][HiddenSize]int16
}

// Refresh rebuilds the accumulator from the full board. The incremental
// path must always agree with this.
func (a *Accumulator) Refresh(net *Network, b *chess.Board) {
	a.values[chess.White] = net.FeatureBias
	a.values[chess.Black] = net.FeatureBias
	for sq := chess.Square(0); sq < 64; sq++ {
		if p := b.PieceAt(sq); p != chess.NoPiece {
			a.add(net, p, sq)
		}
	}
}

func (a *Accumulator) add(net *Network, p chess.Piece, sq chess.Square) {
	for _, c := range [2]chess.Color{chess.White, chess.Black} {
		row := net.FeatureWeights[featureIndex(c, p, sq)*HiddenSize:]
		vals := &a.values[c]
		for i := 0; i < HiddenSize; i++ {
			vals[i] += row[i]
		}
	}
}

func (a *Accumulator) sub(net *Network, p chess.Piece, sq chess.Square) {
	for _, c := range [2]chess.Color{chess.White, chess.Black} {
		row := net.FeatureWeights[featureIndex(c, p, sq)*HiddenSize:]
		vals := &a.values[c]
		for i := 0; i < HiddenSize; i++ {
			vals[i] -= row[i]
		}
	}
}

// ApplyMove fills a with the accumulator of the position after m, given the
// parent accumulator of the position before it. mover is the side that
// plays m.
func (a *Accumulator) ApplyMove(net *Network, parent *Accumulator, mover chess.Color, m chess.Move) {
	*a = *parent

	from, to := m.From(), m.To()
	moved := m.Piece()

	a.sub(net, moved, from)
	if promo := m.Promotion(); promo != chess.NoPiece {
		a.add(net, promo, to)
	} else {
		a.add(net, moved, to)
	}

	if captured := m.Captured(); captured != chess.NoPiece {
		capSq := to
		if m.Flag() == chess.FlagEnPassant {
			capSq = to - 8
			if mover == chess.Black {
				capSq = to + 8
			}
		}
		a.sub(net, captured, capSq)
	}

	if m.Flag() == chess.FlagCastle {
		rookFrom, rookTo := chess.RookCastleSquares(to)
		rook := chess.MakePiece(mover, chess.Rook)
		a.sub(net, rook, rookFrom)
		a.add(net, rook, rookTo)
	}
}

// Evaluate produces the centipawn-scaled score from the side to move's
// perspective. SCReLU: clamp to [0, QA], square, weigh.
func (a *Accumulator) Evaluate(net *Network, stm chess.Color) int {
	var sum int64
	for half, c := range [2]chess.Color{stm, stm.Other()} {
		vals := &a.values[c]
		weights := net.OutputWeights[half*HiddenSize:]
		for i := 0; i < HiddenSize; i++ {
			v := int64(vals[i])
			if v < 0 {
				v = 0
			} else if v > QA {
				v = QA
			}
			sum += v * v * int64(weights[i])
		}
	}
	return int((sum/QA + int64(net.OutputBias)) * Scale / (QA * QB))
}
