package engine

import (
	"math/bits"

	"peregrine/chess"
	"peregrine/nnue"
)

// Score bounds. Mate scores are MateValue minus the mating ply; anything
// beyond mateThreshold is treated as a mate when formatting and when
// adjusting transposition entries.
const (
	Infinity      = 32_000
	MateValue     = 31_000
	mateThreshold = MateValue - 2*MaxPly
	drawScore     = 0
)

// pieceValues, indexed by chess.PieceType, are used for exchange
// evaluation, ordering and the material scaling of the network output.
var pieceValues = [7]int{0, 98, 435, 422, 593, 1011, 0}

// evaluate scores the position from the side to move's perspective. The
// network output is scaled toward zero as material leaves the board, which
// softens eval swings in drawish endings, and clamped inside the mate
// window so static scores never masquerade as mates.
func evaluate(b *chess.Board, acc *nnue.Accumulator, net *nnue.Network) int {
	score := acc.Evaluate(net, b.SideToMove())

	material := 0
	for _, c := range [2]chess.Color{chess.White, chess.Black} {
		for pt := chess.Knight; pt <= chess.Queen; pt++ {
			material += bits.OnesCount64(b.Pieces(c, pt)) * pieceValues[pt]
		}
	}
	score = score * (700 + material/32) / 1024

	return Clamp(score, -mateThreshold+1, mateThreshold-1)
}
