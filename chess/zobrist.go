package chess

// Zobrist keys for pieces, castling rights, en-passant file and side to
// move. Keys are generated once at init from a fixed-seed xorshift so that
// hashes are stable across runs and tests.
var (
	zobristPiece     [15][64]uint64 // indexed by piece code
	zobristCastle    [16]uint64     // indexed by the castling-rights mask
	zobristEnPassant [8]uint64      // indexed by en-passant file
	zobristSide      uint64         // XORed in when Black is to move
)

const zobristSeed = 0x9A3C_5D17_42F0_81EB

func init() {
	s := uint64(zobristSeed)
	next := func() uint64 {
		s ^= s >> 12
		s ^= s << 25
		s ^= s >> 27
		return s * 0x2545F4914F6CDD1D
	}
	for p := 0; p < 15; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = next()
		}
	}
	for cr := 0; cr < 16; cr++ {
		zobristCastle[cr] = next()
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = next()
	}
	zobristSide = next()
}

// ComputeZobrist recomputes the hash from scratch. The incremental key kept
// by MakeMove/UnmakeMove must always equal this value; tests rely on it.
func (b *Board) ComputeZobrist() uint64 {
	var key uint64
	for sq := Square(0); sq < 64; sq++ {
		if p := b.squares[sq]; p != NoPiece {
			key ^= zobristPiece[p][sq]
		}
	}
	if b.sideToMove == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[b.castlingRights]
	if b.enPassant != NoSquare {
		key ^= zobristEnPassant[b.enPassant.File()]
	}
	return key
}
