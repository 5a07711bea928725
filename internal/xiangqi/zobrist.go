package xiangqi

const zobristPieceTypes = 8 // PieceType 范围 [1..7]，0 保留空位不用

var (
	zobristPieces [2][zobristPieceTypes][NumSquares]uint64
	zobristSide   uint64
)

func init() {
	initZobrist()
}

func initZobrist() {
	seed := uint64(0x9E3779B97F4A7C15)
	next := func() uint64 {
		seed += 0x9E3779B97F4A7C15
		z := seed
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}

	for side := 0; side < 2; side++ {
		for pt := 1; pt < zobristPieceTypes; pt++ {
			for s := 0; s < NumSquares; s++ {
				zobristPieces[side][pt][s] = next()
			}
		}
	}
	zobristSide = next()
}

func pieceHashKey(pc Piece, s Square) uint64 {
	if pc == NoPiece || !s.Valid() {
		return 0
	}
	pt := int(pc.Type())
	if pt <= 0 || pt >= zobristPieceTypes {
		return 0
	}
	return zobristPieces[pc.Side()][pt][s]
}

// calculateHash 全量计算当前局面的 Zobrist 哈希
func (b *Board) calculateHash() uint64 {
	var h uint64
	for s := Square(0); s < NumSquares; s++ {
		h ^= pieceHashKey(b.squares[s], s)
	}
	if b.sideToMove == Black {
		h ^= zobristSide
	}
	return h
}

// hashAfter 增量计算 from->to 走完（并换边）后的哈希
func (b *Board) hashAfter(from, to Square) uint64 {
	pc := b.squares[from]
	h := b.hash
	h ^= pieceHashKey(pc, from)
	h ^= pieceHashKey(b.squares[to], to)
	h ^= pieceHashKey(pc, to)
	h ^= zobristSide
	return h
}
