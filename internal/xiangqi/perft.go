package xiangqi

// Perft 统计 depth 层内的叶子节点数，用于核对走法生成
func (b *Board) Perft(depth int) int64 {
	if depth <= 0 {
		return 1
	}
	moves := b.AllLegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}
	var nodes int64
	for _, m := range moves {
		b.MakeMove(m)
		nodes += b.Perft(depth - 1)
		b.UndoMove()
	}
	return nodes
}

// Divide 按第一步拆分的 Perft
func (b *Board) Divide(depth int) map[Move]int64 {
	out := make(map[Move]int64)
	if depth <= 0 {
		return out
	}
	for _, m := range b.AllLegalMoves() {
		b.MakeMove(m)
		out[m] = b.Perft(depth - 1)
		b.UndoMove()
	}
	return out
}
