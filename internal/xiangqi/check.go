package xiangqi

// IsAttacked 判断 target 是否被 bySide 一方的某个棋子按走法“够得着”。
// 炮必须恰好隔一子，这一点已包含在 validShape 中（目标格有子时要求一个炮架）。
func (b *Board) IsAttacked(target Square, bySide Side) bool {
	if !target.Valid() {
		return false
	}
	for s := Square(0); s < NumSquares; s++ {
		pc := b.squares[s]
		if pc == NoPiece || pc.Side() != bySide || s == target {
			continue
		}
		if b.validShape(pc, s, target) {
			return true
		}
	}
	return false
}

// IsInCheck 判断 side 的将帅是否被将军；将帅不在棋盘上视为被将（已被吃）
func (b *Board) IsInCheck(side Side) bool {
	king, ok := b.findKing(side)
	if !ok {
		return true
	}
	return b.IsAttacked(king, side.Opposite())
}
