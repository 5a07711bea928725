package xiangqi

// undoToken 记录一次试走，用于原地恢复
type undoToken struct {
	from, to Square
	moved    Piece
	captured Piece
}

// tryMove 只改棋盘格子，不动轮走方、哈希和历史
func (b *Board) tryMove(from, to Square) undoToken {
	t := undoToken{from: from, to: to, moved: b.squares[from], captured: b.squares[to]}
	b.squares[to] = t.moved
	b.squares[from] = NoPiece
	return t
}

func (b *Board) untryMove(t undoToken) {
	b.squares[t.from] = t.moved
	b.squares[t.to] = t.captured
}

// IsValidMove 依次检查：
// 1. from 上是轮走方的棋子
// 2. to 不是己方棋子
// 3. 符合棋子走法
// 4. 走完己方不被将军
// 5. 走完两将不对脸
// 6. 若走完将军对方，不能是同一方在同一局面第三次将军（长将）
func (b *Board) IsValidMove(from, to Square) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}
	pc := b.squares[from]
	if pc == NoPiece || pc.Side() != b.sideToMove {
		return false
	}
	dst := b.squares[to]
	if dst != NoPiece && dst.Side() == pc.Side() {
		return false
	}
	if !b.validShape(pc, from, to) {
		return false
	}

	side := b.sideToMove
	key := PositionKey(b.hashAfter(from, to))
	irreversible := dst != NoPiece || pc.Type() == PiecePawn

	t := b.tryMove(from, to)
	ok := !b.IsInCheck(side) && !b.kingsFace()
	givesCheck := ok && b.IsInCheck(side.Opposite())
	b.untryMove(t)

	// 吃子或动兵会开启新的重复窗口，不可能构成长将
	if givesCheck && !irreversible && b.isPerpetualCheck(key, side) {
		return false
	}
	return ok
}

func (b *Board) IsLegal(m Move) bool {
	return b.IsValidMove(m.From, m.To)
}

// isPerpetualCheck：当前重复窗口内，checker 已经两次将军并留下同一局面，
// 这一步就是第三次，禁止。
func (b *Board) isPerpetualCheck(key PositionKey, checker Side) bool {
	count := 0
	for _, p := range b.repetitionWindow() {
		if p.key == key && p.givesCheck && p.mover == checker {
			count++
		}
	}
	return count >= 2
}

// LegalMovesFrom 暴力扫描全部 90 个目标格
func (b *Board) LegalMovesFrom(from Square) []Square {
	var out []Square
	for to := Square(0); to < NumSquares; to++ {
		if b.IsValidMove(from, to) {
			out = append(out, to)
		}
	}
	return out
}

// GeneratePseudoMovesForSide 按棋子类型生成候选着法（未检查将军、对脸、长将）
func (b *Board) GeneratePseudoMovesForSide(side Side) []Move {
	moves := make([]Move, 0, 64)
	for s := Square(0); s < NumSquares; s++ {
		pc := b.squares[s]
		if pc == NoPiece || pc.Side() != side {
			continue
		}
		switch pc.Type() {
		case PieceKing:
			genKingMoves(b, s, &moves)
		case PieceAdvisor:
			genAdvisorMoves(b, s, &moves)
		case PieceElephant:
			genElephantMoves(b, s, &moves)
		case PieceRook:
			genRookMoves(b, s, &moves)
		case PieceKnight:
			genKnightMoves(b, s, &moves)
		case PieceCannon:
			genCannonMoves(b, s, &moves)
		case PiecePawn:
			genPawnMoves(b, s, &moves)
		}
	}
	return moves
}

// AllLegalMoves 轮走方的全部合法着法
func (b *Board) AllLegalMoves() []Move {
	pseudo := b.GeneratePseudoMovesForSide(b.sideToMove)
	out := pseudo[:0]
	for _, m := range pseudo {
		if b.IsValidMove(m.From, m.To) {
			out = append(out, m)
		}
	}
	return out
}

func (b *Board) hasLegalMove() bool {
	for _, m := range b.GeneratePseudoMovesForSide(b.sideToMove) {
		if b.IsValidMove(m.From, m.To) {
			return true
		}
	}
	return false
}
