package xiangqi

// MakeMove 合法则落子并记录历史，否则返回 false 且棋盘不变
func (b *Board) MakeMove(m Move) bool {
	if !b.IsValidMove(m.From, m.To) {
		return false
	}

	pc := b.squares[m.From]
	captured := b.squares[m.To]
	rec := plyRecord{
		move:         m,
		before:       b.squares,
		prevHalfmove: b.halfmoveClock,
		prevFullmove: b.fullmoveNumber,
		prevHash:     b.hash,
		mover:        b.sideToMove,
		irreversible: captured != NoPiece || pc.Type() == PiecePawn,
	}

	b.hash = b.hashAfter(m.From, m.To)
	b.squares[m.To] = pc
	b.squares[m.From] = NoPiece

	if rec.irreversible {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if b.sideToMove == Black {
		b.fullmoveNumber++
	}
	b.sideToMove = b.sideToMove.Opposite()

	rec.key = PositionKey(b.hash)
	rec.givesCheck = b.IsInCheck(b.sideToMove)
	b.plies = append(b.plies, rec)
	return true
}

func (b *Board) MakeMoveUCI(s string) bool {
	m, ok := ParseUCI(s)
	if !ok {
		return false
	}
	return b.MakeMove(m)
}

// UndoMove 撤销最后一步，恢复棋盘、轮走方、两个时钟和哈希
func (b *Board) UndoMove() (Move, bool) {
	n := len(b.plies)
	if n == 0 {
		return Move{}, false
	}
	rec := b.plies[n-1]
	b.plies = b.plies[:n-1]

	b.squares = rec.before
	b.sideToMove = rec.mover
	b.halfmoveClock = rec.prevHalfmove
	b.fullmoveNumber = rec.prevFullmove
	b.hash = rec.prevHash
	return rec.move, true
}

// LastMove 最近一步
func (b *Board) LastMove() (Move, bool) {
	if len(b.plies) == 0 {
		return Move{}, false
	}
	return b.plies[len(b.plies)-1].move, true
}
