package xiangqi

// {df, dr}
var rookDirs = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// 马的 8 种“日”字：终点 + 马腿
var knightLegMoves = [8]struct {
	Df, Dr int // 终点
	Lf, Lr int // 马腿
}{
	{-1, +2, 0, +1},
	{+1, +2, 0, +1},
	{-1, -2, 0, -1},
	{+1, -2, 0, -1},
	{+2, -1, +1, 0},
	{+2, +1, +1, 0},
	{-2, -1, -1, 0},
	{-2, +1, -1, 0},
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// countBetween 同列或同行两点之间（不含端点）的棋子数
func (b *Board) countBetween(from, to Square) int {
	ff, fr := from.File(), from.Rank()
	tf, tr := to.File(), to.Rank()
	n := 0
	if ff == tf {
		lo, hi := fr, tr
		if lo > hi {
			lo, hi = hi, lo
		}
		for r := lo + 1; r < hi; r++ {
			if b.squares[sq(ff, r)] != NoPiece {
				n++
			}
		}
		return n
	}
	lo, hi := ff, tf
	if lo > hi {
		lo, hi = hi, lo
	}
	for f := lo + 1; f < hi; f++ {
		if b.squares[sq(f, fr)] != NoPiece {
			n++
		}
	}
	return n
}

// validShape 只看棋子本身的走法（含塞象眼、蹩马腿、炮架），
// 不管目标格是否己方棋子，也不管走完是否被将军。
func (b *Board) validShape(pc Piece, from, to Square) bool {
	ff, fr := from.File(), from.Rank()
	tf, tr := to.File(), to.Rank()
	df, dr := tf-ff, tr-fr
	adf, adr := abs(df), abs(dr)
	side := pc.Side()

	switch pc.Type() {
	case PieceKing:
		return inPalace(side, tf, tr) && adf+adr == 1

	case PieceAdvisor:
		return inPalace(side, tf, tr) && adf == 1 && adr == 1

	case PieceElephant:
		if adf != 2 || adr != 2 || !onOwnSide(side, tr) {
			return false
		}
		return b.squares[sq(ff+df/2, fr+dr/2)] == NoPiece

	case PieceRook:
		if (df != 0) == (dr != 0) {
			return false
		}
		return b.countBetween(from, to) == 0

	case PieceKnight:
		var leg Square
		switch {
		case adf == 2 && adr == 1:
			leg = sq(ff+df/2, fr)
		case adf == 1 && adr == 2:
			leg = sq(ff, fr+dr/2)
		default:
			return false
		}
		return b.squares[leg] == NoPiece

	case PieceCannon:
		if (df != 0) == (dr != 0) {
			return false
		}
		between := b.countBetween(from, to)
		if b.squares[to] == NoPiece {
			return between == 0
		}
		return between == 1

	case PiecePawn:
		if df == 0 && dr == pawnDir(side) {
			return true
		}
		return dr == 0 && adf == 1 && pawnCrossedRiver(side, fr)
	}
	return false
}

func (b *Board) addIfTarget(side Side, from Square, file, rank int, moves *[]Move) {
	if !onBoard(file, rank) {
		return
	}
	to := sq(file, rank)
	dst := b.squares[to]
	if dst == NoPiece || dst.Side() != side {
		*moves = append(*moves, Move{From: from, To: to})
	}
}

// 车：横竖随便走
func genRookMoves(b *Board, from Square, moves *[]Move) {
	file, rank := from.File(), from.Rank()
	side := b.squares[from].Side()
	for _, d := range rookDirs {
		f, r := file+d[0], rank+d[1]
		for onBoard(f, r) {
			to := sq(f, r)
			pc := b.squares[to]
			if pc == NoPiece {
				*moves = append(*moves, Move{From: from, To: to})
			} else {
				if pc.Side() != side {
					*moves = append(*moves, Move{From: from, To: to})
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
}

// 炮：车走法 + 隔一子吃
func genCannonMoves(b *Board, from Square, moves *[]Move) {
	file, rank := from.File(), from.Rank()
	side := b.squares[from].Side()
	for _, d := range rookDirs {
		f, r := file+d[0], rank+d[1]

		// 走子阶段：直到第一个棋子（炮架）
		for onBoard(f, r) {
			to := sq(f, r)
			f += d[0]
			r += d[1]
			if b.squares[to] != NoPiece {
				break
			}
			*moves = append(*moves, Move{From: from, To: to})
		}

		// 吃子阶段：越过炮架，遇到第一子可吃
		for onBoard(f, r) {
			pc := b.squares[sq(f, r)]
			if pc != NoPiece {
				if pc.Side() != side {
					*moves = append(*moves, Move{From: from, To: sq(f, r)})
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
}

func genKnightMoves(b *Board, from Square, moves *[]Move) {
	file, rank := from.File(), from.Rank()
	side := b.squares[from].Side()
	for _, m := range knightLegMoves {
		f, r := file+m.Df, rank+m.Dr
		if !onBoard(f, r) {
			continue
		}
		if b.squares[sq(file+m.Lf, rank+m.Lr)] != NoPiece {
			continue // 蹩马腿
		}
		b.addIfTarget(side, from, f, r, moves)
	}
}

// 相：田字 + 不过河 + 塞象眼
func genElephantMoves(b *Board, from Square, moves *[]Move) {
	file, rank := from.File(), from.Rank()
	side := b.squares[from].Side()
	for _, d := range bishopDirs {
		f, r := file+2*d[0], rank+2*d[1]
		if !onBoard(f, r) || !onOwnSide(side, r) {
			continue
		}
		if b.squares[sq(file+d[0], rank+d[1])] != NoPiece {
			continue
		}
		b.addIfTarget(side, from, f, r, moves)
	}
}

// 士：九宫内斜走一格
func genAdvisorMoves(b *Board, from Square, moves *[]Move) {
	file, rank := from.File(), from.Rank()
	side := b.squares[from].Side()
	for _, d := range bishopDirs {
		f, r := file+d[0], rank+d[1]
		if !inPalace(side, f, r) {
			continue
		}
		b.addIfTarget(side, from, f, r, moves)
	}
}

// 将：九宫内上下左右一格；对脸由合法性检查处理
func genKingMoves(b *Board, from Square, moves *[]Move) {
	file, rank := from.File(), from.Rank()
	side := b.squares[from].Side()
	for _, d := range rookDirs {
		f, r := file+d[0], rank+d[1]
		if !inPalace(side, f, r) {
			continue
		}
		b.addIfTarget(side, from, f, r, moves)
	}
}

// 兵：未过河只能前进一格，过河后可左右
func genPawnMoves(b *Board, from Square, moves *[]Move) {
	file, rank := from.File(), from.Rank()
	side := b.squares[from].Side()
	b.addIfTarget(side, from, file, rank+pawnDir(side), moves)
	if pawnCrossedRiver(side, rank) {
		b.addIfTarget(side, from, file-1, rank, moves)
		b.addIfTarget(side, from, file+1, rank, moves)
	}
}
