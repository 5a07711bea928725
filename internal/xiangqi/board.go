package xiangqi

import "errors"

const (
	Files      = 9
	Ranks      = 10
	NumSquares = Files * Ranks

	RiverRank = 5 // 红方过河后 rank >= 5，黑方过河后 rank <= 4

	sixtyMoveLimit = 120 // 半回合
)

// 标准开局
const StartFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1"

var ErrMalformedPosition = errors.New("malformed position")

func onBoard(file, rank int) bool {
	return file >= 0 && file < Files && rank >= 0 && rank < Ranks
}

func sq(file, rank int) Square { return Square(rank*Files + file) }

// 九宫：files 3..5，红 0..2，黑 7..9
func inPalace(side Side, file, rank int) bool {
	if file < 3 || file > 5 {
		return false
	}
	if side == Red {
		return rank >= 0 && rank <= 2
	}
	if side == Black {
		return rank >= 7 && rank <= 9
	}
	return false
}

// 相/象不能过河
func onOwnSide(side Side, rank int) bool {
	if side == Red {
		return rank < RiverRank
	}
	return rank >= RiverRank
}

// 兵的前进方向：红 +1，黑 -1
func pawnDir(side Side) int {
	if side == Red {
		return +1
	}
	if side == Black {
		return -1
	}
	return 0
}

func pawnCrossedRiver(side Side, rank int) bool {
	if side == Red {
		return rank >= RiverRank
	}
	if side == Black {
		return rank < RiverRank
	}
	return false
}

// Board 持有棋盘、轮走方、时钟以及每一步的历史记录。
// 零值不可用，请使用 NewBoard / NewEmptyBoard / ParseFEN。
type Board struct {
	squares        [NumSquares]Piece
	sideToMove     Side
	halfmoveClock  int
	fullmoveNumber int
	hash           uint64

	plies []plyRecord
}

// plyRecord 是一步棋的完整记录：走子前的棋盘快照、走子前的时钟和哈希，
// 以及走完后用于长将/重复局面判定的指纹。
type plyRecord struct {
	move   Move
	before [NumSquares]Piece

	prevHalfmove int
	prevFullmove int
	prevHash     uint64

	key          PositionKey // 走完后的局面（含轮走方）
	mover        Side
	givesCheck   bool
	irreversible bool // 吃子或动兵
}

func NewEmptyBoard() *Board {
	b := &Board{sideToMove: Red, fullmoveNumber: 1}
	b.hash = b.calculateHash()
	return b
}

func NewBoard() *Board {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		panic("xiangqi: bad StartFEN: " + err.Error())
	}
	return b
}

// Clone 深拷贝：棋盘是数组，历史快照也是数组，不会与原棋盘共享存储
func (b *Board) Clone() *Board {
	nb := *b
	nb.plies = make([]plyRecord, len(b.plies))
	copy(nb.plies, b.plies)
	return &nb
}

func (b *Board) SideToMove() Side    { return b.sideToMove }
func (b *Board) HalfmoveClock() int  { return b.halfmoveClock }
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }
func (b *Board) Key() PositionKey    { return PositionKey(b.hash) }
func (b *Board) Ply() int            { return len(b.plies) }

func (b *Board) PieceAt(file, rank int) Piece {
	if !onBoard(file, rank) {
		return NoPiece
	}
	return b.squares[sq(file, rank)]
}

func (b *Board) At(s Square) Piece {
	if !s.Valid() {
		return NoPiece
	}
	return b.squares[s]
}

// SetPiece 越界时什么都不做
func (b *Board) SetPiece(file, rank int, p Piece) {
	if !onBoard(file, rank) {
		return
	}
	s := sq(file, rank)
	b.hash ^= pieceHashKey(b.squares[s], s)
	b.squares[s] = p
	b.hash ^= pieceHashKey(p, s)
}

func (b *Board) SetSideToMove(side Side) {
	if side != Red && side != Black {
		return
	}
	if side != b.sideToMove {
		b.sideToMove = side
		b.hash ^= zobristSide
	}
}

// Clear 清空棋子，保留轮走方；历史一并清空
func (b *Board) Clear() {
	b.squares = [NumSquares]Piece{}
	b.ClearHistory()
	b.hash = b.calculateHash()
}

// ClearHistory 丢弃全部历史并重置时钟，用于摆棋确认后开始新对局
func (b *Board) ClearHistory() {
	b.plies = nil
	b.halfmoveClock = 0
	b.fullmoveNumber = 1
}

// FlipVertical 上下翻转棋盘（rank r -> 9-r）
func (b *Board) FlipVertical() {
	var ns [NumSquares]Piece
	for s := Square(0); s < NumSquares; s++ {
		ns[sq(s.File(), Ranks-1-s.Rank())] = b.squares[s]
	}
	b.squares = ns
	b.hash = b.calculateHash()
}

// Confirm 摆棋结束：红帅在上半部则翻转成红下黑上，随后清空历史与时钟
func (b *Board) Confirm() {
	if s, ok := b.findKing(Red); ok && s.Rank() >= RiverRank {
		b.FlipVertical()
	}
	b.ClearHistory()
}

// Validate 要求双方各有且只有一个将帅
func (b *Board) Validate() error {
	var kings [2]int
	for _, pc := range b.squares {
		if pc != NoPiece && pc.Type() == PieceKing {
			kings[pc.Side()]++
		}
	}
	if kings[Red] != 1 || kings[Black] != 1 {
		return ErrMalformedPosition
	}
	return nil
}

func (b *Board) findKing(side Side) (Square, bool) {
	king := MakePiece(side, PieceKing)
	for s, pc := range b.squares {
		if pc == king {
			return Square(s), true
		}
	}
	return NoSquare, false
}

func (b *Board) KingExists(side Side) bool {
	_, ok := b.findKing(side)
	return ok
}

// kingsFace 两将同列且中间无子
func (b *Board) kingsFace() bool {
	red, ok1 := b.findKing(Red)
	black, ok2 := b.findKing(Black)
	if !ok1 || !ok2 {
		return false
	}
	if red.File() != black.File() {
		return false
	}
	lo, hi := red.Rank(), black.Rank()
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo + 1; r < hi; r++ {
		if b.squares[sq(red.File(), r)] != NoPiece {
			return false
		}
	}
	return true
}

// History 返回已走的着法（UCI），按顺序
func (b *Board) History() []Move {
	out := make([]Move, len(b.plies))
	for i, p := range b.plies {
		out[i] = p.move
	}
	return out
}

// PositionBefore 返回第 i 步（0 起）走子前的局面，用于历史记谱
func (b *Board) PositionBefore(i int) (*Board, bool) {
	if i < 0 || i >= len(b.plies) {
		return nil, false
	}
	p := b.plies[i]
	nb := &Board{
		squares:        p.before,
		sideToMove:     p.mover,
		halfmoveClock:  p.prevHalfmove,
		fullmoveNumber: p.prevFullmove,
		hash:           p.prevHash,
	}
	return nb, true
}

// repetitionWindow 是最近一次吃子/动兵（含该步）以来的记录
func (b *Board) repetitionWindow() []plyRecord {
	for i := len(b.plies) - 1; i >= 0; i-- {
		if b.plies[i].irreversible {
			return b.plies[i:]
		}
	}
	return b.plies
}
