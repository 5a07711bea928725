package xiangqi

type Side int8

const (
	NoSide Side = -1
	Red    Side = 0
	Black  Side = 1
)

func (s Side) Opposite() Side {
	switch s {
	case Red:
		return Black
	case Black:
		return Red
	}
	return NoSide
}

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Black:
		return "black"
	}
	return "none"
}

type PieceType int8

const (
	PieceNone     PieceType = iota
	PieceKing               // 帅 / 将
	PieceAdvisor            // 仕 / 士
	PieceElephant           // 相 / 象
	PieceRook               // 车
	PieceKnight             // 马
	PieceCannon             // 炮
	PiecePawn               // 兵 / 卒
)

type Piece int8 // 0=空；>0 红；<0 黑；abs=PieceType

const NoPiece Piece = 0

func MakePiece(side Side, pt PieceType) Piece {
	if pt <= PieceNone || pt > PiecePawn || side == NoSide {
		return NoPiece
	}
	if side == Red {
		return Piece(pt)
	}
	return -Piece(pt)
}

func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

func (p Piece) Side() Side {
	if p == 0 {
		return NoSide
	}
	if p > 0 {
		return Red
	}
	return Black
}

// Square = rank*Files + file；rank 0 是红方底线
type Square int

const NoSquare Square = -1

func NewSquare(file, rank int) Square {
	if !onBoard(file, rank) {
		return NoSquare
	}
	return Square(rank*Files + file)
}

func (s Square) File() int { return int(s) % Files }
func (s Square) Rank() int { return int(s) / Files }

func (s Square) Valid() bool { return s >= 0 && s < NumSquares }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('0' + s.Rank())})
}

type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// String 返回 UCI 坐标，如 h2e2
func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// PositionKey 是 (棋子摆放, 轮走方) 的 Zobrist 指纹，和历史无关
type PositionKey uint64
