package xiangqi

var letterToPieceType = map[rune]PieceType{
	'k': PieceKing,
	'a': PieceAdvisor,
	'b': PieceElephant,
	'r': PieceRook,
	'n': PieceKnight,
	'c': PieceCannon,
	'p': PiecePawn,
}

var pieceTypeToLetter = [...]rune{
	PieceKing:     'k',
	PieceAdvisor:  'a',
	PieceElephant: 'b',
	PieceRook:     'r',
	PieceKnight:   'n',
	PieceCannon:   'c',
	PiecePawn:     'p',
}

// [type][side]
var displayNames = [...][2]string{
	PieceKing:     {"帅", "将"},
	PieceAdvisor:  {"仕", "士"},
	PieceElephant: {"相", "象"},
	PieceRook:     {"车", "車"},
	PieceKnight:   {"马", "馬"},
	PieceCannon:   {"炮", "砲"},
	PiecePawn:     {"兵", "卒"},
}

// PieceFromFEN 大写红方、小写黑方；数字或未知字符返回 false
func PieceFromFEN(ch rune) (Piece, bool) {
	side := Black
	if ch >= 'A' && ch <= 'Z' {
		side = Red
		ch += 'a' - 'A'
	}
	// 只认 ASCII 字母，避免 Unicode 大小写折叠（如 U+212A）
	pt, ok := letterToPieceType[ch]
	if !ok {
		return NoPiece, false
	}
	return MakePiece(side, pt), true
}

func (p Piece) FEN() rune {
	if p == NoPiece {
		return '.'
	}
	base := pieceTypeToLetter[p.Type()]
	if p.Side() == Red {
		return base - 'a' + 'A'
	}
	return base
}

func (p Piece) DisplayName() string {
	if p == NoPiece {
		return ""
	}
	return displayNames[p.Type()][p.Side()]
}

func (p Piece) String() string {
	if p == NoPiece {
		return "."
	}
	return string(p.FEN())
}
