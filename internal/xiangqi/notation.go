package xiangqi

import "strings"

var redNumerals = [9]string{"一", "二", "三", "四", "五", "六", "七", "八", "九"}
var blackNumerals = [9]string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}

const (
	actionAdvance  = "进"
	actionRetreat  = "退"
	actionTraverse = "平"

	prefixFront = "前"
	prefixBack  = "后"
)

func numerals(side Side) *[9]string {
	if side == Red {
		return &redNumerals
	}
	return &blackNumerals
}

// 红方从右往左数（i 线 = 一），黑方从左往右数（a 线 = 1）
func fileNumeral(side Side, file int) string {
	if side == Red {
		return redNumerals[Files-1-file]
	}
	return blackNumerals[file]
}

// ParseUCI 只接受 [a-i][0-9][a-i][0-9]
func ParseUCI(s string) (Move, bool) {
	if len(s) != 4 {
		return Move{}, false
	}
	from, ok1 := parseSquare(s[0], s[1])
	to, ok2 := parseSquare(s[2], s[3])
	if !ok1 || !ok2 {
		return Move{}, false
	}
	return Move{From: from, To: to}, true
}

func parseSquare(f, r byte) (Square, bool) {
	if f < 'a' || f > 'i' || r < '0' || r > '9' {
		return NoSquare, false
	}
	return sq(int(f-'a'), int(r-'0')), true
}

// MoveToICCS h2e2 -> H2-E2
func MoveToICCS(m Move) string {
	if !m.From.Valid() || !m.To.Valid() {
		return m.String()
	}
	return strings.ToUpper(m.From.String()) + "-" + strings.ToUpper(m.To.String())
}

// ParseICCS H2-E2 -> h2e2，纯格式转换，不检查合法性
func ParseICCS(text string) (Move, bool) {
	if text == "" {
		return Move{}, false
	}
	clean := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(text), "-", ""))
	return ParseUCI(clean)
}

// ICCSToMove 解析并要求是当前局面的合法着法
func (b *Board) ICCSToMove(text string) (Move, bool) {
	m, ok := ParseICCS(text)
	if !ok || !b.IsLegal(m) {
		return Move{}, false
	}
	return m, true
}

// MoveToChinese 以当前局面（走子前）生成中文记谱，如 炮二平五
func (b *Board) MoveToChinese(m Move) string {
	return chineseNotation(&b.squares, m)
}

// ChineseToMove 生成全部合法着法逐一比对中文记谱。
// 两列各有多个同种兵时“前兵进一”之类可能对应多步，此时返回 false。
func (b *Board) ChineseToMove(text string) (Move, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Move{}, false
	}
	var found Move
	matches := 0
	for _, m := range b.AllLegalMoves() {
		if chineseNotation(&b.squares, m) == text {
			found = m
			matches++
		}
	}
	if matches != 1 {
		return Move{}, false
	}
	return found, true
}

// ChineseHistory 用每一步走子前的快照生成整盘的中文记谱
func (b *Board) ChineseHistory() []string {
	out := make([]string, len(b.plies))
	for i := range b.plies {
		out[i] = chineseNotation(&b.plies[i].before, b.plies[i].move)
	}
	return out
}

func chineseNotation(squares *[NumSquares]Piece, m Move) string {
	if !m.From.Valid() || !m.To.Valid() {
		return m.String()
	}
	pc := squares[m.From]
	if pc == NoPiece {
		return m.String()
	}
	side := pc.Side()
	nums := numerals(side)
	ff, fr := m.From.File(), m.From.Rank()
	tf, tr := m.To.File(), m.To.Rank()

	// 同列同种棋子，按“从前到后”排列：红方 rank 大者在前，黑方 rank 小者在前
	var pile []int
	for i := 0; i < Ranks; i++ {
		r := i
		if side == Red {
			r = Ranks - 1 - i
		}
		if squares[sq(ff, r)] == pc {
			pile = append(pile, r)
		}
	}
	prefix := ""
	if len(pile) >= 2 {
		idx := 0
		for i, r := range pile {
			if r == fr {
				idx = i
				break
			}
		}
		switch idx {
		case 0:
			prefix = prefixFront
		case len(pile) - 1:
			prefix = prefixBack
		default:
			prefix = nums[idx]
		}
	}

	var action, target string
	dr := tr - fr
	if dr == 0 {
		action = actionTraverse
		target = fileNumeral(side, tf)
	} else {
		if dr*pawnDir(side) > 0 {
			action = actionAdvance
		} else {
			action = actionRetreat
		}
		switch pc.Type() {
		case PieceRook, PieceCannon, PiecePawn, PieceKing:
			target = nums[abs(dr)-1]
		default:
			target = fileNumeral(side, tf)
		}
	}

	if prefix != "" {
		return prefix + pc.DisplayName() + action + target
	}
	return pc.DisplayName() + fileNumeral(side, ff) + action + target
}
