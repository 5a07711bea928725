package xiangqi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidFEN = errors.New("invalid FEN")

// FEN: <摆放> <w|b> - - <半回合> <回合>，第 9 行（黑方底线）在前
func (b *Board) FEN() string {
	var sb strings.Builder
	for r := Ranks - 1; r >= 0; r-- {
		if r < Ranks-1 {
			sb.WriteByte('/')
		}
		empty := 0
		for f := 0; f < Files; f++ {
			pc := b.squares[sq(f, r)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pc.FEN())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if b.sideToMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	sb.WriteString(" - - ")
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}

// ParseFEN 解析出一个没有历史的新棋盘。
// 半回合/回合字段缺失或解析失败时使用默认值 0/1（兼容用 "-" 占位的引擎）。
func ParseFEN(fen string) (*Board, error) {
	b, _, _, err := parseFEN(fen)
	return b, err
}

// parseFEN 额外报告两个计数字段是否真正解析成功
func parseFEN(fen string) (b *Board, haveHalf, haveFull bool, err error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, false, false, fmt.Errorf("%w: empty", ErrInvalidFEN)
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Ranks {
		return nil, false, false, fmt.Errorf("%w: %d ranks", ErrInvalidFEN, len(rows))
	}

	b = &Board{sideToMove: Red, fullmoveNumber: 1}
	for i, row := range rows {
		rank := Ranks - 1 - i
		file := 0
		for _, ch := range row {
			if ch >= '1' && ch <= '9' {
				file += int(ch - '0')
				continue
			}
			pc, ok := PieceFromFEN(ch)
			if !ok {
				return nil, false, false, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, ch)
			}
			if file >= Files {
				return nil, false, false, fmt.Errorf("%w: rank %d too wide", ErrInvalidFEN, rank)
			}
			b.squares[sq(file, rank)] = pc
			file++
		}
		if file > Files {
			return nil, false, false, fmt.Errorf("%w: rank %d too wide", ErrInvalidFEN, rank)
		}
	}

	if len(parts) >= 2 {
		switch parts[1] {
		case "w":
			b.sideToMove = Red
		case "b":
			b.sideToMove = Black
		default:
			return nil, false, false, fmt.Errorf("%w: active color %q", ErrInvalidFEN, parts[1])
		}
	}
	if len(parts) >= 5 {
		if n, err := strconv.Atoi(parts[4]); err == nil && n >= 0 {
			b.halfmoveClock = n
			haveHalf = true
		}
	}
	if len(parts) >= 6 {
		if n, err := strconv.Atoi(parts[5]); err == nil && n >= 1 {
			b.fullmoveNumber = n
			haveFull = true
		}
	}

	b.hash = b.calculateHash()
	return b, haveHalf, haveFull, nil
}

// LoadFEN 原子替换：解析失败时棋盘保持不变。
// 计数字段缺失或无法解析时沿用棋盘当前的值。
func (b *Board) LoadFEN(fen string) error {
	nb, haveHalf, haveFull, err := parseFEN(fen)
	if err != nil {
		return err
	}
	if !haveHalf {
		nb.halfmoveClock = b.halfmoveClock
	}
	if !haveFull {
		nb.fullmoveNumber = b.fullmoveNumber
	}
	*b = *nb
	return nil
}
