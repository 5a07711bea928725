// Package pgn 读写象棋对局记录：标签 + 着法文本。
// 着法可以是中文纵线格式（炮二平五）、ICCS（H2-E2）或 UCI（h2e2）。
package pgn

import (
	"errors"
	"fmt"

	"xiangqi/internal/xiangqi"
)

var (
	ErrBadMove = errors.New("bad move in record")
	ErrDecode  = errors.New("cannot decode record text")
)

// 结果标记
const (
	ResultRedWins   = "1-0"
	ResultBlackWins = "0-1"
	ResultDraw      = "1/2-1/2"
	ResultUnknown   = "*"
)

const (
	TagGame   = "Game"
	TagDate   = "Date"
	TagRed    = "Red"
	TagBlack  = "Black"
	TagFormat = "Format"
	TagFEN    = "FEN"
	TagResult = "Result"
)

// Game 是读入的一盘棋；StartFEN 为空表示标准开局
type Game struct {
	Tags     map[string]string
	StartFEN string
	Moves    []xiangqi.Move
}

func (g *Game) Tag(name string) string {
	return g.Tags[name]
}

// Replay 从起始局面依次走完全部着法
func Replay(g *Game) (*xiangqi.Board, error) {
	fen := g.StartFEN
	if fen == "" {
		fen = xiangqi.StartFEN
	}
	b, err := xiangqi.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	for i, m := range g.Moves {
		if !b.MakeMove(m) {
			return b, fmt.Errorf("%w: ply %d %s", ErrBadMove, i+1, m)
		}
	}
	return b, nil
}

// Result 按局面给出结果标记：将死、困毙或将帅被吃都是轮走方输
func Result(b *xiangqi.Board) string {
	switch st := b.Status(); {
	case st.IsDraw():
		return ResultDraw
	case st.Terminal():
		if b.SideToMove() == xiangqi.Red {
			return ResultBlackWins
		}
		return ResultRedWins
	}
	return ResultUnknown
}

func isResultToken(tok string) bool {
	switch tok {
	case ResultRedWins, ResultBlackWins, ResultDraw, ResultUnknown:
		return true
	}
	return false
}
