package session

import (
	"xiangqi/internal/xiangqi"
)

// MoveEntry 是着法列表中的一行；Future 表示在 redo 栈里、尚未重走
type MoveEntry struct {
	Index   int    `json:"index"` // 0 起
	Side    string `json:"side"`
	UCI     string `json:"uci"`
	ICCS    string `json:"iccs"`
	Chinese string `json:"chinese"`
	Future  bool   `json:"future,omitempty"`
}

func newEntry(b *xiangqi.Board, m xiangqi.Move, index int) MoveEntry {
	return MoveEntry{
		Index:   index,
		Side:    b.SideToMove().String(),
		UCI:     m.String(),
		ICCS:    xiangqi.MoveToICCS(m),
		Chinese: b.MoveToChinese(m),
	}
}

// Outcome 对局结果。困毙和将帅被吃与将死一样，轮走方输
type Outcome struct {
	Status     xiangqi.Status
	Winner     xiangqi.Side
	DrawReason string
}

func (o Outcome) Over() bool { return o.Status.Terminal() }

func outcomeOf(b *xiangqi.Board) Outcome {
	st := b.Status()
	o := Outcome{Status: st, Winner: xiangqi.NoSide}
	switch {
	case st.IsDraw():
		o.DrawReason, _ = b.DrawReason()
	case st.Terminal():
		o.Winner = b.SideToMove().Opposite()
	}
	return o
}

// State 是对局的只读快照
type State struct {
	ID         string      `json:"id"`
	Red        string      `json:"red,omitempty"`
	Black      string      `json:"black,omitempty"`
	FEN        string      `json:"fen"`
	SideToMove string      `json:"side_to_move"`
	InCheck    bool        `json:"in_check"`
	Moves      []MoveEntry `json:"moves"`
	Cursor     int         `json:"cursor"` // 已走步数，Moves[Cursor:] 都是 Future
	Legal      []string    `json:"legal"`
	Status     string      `json:"status"`
	Winner     string      `json:"winner,omitempty"`
	DrawReason string      `json:"draw_reason,omitempty"`
}

func (g *Game) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := g.board
	s := State{
		ID:         g.ID,
		Red:        g.Red,
		Black:      g.Black,
		FEN:        b.FEN(),
		SideToMove: b.SideToMove().String(),
		InCheck:    b.IsInCheck(b.SideToMove()),
		Cursor:     b.Ply(),
	}

	for i, m := range b.History() {
		before, _ := b.PositionBefore(i)
		s.Moves = append(s.Moves, newEntry(before, m, i))
	}
	// redo 栈顶是下一步，在副本上依次重走
	future := b.Clone()
	for i := len(g.redo) - 1; i >= 0; i-- {
		m := g.redo[i]
		e := newEntry(future, m, future.Ply())
		e.Future = true
		s.Moves = append(s.Moves, e)
		if !future.MakeMove(m) {
			break
		}
	}

	for _, m := range b.AllLegalMoves() {
		s.Legal = append(s.Legal, m.String())
	}

	o := outcomeOf(b)
	s.Status = o.Status.String()
	if o.Winner != xiangqi.NoSide {
		s.Winner = o.Winner.String()
	}
	s.DrawReason = o.DrawReason
	return s
}
