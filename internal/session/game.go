package session

import (
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"xiangqi/internal/pgn"
	"xiangqi/internal/store"
	"xiangqi/internal/xiangqi"
)

// Game 是一盘进行中的棋。棋盘本身记录已走的着法；
// 撤回的着法放在 redo 栈里（栈顶是下一步），走新着法时清空。
type Game struct {
	ID        string
	Red       string
	Black     string
	CreatedAt time.Time
	UpdatedAt time.Time

	mu    sync.Mutex
	board *xiangqi.Board
	redo  []xiangqi.Move
	log   *zap.Logger
}

// Board 返回当前局面的副本
func (g *Game) Board() *xiangqi.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Clone()
}

func (g *Game) FEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.FEN()
}

func (g *Game) touch() { g.UpdatedAt = time.Now() }

// Play 接受中文、ICCS 或 UCI 记谱
func (g *Game) Play(text string) (MoveEntry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	m, ok := pgn.ResolveMove(g.board, text)
	if !ok {
		if _, parsed := xiangqi.ParseICCS(text); parsed {
			return MoveEntry{}, fmt.Errorf("%w: %s", ErrIllegalMove, text)
		}
		return MoveEntry{}, fmt.Errorf("%w: %q", ErrUnparseableMove, text)
	}
	return g.play(m), nil
}

// play 调用前 m 必须合法
func (g *Game) play(m xiangqi.Move) MoveEntry {
	entry := newEntry(g.board, m, g.board.Ply())
	g.board.MakeMove(m)
	g.redo = g.redo[:0]
	g.touch()
	g.log.Debug("move played",
		zap.String("move", entry.UCI),
		zap.String("chinese", entry.Chinese),
		zap.Int("ply", g.board.Ply()))
	return entry
}

// StepBack 撤回一步，可以用 StepForward 恢复
func (g *Game) StepBack() (xiangqi.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.board.UndoMove()
	if !ok {
		return xiangqi.Move{}, ErrNothingToUndo
	}
	g.redo = append(g.redo, m)
	g.touch()
	return m, nil
}

func (g *Game) StepForward() (xiangqi.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stepForward()
}

func (g *Game) stepForward() (xiangqi.Move, error) {
	n := len(g.redo)
	if n == 0 {
		return xiangqi.Move{}, ErrNothingToRedo
	}
	m := g.redo[n-1]
	if !g.board.MakeMove(m) {
		g.redo = g.redo[:0]
		return xiangqi.Move{}, fmt.Errorf("%w: redo %s", ErrIllegalMove, m)
	}
	g.redo = g.redo[:n-1]
	g.touch()
	return m, nil
}

// Takeback 悔棋 n 步（至少一步），不能重做；返回实际撤回的步数
func (g *Game) Takeback(n int) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n < 1 {
		n = 1
	}
	undone := 0
	for undone < n {
		if _, ok := g.board.UndoMove(); !ok {
			break
		}
		undone++
	}
	if undone == 0 {
		return 0, ErrNothingToUndo
	}
	g.redo = g.redo[:0]
	g.touch()
	g.log.Info("takeback", zap.Int("plies", undone))
	return undone, nil
}

// Goto 跳到第 index 步之后的局面（0 为起始局面），可以跳到 redo 栈里的着法。
// 重做中途失败时回到调用前的局面，redo 栈保持原样。
func (g *Game) Goto(index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	total := g.board.Ply() + len(g.redo)
	if index < 0 || index > total {
		return fmt.Errorf("goto %d: out of range 0..%d", index, total)
	}
	for g.board.Ply() > index {
		m, _ := g.board.UndoMove()
		g.redo = append(g.redo, m)
	}
	startPly := g.board.Ply()
	saved := append([]xiangqi.Move(nil), g.redo...)
	for g.board.Ply() < index {
		if _, err := g.stepForward(); err != nil {
			for g.board.Ply() > startPly {
				g.board.UndoMove()
			}
			g.redo = saved
			return fmt.Errorf("goto %d: %w", index, err)
		}
	}
	g.touch()
	return nil
}

// ApplyEngineMove 依次尝试引擎给出的着法、候选着法，最后退回到任一合法着法。
// substituted 表示实际走的不是 proposed。
func (g *Game) ApplyEngineMove(proposed string, candidates []string) (entry MoveEntry, substituted bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if m, ok := xiangqi.ParseUCI(proposed); ok && g.board.IsLegal(m) {
		return g.play(m), false, nil
	}
	for _, c := range candidates {
		if m, ok := xiangqi.ParseUCI(c); ok && g.board.IsLegal(m) {
			g.log.Warn("engine move replaced by candidate",
				zap.String("proposed", proposed),
				zap.String("played", c))
			return g.play(m), true, nil
		}
	}
	legal := g.board.AllLegalMoves()
	if len(legal) == 0 {
		return MoveEntry{}, false, ErrNoLegalMove
	}
	g.log.Warn("engine move replaced by first legal move",
		zap.String("proposed", proposed),
		zap.Strings("candidates", candidates),
		zap.String("played", legal[0].String()))
	return g.play(legal[0]), true, nil
}

// Edit 换成摆好的局面：红帅在上方时先翻转，清空历史
func (g *Game) Edit(fen string) error {
	b, err := xiangqi.ParseFEN(fen)
	if err != nil {
		return err
	}
	b.Confirm()
	if err := b.Validate(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.board = b
	g.redo = g.redo[:0]
	g.touch()
	g.log.Info("position edited", zap.String("fen", b.FEN()))
	return nil
}

func (g *Game) Outcome() Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return outcomeOf(g.board)
}

// Record 转成存档格式
func (g *Game) Record() *store.GameRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	start := g.board
	if g.board.Ply() > 0 {
		start, _ = g.board.PositionBefore(0)
	}
	hist := g.board.History()
	moves := make([]string, len(hist))
	for i, m := range hist {
		moves[i] = m.String()
	}
	return &store.GameRecord{
		ID:       g.ID,
		Red:      g.Red,
		Black:    g.Black,
		StartFEN: start.FEN(),
		Moves:    moves,
		Result:   pgn.Result(g.board),
	}
}

// Export 写出对局记录
func (g *Game) Export(w io.Writer, opts pgn.Options) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	tags := map[string]string{pgn.TagRed: g.Red, pgn.TagBlack: g.Black}
	return pgn.Write(w, g.board, tags, opts)
}
