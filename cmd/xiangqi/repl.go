package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"xiangqi/internal/pgn"
	"xiangqi/internal/session"
	"xiangqi/internal/store"
	"xiangqi/internal/xiangqi"
)

const helpText = `commands:
  new [fen]                 start a new game
  move <text>               play a move (炮二平五 / H2-E2 / h2e2)
  engine <uci> [cand...]    play an engine move, falling back to candidates
  back | forward            step through history
  takeback [n]              take back n plies (default 1)
  goto <n>                  jump to the position after ply n
  edit <fen>                set up a position
  fen | moves | legal | board | status
  save | load <id> | list   archive
  export <file> [iccs]      write a game record
  import <file>             read a game record
  quit`

var errNoGame = errors.New("no current game")

type repl struct {
	mgr   *session.Manager
	st    *store.Store
	out   io.Writer
	log   *zap.Logger
	game  *session.Game
	red   string
	black string
}

func newREPL(mgr *session.Manager, st *store.Store, out io.Writer, log *zap.Logger) *repl {
	if log == nil {
		log = zap.NewNop()
	}
	return &repl{mgr: mgr, st: st, out: out, log: log}
}

func (r *repl) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *repl) run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if parts[0] == "quit" || parts[0] == "exit" {
			return
		}
		if err := r.exec(parts[0], parts[1:]); err != nil {
			r.printf("error: %v\n", err)
		}
	}
}

func (r *repl) exec(cmd string, args []string) error {
	if r.game == nil && cmd != "new" && cmd != "load" && cmd != "import" && cmd != "list" && cmd != "help" {
		return errNoGame
	}
	switch cmd {
	case "help":
		r.printf("%s\n", helpText)
	case "new":
		return r.newGame(strings.Join(args, " "))
	case "move":
		if len(args) == 0 {
			return errors.New("usage: move <text>")
		}
		e, err := r.game.Play(strings.Join(args, ""))
		if err != nil {
			return err
		}
		r.printf("%d. %s (%s)\n", e.Index+1, e.Chinese, e.UCI)
		r.printOutcome()
	case "engine":
		if len(args) == 0 {
			return errors.New("usage: engine <uci> [candidates...]")
		}
		e, substituted, err := r.game.ApplyEngineMove(args[0], args[1:])
		if err != nil {
			return err
		}
		if substituted {
			r.printf("engine move %s is illegal, played %s instead\n", args[0], e.UCI)
		}
		r.printf("%d. %s (%s)\n", e.Index+1, e.Chinese, e.UCI)
		r.printOutcome()
	case "back":
		m, err := r.game.StepBack()
		if err != nil {
			return err
		}
		r.printf("undid %s\n", m)
	case "forward":
		m, err := r.game.StepForward()
		if err != nil {
			return err
		}
		r.printf("redid %s\n", m)
	case "takeback":
		n := 1
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("takeback: %w", err)
			}
			n = v
		}
		undone, err := r.game.Takeback(n)
		if err != nil {
			return err
		}
		r.printf("took back %d\n", undone)
	case "goto":
		if len(args) != 1 {
			return errors.New("usage: goto <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("goto: %w", err)
		}
		return r.game.Goto(n)
	case "edit":
		if err := r.game.Edit(strings.Join(args, " ")); err != nil {
			return err
		}
		r.printf("%s\n", r.game.FEN())
	case "fen":
		r.printf("%s\n", r.game.FEN())
	case "moves":
		r.printMoves()
	case "legal":
		s := r.game.Snapshot()
		r.printf("%d: %s\n", len(s.Legal), strings.Join(s.Legal, " "))
	case "board":
		r.printBoard(r.game.Board())
	case "status":
		r.printStatus()
	case "save":
		rec, err := r.mgr.Archive(r.game.ID)
		if err != nil {
			return err
		}
		r.printf("saved %s (%d moves)\n", rec.ID, len(rec.Moves))
	case "load":
		if len(args) != 1 {
			return errors.New("usage: load <id>")
		}
		g, err := r.mgr.Load(args[0])
		if errors.Is(err, session.ErrGameExists) {
			// 已经打开的对局直接切换过去，不用存档覆盖
			if g, err = r.mgr.Get(args[0]); err != nil {
				return err
			}
			r.game = g
			r.printf("switched to open game %s\n", g.ID)
			return nil
		}
		if err != nil {
			return err
		}
		r.game = g
		r.printf("loaded %s\n", g.ID)
	case "list":
		return r.list()
	case "export":
		if len(args) == 0 {
			return errors.New("usage: export <file> [iccs]")
		}
		return r.export(args[0], len(args) > 1 && strings.EqualFold(args[1], "iccs"))
	case "import":
		if len(args) != 1 {
			return errors.New("usage: import <file>")
		}
		return r.importFile(args[0])
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func (r *repl) newGame(fen string) error {
	g, err := r.mgr.NewGame(fen, r.red, r.black)
	if err != nil {
		return err
	}
	if r.game != nil {
		r.mgr.Remove(r.game.ID)
	}
	r.game = g
	r.printf("game %s\n", g.ID)
	return nil
}

func (r *repl) printMoves() {
	s := r.game.Snapshot()
	for _, e := range s.Moves {
		mark := " "
		if e.Index == s.Cursor-1 {
			mark = "*"
		}
		future := ""
		if e.Future {
			future = " (redo)"
		}
		r.printf("%s%3d. %-6s %s %s%s\n", mark, e.Index+1, e.Side, e.Chinese, e.ICCS, future)
	}
}

func (r *repl) printOutcome() {
	o := r.game.Outcome()
	if !o.Over() {
		return
	}
	r.printStatus()
}

func (r *repl) printStatus() {
	s := r.game.Snapshot()
	switch {
	case s.DrawReason != "":
		r.printf("draw: %s\n", s.DrawReason)
	case s.Winner != "":
		r.printf("%s wins (%s)\n", s.Winner, s.Status)
	default:
		check := ""
		if s.InCheck {
			check = ", in check"
		}
		r.printf("%s to move%s\n", s.SideToMove, check)
	}
}

func (r *repl) printBoard(b *xiangqi.Board) {
	for rank := xiangqi.Ranks - 1; rank >= 0; rank-- {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d ", rank)
		for file := 0; file < xiangqi.Files; file++ {
			pc := b.PieceAt(file, rank)
			if pc == xiangqi.NoPiece {
				sb.WriteString("＋")
			} else {
				sb.WriteString(pc.DisplayName())
			}
		}
		r.printf("%s\n", sb.String())
		if rank == xiangqi.RiverRank {
			r.printf("  ～～～～～～～～～\n")
		}
	}
	r.printf("  ａｂｃｄｅｆｇｈｉ\n")
}

func (r *repl) list() error {
	for _, g := range r.mgr.List() {
		mark := " "
		if g == r.game {
			mark = "*"
		}
		r.printf("%s session %s %s\n", mark, g.ID, g.FEN())
	}
	if r.st == nil {
		return nil
	}
	recs, err := r.st.ListGames()
	if err != nil {
		return err
	}
	for _, rec := range recs {
		r.printf("  archive %s %s %d moves %s\n", rec.ID, rec.SavedAt.Format("2006-01-02 15:04"), len(rec.Moves), rec.Result)
	}
	return nil
}

func (r *repl) export(path string, iccs bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.game.Export(f, pgn.Options{ICCS: iccs}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	r.log.Info("game exported", zap.String("game", r.game.ID), zap.String("path", path))
	r.printf("wrote %s\n", path)
	return nil
}

func (r *repl) importFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	g, err := r.mgr.Import(f)
	if err != nil {
		return err
	}
	r.game = g
	r.printf("imported %s: %d moves\n", g.ID, g.Board().Ply())
	return nil
}
