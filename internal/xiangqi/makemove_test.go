package xiangqi

import "testing"

func TestMakeMoveUpdatesState(t *testing.T) {
	b := NewBoard()
	if !b.MakeMoveUCI("h2e2") {
		t.Fatal("h2e2 rejected")
	}
	if b.SideToMove() != Black {
		t.Fatalf("side: got %v", b.SideToMove())
	}
	if b.HalfmoveClock() != 1 || b.FullmoveNumber() != 1 {
		t.Fatalf("clocks: half=%d full=%d", b.HalfmoveClock(), b.FullmoveNumber())
	}
	want := "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C2C4/9/RNBAKABNR b - - 1 1"
	if got := b.FEN(); got != want {
		t.Fatalf("fen:\n got %s\nwant %s", got, want)
	}

	if !b.MakeMoveUCI("h9g7") {
		t.Fatal("h9g7 rejected")
	}
	if b.SideToMove() != Red || b.HalfmoveClock() != 2 || b.FullmoveNumber() != 2 {
		t.Fatalf("after black: side=%v half=%d full=%d", b.SideToMove(), b.HalfmoveClock(), b.FullmoveNumber())
	}

	// 动兵清零
	if !b.MakeMoveUCI("a3a4") {
		t.Fatal("a3a4 rejected")
	}
	if b.HalfmoveClock() != 0 {
		t.Fatalf("pawn move should reset the clock, got %d", b.HalfmoveClock())
	}
	if m, ok := b.LastMove(); !ok || m.String() != "a3a4" {
		t.Fatalf("last move: %v %v", m, ok)
	}
}

func TestIllegalMoveLeavesBoardUntouched(t *testing.T) {
	b := NewBoard()
	before := b.FEN()
	key := b.Key()
	for _, s := range []string{"h2h7", "e0e2", "b9c7", "zz", "a0a0", "a3a3"} {
		if b.MakeMoveUCI(s) {
			t.Fatalf("%s accepted", s)
		}
	}
	if b.FEN() != before || b.Key() != key || b.Ply() != 0 {
		t.Fatal("rejected move mutated the board")
	}
}

func TestUndoMove(t *testing.T) {
	b := NewBoard()
	if _, ok := b.UndoMove(); ok {
		t.Fatal("undo on empty history should fail")
	}

	moves := []string{"h2e2", "h9g7", "h0g2", "i9h9", "e2e6", "g7e6"}
	var fens []string
	var keys []PositionKey
	for _, s := range moves {
		fens = append(fens, b.FEN())
		keys = append(keys, b.Key())
		if !b.MakeMoveUCI(s) {
			t.Fatalf("%s rejected at %s", s, b.FEN())
		}
	}
	if b.Ply() != len(moves) {
		t.Fatalf("ply: %d", b.Ply())
	}

	for i := len(moves) - 1; i >= 0; i-- {
		m, ok := b.UndoMove()
		if !ok || m.String() != moves[i] {
			t.Fatalf("undo %d: got %v %v", i, m, ok)
		}
		if b.FEN() != fens[i] {
			t.Fatalf("undo %d fen:\n got %s\nwant %s", i, b.FEN(), fens[i])
		}
		if b.Key() != keys[i] {
			t.Fatalf("undo %d key mismatch", i)
		}
	}
	if b.FEN() != StartFEN {
		t.Fatalf("not back at start: %s", b.FEN())
	}
}

func TestHistoryAndPositionBefore(t *testing.T) {
	b := NewBoard()
	for _, s := range []string{"h2e2", "h9g7", "h0g2"} {
		b.MakeMoveUCI(s)
	}
	hist := b.History()
	if len(hist) != 3 || hist[0].String() != "h2e2" || hist[2].String() != "h0g2" {
		t.Fatalf("history: %v", hist)
	}

	p, ok := b.PositionBefore(0)
	if !ok || p.FEN() != StartFEN {
		t.Fatalf("position before 0: %v %v", p, ok)
	}
	p, ok = b.PositionBefore(2)
	if !ok || p.SideToMove() != Red || p.FullmoveNumber() != 2 {
		t.Fatalf("position before 2: %v", ok)
	}
	if _, ok := b.PositionBefore(3); ok {
		t.Fatal("index past the end")
	}
	if _, ok := b.PositionBefore(-1); ok {
		t.Fatal("negative index")
	}
}

// 随机对局中每一步的走子/撤销都必须完整恢复
func TestMakeUndoRandomPlayout(t *testing.T) {
	b := NewBoard()
	for ply := 0; ply < 80; ply++ {
		moves := b.AllLegalMoves()
		if len(moves) == 0 {
			break
		}
		fen, key := b.FEN(), b.Key()
		for _, m := range moves {
			if !b.MakeMove(m) {
				t.Fatalf("generated move %v rejected", m)
			}
			b.UndoMove()
			if b.FEN() != fen || b.Key() != key {
				t.Fatalf("make/undo %v broke the position at %s", m, fen)
			}
		}
		b.MakeMove(moves[(ply*7)%len(moves)])
	}
}
