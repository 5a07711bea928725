package xiangqi

import (
	"errors"
	"testing"
)

func TestFENRoundTripStart(t *testing.T) {
	b := NewBoard()
	if got := b.FEN(); got != StartFEN {
		t.Fatalf("start FEN mismatch:\n got=%s\nwant=%s", got, StartFEN)
	}
	if b.SideToMove() != Red || b.HalfmoveClock() != 0 || b.FullmoveNumber() != 1 {
		t.Fatalf("unexpected start state: side=%v half=%d full=%d", b.SideToMove(), b.HalfmoveClock(), b.FullmoveNumber())
	}
}

func TestFENRoundTripReachable(t *testing.T) {
	b := NewBoard()
	for _, mv := range []string{"h2e2", "h9g7", "h0g2", "i9h9", "i0h0", "b9c7", "e2e6", "c7e6"} {
		if !b.MakeMoveUCI(mv) {
			t.Fatalf("move %s rejected", mv)
		}
		fen := b.FEN()
		nb, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("parse %q: %v", fen, err)
		}
		if nb.squares != b.squares || nb.SideToMove() != b.SideToMove() {
			t.Fatalf("round trip after %s changed the position: %s -> %s", mv, fen, nb.FEN())
		}
		if nb.Key() != b.Key() {
			t.Fatalf("round trip after %s changed the key", mv)
		}
	}
}

func TestParseFENErrors(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"nine ranks":   "rnbakabnr/9/1c5c1/p1p1p1p1p/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1",
		"bad color":    "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR x - - 0 1",
		"bad piece":    "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNQ w - - 0 1",
		"rank too big": "rnbakabnrr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1",
		"digit spill":  "rnbakabnr/55/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1",
	}
	for name, fen := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseFEN(fen); !errors.Is(err, ErrInvalidFEN) {
				t.Fatalf("expected ErrInvalidFEN, got %v", err)
			}
		})
	}
}

func TestParseFENToleratesClockFields(t *testing.T) {
	b, err := ParseFEN("rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR b - - x y")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if b.SideToMove() != Black {
		t.Fatalf("side: got=%v want=black", b.SideToMove())
	}
	if b.HalfmoveClock() != 0 || b.FullmoveNumber() != 1 {
		t.Fatalf("clocks should keep defaults, got half=%d full=%d", b.HalfmoveClock(), b.FullmoveNumber())
	}

	b, err = ParseFEN("rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR")
	if err != nil {
		t.Fatalf("placement only: %v", err)
	}
	if b.SideToMove() != Red {
		t.Fatalf("placement only should default to red")
	}

	b, err = ParseFEN("rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 17 9")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if b.HalfmoveClock() != 17 || b.FullmoveNumber() != 9 {
		t.Fatalf("clocks: got half=%d full=%d", b.HalfmoveClock(), b.FullmoveNumber())
	}
}

func TestLoadFENIsAtomic(t *testing.T) {
	b := NewBoard()
	if !b.MakeMoveUCI("h2e2") {
		t.Fatal("h2e2 rejected")
	}
	before := b.FEN()
	if err := b.LoadFEN("9/9/9 w - - 0 1"); err == nil {
		t.Fatal("expected error for 3 ranks")
	}
	if b.FEN() != before || b.Ply() != 1 {
		t.Fatalf("failed load mutated board: %s ply=%d", b.FEN(), b.Ply())
	}

	if err := b.LoadFEN(StartFEN); err != nil {
		t.Fatalf("load start: %v", err)
	}
	if b.Ply() != 0 || len(b.History()) != 0 {
		t.Fatalf("load should clear history")
	}
}

func TestLoadFENKeepsClocksWhenFieldsMissing(t *testing.T) {
	b := NewBoard()
	for _, mv := range []string{"h2e2", "h9g7", "h0g2", "i9h9", "i0h0"} {
		if !b.MakeMoveUCI(mv) {
			t.Fatalf("move %s rejected", mv)
		}
	}
	if b.HalfmoveClock() != 5 || b.FullmoveNumber() != 3 {
		t.Fatalf("setup: half=%d full=%d", b.HalfmoveClock(), b.FullmoveNumber())
	}

	if err := b.LoadFEN("rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - - -"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if b.HalfmoveClock() != 5 || b.FullmoveNumber() != 3 {
		t.Fatalf("clocks should be retained, got half=%d full=%d", b.HalfmoveClock(), b.FullmoveNumber())
	}
	if b.Ply() != 0 {
		t.Fatalf("history should be cleared, ply=%d", b.Ply())
	}

	// 只有一个字段有效时另一个仍沿用
	if err := b.LoadFEN("rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR b - - 2"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if b.HalfmoveClock() != 2 || b.FullmoveNumber() != 3 {
		t.Fatalf("partial clocks: half=%d full=%d", b.HalfmoveClock(), b.FullmoveNumber())
	}

	if err := b.LoadFEN(StartFEN); err != nil {
		t.Fatalf("load start: %v", err)
	}
	if b.HalfmoveClock() != 0 || b.FullmoveNumber() != 1 {
		t.Fatalf("explicit clocks: half=%d full=%d", b.HalfmoveClock(), b.FullmoveNumber())
	}
}

func TestPieceAccessBounds(t *testing.T) {
	b := NewBoard()
	if pc := b.PieceAt(4, 0); pc != MakePiece(Red, PieceKing) {
		t.Fatalf("e0: got=%v", pc)
	}
	if pc := b.PieceAt(9, 0); pc != NoPiece {
		t.Fatalf("out of range file should be empty, got %v", pc)
	}
	if pc := b.PieceAt(0, -1); pc != NoPiece {
		t.Fatalf("out of range rank should be empty, got %v", pc)
	}
	fen := b.FEN()
	b.SetPiece(-1, 3, MakePiece(Red, PieceRook))
	b.SetPiece(3, 10, MakePiece(Red, PieceRook))
	if b.FEN() != fen {
		t.Fatalf("out of range SetPiece mutated the board")
	}
}

func TestPieceFENChars(t *testing.T) {
	for _, ch := range "kabrncpKABRNCP" {
		pc, ok := PieceFromFEN(ch)
		if !ok {
			t.Fatalf("%q not recognised", ch)
		}
		if pc.FEN() != ch {
			t.Fatalf("%q round trip got %q", ch, pc.FEN())
		}
	}
	for _, ch := range "19xQ/ \u212a\u0138ｋ" {
		if _, ok := PieceFromFEN(ch); ok {
			t.Fatalf("%q should not be a piece", ch)
		}
	}
	if _, err := ParseFEN("rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBA\u212aABNR w - - 0 1"); !errors.Is(err, ErrInvalidFEN) {
		t.Fatalf("kelvin sign accepted as a general: %v", err)
	}
	if got := MakePiece(Red, PieceRook).DisplayName(); got != "车" {
		t.Fatalf("red rook: %s", got)
	}
	if got := MakePiece(Black, PieceRook).DisplayName(); got != "車" {
		t.Fatalf("black rook: %s", got)
	}
	if got := MakePiece(Black, PieceKing).DisplayName(); got != "将" {
		t.Fatalf("black king: %s", got)
	}
}

func TestConfirmFlipsRedOnTop(t *testing.T) {
	// 红方在上：红帅 e9，黑将 e0
	b, err := ParseFEN("4K4/9/9/9/9/9/9/9/9/4k4 w - - 33 20")
	if err != nil {
		t.Fatal(err)
	}
	b.Confirm()
	if pc := b.PieceAt(4, 0); pc != MakePiece(Red, PieceKing) {
		t.Fatalf("red king should be at e0 after confirm, got %v", pc)
	}
	if b.HalfmoveClock() != 0 || b.FullmoveNumber() != 1 {
		t.Fatalf("confirm should reset clocks")
	}
	if b.Key() != PositionKey(b.calculateHash()) {
		t.Fatalf("key stale after flip")
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	b.SetPiece(4, 9, NoPiece)
	if err := b.Validate(); !errors.Is(err, ErrMalformedPosition) {
		t.Fatalf("missing black king should be malformed, got %v", err)
	}
}
