package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"xiangqi/internal/pgn"
	"xiangqi/internal/session"
)

func TestPlayOutProducesReplayableRecords(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	mgr := session.NewManager(nil, nil)
	dir := t.TempDir()

	for i := 0; i < 3; i++ {
		g, err := mgr.NewGame("", "a", "b")
		if err != nil {
			t.Fatal(err)
		}
		o, plies, _, err := playOut(g, rng, 150)
		if err != nil {
			t.Fatalf("playOut: %v", err)
		}
		if plies != g.Board().Ply() {
			t.Fatalf("plies %d, board %d", plies, g.Board().Ply())
		}
		if plies < 150 && !o.Over() {
			t.Fatalf("stopped early without a result at ply %d", plies)
		}

		path := filepath.Join(dir, "g.pgn")
		if err := writeRecord(g, path); err != nil {
			t.Fatal(err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		rec, err := pgn.Read(f)
		f.Close()
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		b, err := pgn.Replay(rec)
		if err != nil {
			t.Fatalf("replay: %v", err)
		}
		if b.FEN() != g.FEN() {
			t.Fatalf("replayed %s, want %s", b.FEN(), g.FEN())
		}
	}
}

func TestProposeCandidatesAreLegal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	mgr := session.NewManager(nil, nil)
	g, _ := mgr.NewGame("", "", "")
	b := g.Board()
	for i := 0; i < 20; i++ {
		_, cands := propose(b, rng)
		if len(cands) != 2 {
			t.Fatalf("candidates: %v", cands)
		}
		for _, c := range cands {
			if !b.MakeMoveUCI(c) {
				t.Fatalf("candidate %s illegal", c)
			}
			b.UndoMove()
		}
	}
}
