// selfplay 用随机走子的“引擎”对下，检验规则层在长对局中的表现：
// 每步先提出一个随机着法（可能不合法），不合法时由会话改走候选或任一合法着法。
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"xiangqi/internal/pgn"
	"xiangqi/internal/session"
	"xiangqi/internal/xiangqi"
)

type stats struct {
	games       int
	plies       int
	substituted int
	results     map[string]int
}

func main() {
	games := flag.Int("games", 10, "number of games to play")
	maxMoves := flag.Int("maxmoves", 300, "max plies per game")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	outDir := flag.String("out", "", "directory for game records (optional)")
	debug := flag.Bool("debug", false, "development logging")
	flag.Parse()

	var log *zap.Logger
	var err error
	if *debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		log = zap.NewNop()
	}
	defer log.Sync()

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			log.Fatal("output directory", zap.Error(err))
		}
	}

	rng := rand.New(rand.NewSource(*seed))
	mgr := session.NewManager(nil, log)
	st := stats{results: make(map[string]int)}
	start := time.Now()

	for i := 0; i < *games; i++ {
		g, err := mgr.NewGame("", "random", "random")
		if err != nil {
			log.Fatal("new game", zap.Error(err))
		}
		o, plies, subs, err := playOut(g, rng, *maxMoves)
		if err != nil {
			log.Fatal("selfplay", zap.String("game", g.ID), zap.Error(err))
		}
		st.games++
		st.plies += plies
		st.substituted += subs
		st.results[o.Status.String()]++
		log.Info("game finished",
			zap.String("game", g.ID),
			zap.Int("plies", plies),
			zap.String("status", o.Status.String()),
			zap.String("winner", o.Winner.String()))

		if *outDir != "" {
			if err := writeRecord(g, filepath.Join(*outDir, fmt.Sprintf("selfplay-%03d.pgn", i+1))); err != nil {
				log.Fatal("write record", zap.Error(err))
			}
		}
		mgr.Remove(g.ID)
	}

	fmt.Printf("games: %d, plies: %d, substituted: %d, time: %v\n", st.games, st.plies, st.substituted, time.Since(start))
	for status, n := range st.results {
		fmt.Printf("  %-14s %d\n", status, n)
	}
}

// playOut 下到终局或 maxMoves 步
func playOut(g *session.Game, rng *rand.Rand, maxMoves int) (session.Outcome, int, int, error) {
	subs := 0
	for ply := 0; ply < maxMoves; ply++ {
		o := g.Outcome()
		if o.Over() {
			return o, ply, subs, nil
		}
		proposed, candidates := propose(g.Board(), rng)
		_, substituted, err := g.ApplyEngineMove(proposed, candidates)
		if err != nil {
			return o, ply, subs, err
		}
		if substituted {
			subs++
		}
	}
	return g.Outcome(), maxMoves, subs, nil
}

// propose 一半概率给出随机的伪合法着法（可能送将或长将），候选取两个真正合法的着法
func propose(b *xiangqi.Board, rng *rand.Rand) (string, []string) {
	legal := b.AllLegalMoves()
	pseudo := b.GeneratePseudoMovesForSide(b.SideToMove())
	var proposed string
	if len(pseudo) > 0 && rng.Intn(2) == 0 {
		proposed = pseudo[rng.Intn(len(pseudo))].String()
	} else if len(legal) > 0 {
		proposed = legal[rng.Intn(len(legal))].String()
	}
	var candidates []string
	for i := 0; i < 2 && len(legal) > 0; i++ {
		candidates = append(candidates, legal[rng.Intn(len(legal))].String())
	}
	return proposed, candidates
}

func writeRecord(g *session.Game, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Export(f, pgn.Options{ICCS: true}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
