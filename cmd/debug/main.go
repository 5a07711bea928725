package main

import (
	"flag"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"xiangqi/internal/xiangqi"
)

func main() {
	fen := flag.String("fen", xiangqi.StartFEN, "position to inspect")
	depth := flag.Int("depth", 3, "perft depth")
	divide := flag.Bool("divide", false, "print node counts per root move")
	flag.Parse()

	log, _ := zap.NewDevelopment()
	defer log.Sync()

	b, err := xiangqi.ParseFEN(*fen)
	if err != nil {
		log.Fatal("bad fen", zap.String("fen", *fen), zap.Error(err))
	}
	fmt.Println("FEN:", b.FEN())
	fmt.Println("Legal moves:", len(b.AllLegalMoves()))
	fmt.Println("Status:", b.Status())

	if *divide {
		div := b.Divide(*depth)
		moves := make([]xiangqi.Move, 0, len(div))
		for m := range div {
			moves = append(moves, m)
		}
		sort.Slice(moves, func(i, j int) bool { return moves[i].String() < moves[j].String() })
		for _, m := range moves {
			fmt.Printf("%s %s: %d\n", m, b.MoveToChinese(m), div[m])
		}
	}

	for d := 1; d <= *depth; d++ {
		start := time.Now()
		nodes := b.Perft(d)
		log.Info("perft", zap.Int("depth", d), zap.Int64("nodes", nodes), zap.Duration("elapsed", time.Since(start)))
	}
}
