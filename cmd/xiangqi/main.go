package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"xiangqi/internal/session"
	"xiangqi/internal/store"
)

func main() {
	dbDir := flag.String("db", "", "archive directory (default: platform data dir)")
	noDB := flag.Bool("memory", false, "keep the archive in memory only")
	fen := flag.String("fen", "", "start position (default: standard opening)")
	red := flag.String("red", "红方", "red player name")
	black := flag.String("black", "黑方", "black player name")
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

	var st *store.Store
	if *noDB {
		st, err = store.OpenInMemory()
	} else {
		dir := *dbDir
		if dir == "" {
			dir, err = store.DefaultDir()
			if err != nil {
				log.Fatal("archive directory", zap.Error(err))
			}
		}
		log.Info("opening archive", zap.String("dir", dir))
		st, err = store.Open(dir)
	}
	if err != nil {
		log.Fatal("open archive", zap.Error(err))
	}
	defer st.Close()

	r := newREPL(session.NewManager(st, log), st, os.Stdout, log)
	r.red, r.black = *red, *black
	if err := r.newGame(*fen); err != nil {
		log.Fatal("start position", zap.String("fen", *fen), zap.Error(err))
	}
	r.run(os.Stdin)
}
