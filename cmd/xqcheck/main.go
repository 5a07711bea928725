// xqcheck 并发重放对局记录文件，报告结果和第一个出错的着法
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"xiangqi/internal/pgn"
)

type report struct {
	path   string
	moves  int
	result string
	status string
	err    error
}

func main() {
	parallel := flag.Int("parallel", runtime.NumCPU(), "number of files replayed at once")
	failFast := flag.Bool("fail-fast", false, "stop at the first broken record")
	debug := flag.Bool("debug", false, "development logging")
	flag.Parse()

	log := newLogger(*debug)
	defer log.Sync()

	paths, err := collect(flag.Args())
	if err != nil {
		log.Fatal("collect records", zap.Error(err))
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: xqcheck [flags] file-or-dir...")
		os.Exit(2)
	}

	reports, err := checkAll(context.Background(), paths, *parallel, *failFast)
	for _, r := range reports {
		if r.path == "" {
			continue
		}
		if r.err != nil {
			fmt.Printf("FAIL %s: %v (after %d moves)\n", r.path, r.err, r.moves)
			continue
		}
		fmt.Printf("ok   %s: %d moves, %s, result %s\n", r.path, r.moves, r.status, r.result)
	}
	if err != nil {
		log.Error("check failed", zap.Error(err))
		os.Exit(1)
	}
	for _, r := range reports {
		if r.err != nil {
			os.Exit(1)
		}
	}
}

func newLogger(debug bool) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// collect 展开目录，只取 .pgn / .txt
func collect(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			ext := strings.ToLower(filepath.Ext(path))
			if !d.IsDir() && (ext == ".pgn" || ext == ".txt") {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(out)
	return out, nil
}

// checkAll 每个文件一个 goroutine、一个棋盘，最多 parallel 个同时运行。
// failFast 时第一个坏记录会取消其余任务。
func checkAll(ctx context.Context, paths []string, parallel int, failFast bool) ([]report, error) {
	if parallel < 1 {
		parallel = 1
	}
	reports := make([]report, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(parallel)
	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = checkFile(path)
			if failFast && reports[i].err != nil {
				return fmt.Errorf("%s: %w", path, reports[i].err)
			}
			return nil
		})
	}
	return reports, eg.Wait()
}

func checkFile(path string) report {
	r := report{path: path}
	f, err := os.Open(path)
	if err != nil {
		r.err = err
		return r
	}
	defer f.Close()

	g, err := pgn.Read(f)
	if g != nil {
		r.moves = len(g.Moves)
	}
	if err != nil {
		r.err = err
		return r
	}
	b, err := pgn.Replay(g)
	if err != nil {
		r.err = err
		return r
	}
	r.status = b.Status().String()
	r.result = pgn.Result(b)
	if tagged := g.Tag(pgn.TagResult); tagged != "" && tagged != pgn.ResultUnknown && tagged != r.result && r.result != pgn.ResultUnknown {
		r.err = fmt.Errorf("result tag %s does not match final position %s", tagged, r.result)
	}
	return r
}
