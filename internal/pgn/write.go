package pgn

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"xiangqi/internal/xiangqi"
)

const lineWidth = 80

// Options 控制导出格式
type Options struct {
	ICCS bool      // 着法用 ICCS 坐标，否则用中文纵线格式
	Date time.Time // 零值取当前日期
}

var headerOrder = []string{TagGame, TagDate, TagRed, TagBlack, TagFormat, TagFEN, TagResult}

// Write 导出 b 从起始局面到当前局面的整盘棋。
// tags 中的 Red/Black 以及其他自定义标签原样写出；Game/Date/Format/FEN/Result 由这里决定。
func Write(w io.Writer, b *xiangqi.Board, tags map[string]string, opts Options) error {
	start := b
	if b.Ply() > 0 {
		start, _ = b.PositionBefore(0)
	}

	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}
	header := map[string]string{
		TagGame:   "Xiangqi",
		TagDate:   date.Format("2006.01.02"),
		TagRed:    tags[TagRed],
		TagBlack:  tags[TagBlack],
		TagResult: Result(b),
	}
	if opts.ICCS {
		header[TagFormat] = "ICCS"
	}
	if fen := start.FEN(); fen != xiangqi.StartFEN {
		header[TagFEN] = fen
	}

	var sb strings.Builder
	for _, k := range headerOrder {
		v, ok := header[k]
		if !ok {
			continue
		}
		if k == TagResult {
			writeExtraTags(&sb, tags)
		}
		fmt.Fprintf(&sb, "[%s \"%s\"]\n", k, escapeTag(v))
	}
	sb.WriteByte('\n')

	writeMovetext(&sb, b, start, opts.ICCS)
	fmt.Fprintf(&sb, "%s\n", header[TagResult])

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeExtraTags(sb *strings.Builder, tags map[string]string) {
	var keys []string
	for k := range tags {
		switch k {
		case TagGame, TagDate, TagRed, TagBlack, TagFormat, TagFEN, TagResult:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(sb, "[%s \"%s\"]\n", k, escapeTag(tags[k]))
	}
}

func escapeTag(v string) string {
	return strings.ReplaceAll(v, `"`, `'`)
}

// writeMovetext 每行超过 80 个字符后换行；中文着法按走子前的历史快照生成，
// 并在重放的局面上校验能唯一读回
func writeMovetext(sb *strings.Builder, b, start *xiangqi.Board, iccs bool) {
	moves := b.History()
	if len(moves) == 0 {
		return
	}
	var chinese []string
	if !iccs {
		chinese = b.ChineseHistory()
	}

	// 黑方先走的残局，第一步写成 "N... 着法"
	offset := 0
	if start.SideToMove() == xiangqi.Black {
		offset = 1
	}
	number := start.FullmoveNumber()

	// 中文记谱有歧义（读回会得到另一步）时改写 ICCS
	pos := start.Clone()
	var line strings.Builder
	for i, m := range moves {
		text := xiangqi.MoveToICCS(m)
		if !iccs {
			if back, ok := pos.ChineseToMove(chinese[i]); ok && back == m {
				text = chinese[i]
			}
			pos.MakeMove(m)
		}
		ply := i + offset
		switch {
		case ply%2 == 0:
			fmt.Fprintf(&line, "%d. %s ", number+ply/2, text)
		case i == 0:
			fmt.Fprintf(&line, "%d... %s ", number, text)
		default:
			fmt.Fprintf(&line, "%s ", text)
		}
		if utf8.RuneCountInString(line.String()) > lineWidth {
			sb.WriteString(strings.TrimRight(line.String(), " "))
			sb.WriteByte('\n')
			line.Reset()
		}
	}
	if line.Len() > 0 {
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteByte('\n')
	}
}
