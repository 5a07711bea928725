package pgn

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"xiangqi/internal/xiangqi"
)

var (
	tagLineRe    = regexp.MustCompile(`^\s*\[(\w+)\s+"(.*)"\]\s*$`)
	tagRe        = regexp.MustCompile(`\[[^\]]*\]`)
	commentRe    = regexp.MustCompile(`(?s)\{.*?\}`)
	moveNumberRe = regexp.MustCompile(`\d+\.+`)
)

// Decode 把记录文件转成 UTF-8：去掉 BOM；不是合法 UTF-8 时按 GB18030（兼容 GBK）解码
func Decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return string(data), nil
	}
	reader := transform.NewReader(bytes.NewReader(data), simplifiedchinese.GB18030.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if !utf8.Valid(decoded) {
		return "", ErrDecode
	}
	return string(decoded), nil
}

// Read 读入并解析一盘棋
func Read(r io.Reader) (*Game, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Parse(text)
}

// Parse 解析已解码的文本。遇到无法识别或不合法的着法时停止，
// 返回已经读到的部分和 ErrBadMove。
func Parse(text string) (*Game, error) {
	g := &Game{Tags: make(map[string]string)}
	for _, line := range strings.Split(text, "\n") {
		if m := tagLineRe.FindStringSubmatch(strings.TrimRight(line, "\r")); m != nil {
			g.Tags[m[1]] = m[2]
		}
	}
	g.StartFEN = g.Tags[TagFEN]

	start := xiangqi.StartFEN
	if g.StartFEN != "" {
		start = g.StartFEN
	}
	b, err := xiangqi.ParseFEN(start)
	if err != nil {
		return nil, err
	}

	body := tagRe.ReplaceAllString(text, " ")
	body = commentRe.ReplaceAllString(body, " ")
	body = moveNumberRe.ReplaceAllString(body, " ")

	index := 0
	for _, tok := range strings.Fields(body) {
		if isResultToken(tok) {
			continue
		}
		index++
		m, ok := ResolveMove(b, tok)
		if !ok {
			return g, fmt.Errorf("%w: move %d %q", ErrBadMove, index, tok)
		}
		b.MakeMove(m)
		g.Moves = append(g.Moves, m)
	}
	return g, nil
}

// ResolveMove 依次按中文、ICCS、UCI 解析 tok，并要求是当前局面的合法着法
func ResolveMove(b *xiangqi.Board, tok string) (xiangqi.Move, bool) {
	if m, ok := b.ChineseToMove(NormalizeChinese(tok, b.SideToMove())); ok {
		return m, true
	}
	if m, ok := b.ICCSToMove(tok); ok {
		return m, true
	}
	if m, ok := xiangqi.ParseUCI(tok); ok && b.IsLegal(m) {
		return m, true
	}
	return xiangqi.Move{}, false
}
