package pgn

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/simplifiedchinese"

	"xiangqi/internal/xiangqi"
)

func playUCI(t *testing.T, b *xiangqi.Board, moves ...string) {
	t.Helper()
	for _, s := range moves {
		if !b.MakeMoveUCI(s) {
			t.Fatalf("%s rejected at %s", s, b.FEN())
		}
	}
}

var testDate = time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

func TestWriteChinese(t *testing.T) {
	b := xiangqi.NewBoard()
	playUCI(t, b, "h2e2", "h9g7", "h0g2")

	var buf bytes.Buffer
	tags := map[string]string{TagRed: "红方", TagBlack: "黑方", "Event": "测试"}
	if err := Write(&buf, b, tags, Options{Date: testDate}); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := `[Game "Xiangqi"]
[Date "2024.03.09"]
[Red "红方"]
[Black "黑方"]
[Event "测试"]
[Result "*"]

1. 炮二平五 馬8进7 2. 马二进三
*
`
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteICCSAndFEN(t *testing.T) {
	fen := "4k4/9/9/9/9/9/9/9/R8/3K5 b - - 0 5"
	b, err := xiangqi.ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	playUCI(t, b, "e9e8", "a1a8")

	var buf bytes.Buffer
	if err := Write(&buf, b, nil, Options{ICCS: true, Date: testDate}); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`[Format "ICCS"]`,
		`[FEN "` + fen + `"]`,
		"5... E9-E8 6. A1-A8",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestWriteWrapsLongMovetext(t *testing.T) {
	b := xiangqi.NewBoard()
	for i := 0; i < 5; i++ {
		playUCI(t, b, "b0c2", "b9c7", "c2b0", "c7b9")
	}
	var buf bytes.Buffer
	if err := Write(&buf, b, nil, Options{Date: testDate}); err != nil {
		t.Fatal(err)
	}
	_, body, _ := strings.Cut(buf.String(), "\n\n")
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected wrapped movetext, got:\n%s", body)
	}
	for _, l := range lines {
		if strings.HasSuffix(l, " ") {
			t.Errorf("trailing space in %q", l)
		}
	}
}

func TestResult(t *testing.T) {
	cases := []struct {
		fen  string
		want string
	}{
		{xiangqi.StartFEN, ResultUnknown},
		{"R3k4/R8/9/9/9/9/9/9/9/3K5 b - - 0 1", ResultRedWins},
		{"4k4/R8/9/9/9/9/9/9/5R3/3K5 b - - 0 1", ResultRedWins},
		{"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 120 1", ResultDraw},
	}
	for _, tc := range cases {
		b, err := xiangqi.ParseFEN(tc.fen)
		if err != nil {
			t.Fatal(err)
		}
		if got := Result(b); got != tc.want {
			t.Errorf("%s: got %s want %s", tc.fen, got, tc.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, iccs := range []bool{false, true} {
		b := xiangqi.NewBoard()
		playUCI(t, b, "h2e2", "h9g7", "h0g2", "i9h9", "i0h0", "b9c7", "e2e6", "c7e6", "b0c2", "h7h3")

		var buf bytes.Buffer
		if err := Write(&buf, b, map[string]string{TagRed: "a"}, Options{ICCS: iccs}); err != nil {
			t.Fatal(err)
		}
		g, err := Read(&buf)
		if err != nil {
			t.Fatalf("iccs=%v read: %v", iccs, err)
		}
		if g.Tag(TagRed) != "a" || g.Tag(TagResult) != ResultUnknown {
			t.Fatalf("tags: %v", g.Tags)
		}
		replayed, err := Replay(g)
		if err != nil {
			t.Fatalf("replay: %v", err)
		}
		if replayed.FEN() != b.FEN() {
			t.Fatalf("iccs=%v:\n got %s\nwant %s", iccs, replayed.FEN(), b.FEN())
		}
	}
}

func TestWriteFallsBackToICCSWhenChineseAmbiguous(t *testing.T) {
	// c、e 两列各有两个红兵，“前兵进一”同时指 c7c8 和 e7e8
	b, err := xiangqi.ParseFEN("3k5/9/2P1P4/2P1P4/9/9/9/9/9/5K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	playUCI(t, b, "e7e8")

	var buf bytes.Buffer
	if err := Write(&buf, b, nil, Options{Date: testDate}); err != nil {
		t.Fatalf("write: %v", err)
	}
	text := buf.String()
	if !strings.Contains(text, "1. E7-E8") || strings.Contains(text, "前兵进一") {
		t.Fatalf("ambiguous move not written as ICCS:\n%s", text)
	}

	g, err := Parse(text)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(g.Moves) != 1 || g.Moves[0].String() != "e7e8" {
		t.Fatalf("read back %v", g.Moves)
	}
	replayed, err := Replay(g)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if replayed.FEN() != b.FEN() {
		t.Fatalf("got %s want %s", replayed.FEN(), b.FEN())
	}
}

func TestParseRejectsAmbiguousChinese(t *testing.T) {
	_, err := Parse(`[FEN "3k5/9/2P1P4/2P1P4/9/9/9/9/9/5K3 w - - 0 1"]` + "\n1. 前兵进一")
	if !errors.Is(err, ErrBadMove) {
		t.Fatalf("got %v", err)
	}
}

func TestParseMixedNotationAndComments(t *testing.T) {
	text := `[Game "Xiangqi"]
{开局} 1. 炮二平五 {中炮} h9g7
2.H0-G2 車９平８ 3. 俥一平二 *`
	g, err := Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"h2e2", "h9g7", "h0g2", "i9h9", "i0h0"}
	if len(g.Moves) != len(want) {
		t.Fatalf("moves: %v", g.Moves)
	}
	for i, m := range g.Moves {
		if m.String() != want[i] {
			t.Errorf("move %d: got %s want %s", i, m, want[i])
		}
	}
}

func TestParseStopsAtBadMove(t *testing.T) {
	g, err := Parse("1. 炮二平五 馬8进7 2. 炮五进九 马二进三")
	if !errors.Is(err, ErrBadMove) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "炮五进九") || !strings.Contains(err.Error(), "move 3") {
		t.Fatalf("error lacks context: %v", err)
	}
	if len(g.Moves) != 2 {
		t.Fatalf("partial moves: %v", g.Moves)
	}

	if _, err := Parse("1. zz"); !errors.Is(err, ErrBadMove) {
		t.Fatalf("garbage: %v", err)
	}
}

func TestParseBadFEN(t *testing.T) {
	_, err := Parse(`[FEN "nonsense"]` + "\n1. h2e2")
	if !errors.Is(err, xiangqi.ErrInvalidFEN) {
		t.Fatalf("got %v", err)
	}
}

func TestDecodeGB18030(t *testing.T) {
	src := "[Red \"许银川\"]\n\n1. 炮二平五 馬8进7 *\n"
	enc, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(enc, []byte(src)) {
		t.Fatal("encoder did not change the bytes")
	}

	g, err := Read(bytes.NewReader(enc))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if g.Tag(TagRed) != "许银川" {
		t.Fatalf("red: %q", g.Tag(TagRed))
	}
	if len(g.Moves) != 2 || g.Moves[1].String() != "h9g7" {
		t.Fatalf("moves: %v", g.Moves)
	}
}

func TestDecodeStripsBOM(t *testing.T) {
	text, err := Decode(append([]byte{0xEF, 0xBB, 0xBF}, "1. h2e2"...))
	if err != nil || text != "1. h2e2" {
		t.Fatalf("got %q %v", text, err)
	}
}

func TestNormalizeChinese(t *testing.T) {
	cases := []struct {
		in   string
		side xiangqi.Side
		want string
	}{
		{"炮二平五", xiangqi.Red, "炮二平五"},
		{"砲2平5", xiangqi.Red, "炮二平五"},
		{"俥一进一", xiangqi.Red, "车一进一"},
		{"傌八進七", xiangqi.Red, "马八进七"},
		{" 兵７进１ ", xiangqi.Red, "兵七进一"},
		{"馬８进７", xiangqi.Black, "馬8进7"},
		{"马八进七", xiangqi.Black, "馬8进7"},
		{"包二平五", xiangqi.Black, "砲2平5"},
		{"後車退２", xiangqi.Black, "后車退2"},
		{"将5平4", xiangqi.Black, "将5平4"},
		{"帥五平四", xiangqi.Red, "帅五平四"},
	}
	for _, tc := range cases {
		if got := NormalizeChinese(tc.in, tc.side); got != tc.want {
			t.Errorf("NormalizeChinese(%q, %v) = %q, want %q", tc.in, tc.side, got, tc.want)
		}
	}
}

func TestResolveMove(t *testing.T) {
	b := xiangqi.NewBoard()
	for _, tok := range []string{"炮二平五", "H2-E2", "h2e2", "砲2平5"} {
		m, ok := ResolveMove(b, tok)
		if !ok || m.String() != "h2e2" {
			t.Errorf("%q: got %v %v", tok, m, ok)
		}
	}
	for _, tok := range []string{"h2h7", "H2-H7", "炮二进六", "x"} {
		if m, ok := ResolveMove(b, tok); ok {
			t.Errorf("%q resolved to %v", tok, m)
		}
	}
}

func TestReplayIllegal(t *testing.T) {
	g := &Game{Moves: []xiangqi.Move{{From: xiangqi.NewSquare(7, 2), To: xiangqi.NewSquare(7, 7)}}}
	if _, err := Replay(g); !errors.Is(err, ErrBadMove) {
		t.Fatalf("got %v", err)
	}
}
