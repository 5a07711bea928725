package pgn

import (
	"strings"

	"golang.org/x/text/width"

	"xiangqi/internal/xiangqi"
)

// 各种棋谱软件里见过的异体字，统一成本方的写法
var (
	redReplacer = strings.NewReplacer(
		"車", "车", "俥", "车", "伡", "车",
		"馬", "马", "傌", "马", "㐷", "马",
		"砲", "炮", "包", "炮",
		"將", "帅", "将", "帅", "帥", "帅",
		"士", "仕",
		"象", "相",
		"卒", "兵",
		"進", "进", "後", "后",
		"1", "一", "2", "二", "3", "三", "4", "四", "5", "五",
		"6", "六", "7", "七", "8", "八", "9", "九",
	)
	blackReplacer = strings.NewReplacer(
		"车", "車", "俥", "車", "伡", "車",
		"马", "馬", "傌", "馬", "㐷", "馬",
		"炮", "砲", "包", "砲",
		"帅", "将", "帥", "将", "將", "将",
		"仕", "士",
		"相", "象",
		"兵", "卒",
		"進", "进", "後", "后",
		"一", "1", "二", "2", "三", "3", "四", "4", "五", "5",
		"六", "6", "七", "7", "八", "8", "九", "9",
	)
)

// NormalizeChinese 把全角字符折成半角，异体字和数字换成 side 一方的标准写法
func NormalizeChinese(text string, side xiangqi.Side) string {
	text = strings.TrimSpace(width.Narrow.String(text))
	if side == xiangqi.Black {
		return blackReplacer.Replace(text)
	}
	return redReplacer.Replace(text)
}
