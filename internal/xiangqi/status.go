package xiangqi

type Status int8

const (
	StatusOngoing Status = iota
	StatusCheckmate
	StatusStalemate    // 困毙：被困方判负，不是和棋
	StatusKingCaptured // 将帅不在棋盘上
	StatusRepetition
	StatusSixtyMoves
)

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusKingCaptured:
		return "king_captured"
	case StatusRepetition:
		return "repetition"
	case StatusSixtyMoves:
		return "sixty_moves"
	}
	return "unknown"
}

func (s Status) Terminal() bool { return s != StatusOngoing }
func (s Status) IsDraw() bool   { return s == StatusRepetition || s == StatusSixtyMoves }

const (
	DrawReasonRepetition = "三次同形重复"
	DrawReasonSixtyMoves = "六十回合无吃子"
)

// IsCheckmate 被将军且无合法着法
func (b *Board) IsCheckmate() bool {
	return b.IsInCheck(b.sideToMove) && !b.hasLegalMove()
}

// IsStalemate 未被将军但无合法着法；象棋中这是被困方输棋，由上层判定胜负
func (b *Board) IsStalemate() bool {
	return !b.IsInCheck(b.sideToMove) && !b.hasLegalMove()
}

// IsThreefoldRepetition 当前局面在重复窗口中出现至少 3 次（窗口至少 5 条记录）
func (b *Board) IsThreefoldRepetition() bool {
	window := b.repetitionWindow()
	if len(window) < 5 {
		return false
	}
	key := b.Key()
	count := 0
	for _, p := range window {
		if p.key == key {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

// IsSixtyMoveRule 120 个半回合无吃子、无动兵
func (b *Board) IsSixtyMoveRule() bool {
	return b.halfmoveClock >= sixtyMoveLimit
}

func (b *Board) IsDraw() bool {
	return b.IsThreefoldRepetition() || b.IsSixtyMoveRule()
}

// DrawReason 可以提和时返回原因
func (b *Board) DrawReason() (string, bool) {
	if b.IsThreefoldRepetition() {
		return DrawReasonRepetition, true
	}
	if b.IsSixtyMoveRule() {
		return DrawReasonSixtyMoves, true
	}
	return "", false
}

func (b *Board) Status() Status {
	if !b.KingExists(Red) || !b.KingExists(Black) {
		return StatusKingCaptured
	}
	inCheck := b.IsInCheck(b.sideToMove)
	if !b.hasLegalMove() {
		if inCheck {
			return StatusCheckmate
		}
		return StatusStalemate
	}
	if b.IsThreefoldRepetition() {
		return StatusRepetition
	}
	if b.IsSixtyMoveRule() {
		return StatusSixtyMoves
	}
	return StatusOngoing
}
