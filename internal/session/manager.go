// Package session 管理进行中的对局：每盘棋一个 uuid，带撤销/重做和存档
package session

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"xiangqi/internal/pgn"
	"xiangqi/internal/store"
	"xiangqi/internal/xiangqi"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrIllegalMove     = errors.New("illegal move")
	ErrUnparseableMove = errors.New("unparseable move")
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNothingToRedo   = errors.New("nothing to redo")
	ErrNoLegalMove     = errors.New("no legal move")
	ErrNoArchive       = errors.New("no archive configured")
	ErrGameExists      = errors.New("game already open")
)

// Archive 是 Manager 需要的存档能力，*store.Store 实现了它
type Archive interface {
	SaveGame(rec *store.GameRecord) error
	LoadGame(id string) (*store.GameRecord, error)
}

type Manager struct {
	mu      sync.RWMutex
	games   map[string]*Game
	archive Archive
	log     *zap.Logger
}

// NewManager archive 可以为 nil（不存档）；log 为 nil 时不输出日志
func NewManager(archive Archive, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		games:   make(map[string]*Game),
		archive: archive,
		log:     log,
	}
}

// NewGame fen 为空时用标准开局
func (m *Manager) NewGame(fen, red, black string) (*Game, error) {
	if fen == "" {
		fen = xiangqi.StartFEN
	}
	b, err := xiangqi.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	g, err := m.add(uuid.NewString(), b, red, black)
	if err != nil {
		return nil, err
	}
	m.log.Info("game created", zap.String("game", g.ID), zap.String("fen", fen))
	return g, nil
}

// add 登记新对局；同 ID 的对局仍在进行时不覆盖，返回 ErrGameExists
func (m *Manager) add(id string, b *xiangqi.Board, red, black string) (*Game, error) {
	now := time.Now()
	g := &Game{
		ID:        id,
		Red:       red,
		Black:     black,
		CreatedAt: now,
		UpdatedAt: now,
		board:     b,
		log:       m.log.With(zap.String("game", id)),
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrGameExists, id)
	}
	m.games[id] = g
	return g, nil
}

func (m *Manager) Get(id string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	delete(m.games, id)
	return nil
}

// List 按创建时间排序
func (m *Manager) List() []*Game {
	m.mu.RLock()
	out := make([]*Game, 0, len(m.games))
	for _, g := range m.games {
		out = append(out, g)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Archive 把当前对局写入存档
func (m *Manager) Archive(id string) (*store.GameRecord, error) {
	if m.archive == nil {
		return nil, ErrNoArchive
	}
	g, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	rec := g.Record()
	if err := m.archive.SaveGame(rec); err != nil {
		return nil, fmt.Errorf("archive %s: %w", id, err)
	}
	m.log.Info("game archived",
		zap.String("game", id),
		zap.Int("moves", len(rec.Moves)),
		zap.String("result", rec.Result))
	return rec, nil
}

// Restore 重新走一遍存档中的着法，得到同一 ID 的对局。
// 该 ID 的对局已经打开时返回 ErrGameExists，已打开的对局不受影响。
func (m *Manager) Restore(rec *store.GameRecord) (*Game, error) {
	if rec.ID != "" {
		if _, err := m.Get(rec.ID); err == nil {
			return nil, fmt.Errorf("restore: %w: %s", ErrGameExists, rec.ID)
		}
	}
	fen := rec.StartFEN
	if fen == "" {
		fen = xiangqi.StartFEN
	}
	b, err := xiangqi.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", rec.ID, err)
	}
	for i, s := range rec.Moves {
		if !b.MakeMoveUCI(s) {
			return nil, fmt.Errorf("restore %s: %w: ply %d %s", rec.ID, ErrIllegalMove, i+1, s)
		}
	}
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	g, err := m.add(id, b, rec.Red, rec.Black)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	m.log.Info("game restored", zap.String("game", id), zap.Int("moves", len(rec.Moves)))
	return g, nil
}

// Load 从存档读出并恢复
func (m *Manager) Load(id string) (*Game, error) {
	if m.archive == nil {
		return nil, ErrNoArchive
	}
	rec, err := m.archive.LoadGame(id)
	if err != nil {
		return nil, err
	}
	return m.Restore(rec)
}

// Import 读入对局记录，作为新的对局。记录中途出错时返回 pgn.ErrBadMove，不创建对局。
func (m *Manager) Import(r io.Reader) (*Game, error) {
	rec, err := pgn.Read(r)
	if err != nil {
		return nil, err
	}
	b, err := pgn.Replay(rec)
	if err != nil {
		return nil, err
	}
	g, err := m.add(uuid.NewString(), b, rec.Tag(pgn.TagRed), rec.Tag(pgn.TagBlack))
	if err != nil {
		return nil, err
	}
	m.log.Info("game imported", zap.String("game", g.ID), zap.Int("moves", len(rec.Moves)))
	return g, nil
}
