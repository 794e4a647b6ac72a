// Package session keeps concurrently used games apart. Each session owns
// an engine and serializes every call on it; the manager only guards the
// session map.
package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/trilltino/xfchess/internal/board"
	"github.com/trilltino/xfchess/internal/engine"
	"github.com/trilltino/xfchess/internal/storage"
)

// ErrSessionNotFound is returned for an unknown session ID.
var ErrSessionNotFound = errors.New("session not found")

// Manager owns a set of sessions keyed by ID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     engine.Options
}

// NewManager returns a manager whose sessions use opts for their engines.
func NewManager(opts engine.Options) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

// New starts a session at the standard position.
func (m *Manager) New() (*Session, error) {
	return m.NewFromFEN("")
}

// NewFromFEN starts a session at fen, or at the standard position when
// fen is empty.
func (m *Manager) NewFromFEN(fen string) (*Session, error) {
	eng, err := engine.NewEngine(m.opts)
	if err != nil {
		return nil, err
	}
	side := board.White
	if fen != "" {
		if side, err = eng.LoadFEN(fen); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		updatedAt: now,
		eng:       eng,
		side:      side,
		startFEN:  fen,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.Wrap(ErrSessionNotFound, id)
	}
	return s, nil
}

// Delete removes a session. Calls already running on it finish normally.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return errors.Wrap(ErrSessionNotFound, id)
	}
	delete(m.sessions, id)
	return nil
}

// List returns the IDs of all sessions, oldest first.
func (m *Manager) List() []string {
	m.mu.RLock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	ids := make([]string, len(all))
	for i, s := range all {
		ids[i] = s.ID
	}
	return ids
}

// Len returns the number of sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Session is one game. Its methods may be called from several goroutines;
// each call holds the session lock for its whole duration.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	eng       *engine.Engine
	side      board.Color
	startFEN  string
	moves     []string
	updatedAt time.Time
}

// Snapshot is a consistent copy of a session's state.
type Snapshot struct {
	ID         string
	FEN        string
	SideToMove board.Color
	State      engine.GameState
	Moves      []string
	Ply        int
	UpdatedAt  time.Time
}

// Play validates and makes a move for the side to move.
func (s *Session) Play(src, dst board.Square) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state := s.eng.GameState(s.side); state != engine.Playing {
		return errors.Wrap(engine.ErrGameOver, state.String())
	}
	before := s.eng.Board()
	if err := s.eng.Play(src, dst, s.side); err != nil {
		return err
	}
	s.advance(board.UCI(&before, board.NewMove(src, dst)))
	return nil
}

// PlayUCI plays a move given in coordinate notation such as "e2e4".
func (s *Session) PlayUCI(move string) error {
	m, err := board.ParseMove(move)
	if err != nil {
		return err
	}
	return s.Play(m.From, m.To)
}

// EngineMove lets the engine search for the side to move and plays its
// reply. A think of zero uses the engine's configured time.
func (s *Session) EngineMove(ctx context.Context, think time.Duration) (engine.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.eng.Reply(ctx, s.side, think)
	if errors.Is(err, engine.ErrGameOver) {
		return r, err
	}
	if r.From == board.NoSquare {
		return r, err
	}
	b := s.eng.Board()
	uci := board.UCI(&b, r.Move())
	s.eng.DoMove(r.From, r.To, true)
	s.advance(uci)
	// An invariant error still comes with a playable move.
	return r, err
}

func (s *Session) advance(uci string) {
	s.moves = append(s.moves, uci)
	s.side = s.side.Other()
	s.updatedAt = time.Now()
}

// Reset returns the session to its starting position.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.eng.Reset()
	s.side = board.White
	if s.startFEN != "" {
		side, err := s.eng.LoadFEN(s.startFEN)
		if err != nil {
			return err
		}
		s.side = side
	}
	s.moves = nil
	s.updatedAt = time.Now()
	return nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:         s.ID,
		FEN:        s.eng.FEN(s.side),
		SideToMove: s.side,
		State:      s.eng.GameState(s.side),
		Moves:      append([]string(nil), s.moves...),
		Ply:        s.eng.Ply(),
		UpdatedAt:  s.updatedAt,
	}
}

// Board returns a copy of the current position.
func (s *Session) Board() board.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Board()
}

// Perft counts legal move paths of the given depth from the current
// position.
func (s *Session) Perft(depth int) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Perft(s.side, depth)
}

// Stats returns the engine's search counters.
func (s *Session) Stats() engine.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Stats()
}

// Record builds a game record of the session for storage.
func (s *Session) Record(white, black string) *storage.GameRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := &storage.GameRecord{
		White:    white,
		Black:    black,
		StartFEN: s.startFEN,
		Moves:    append([]string(nil), s.moves...),
		Result:   storage.Unfinished,
		PlayedAt: s.CreatedAt,
		Duration: s.updatedAt.Sub(s.CreatedAt),
	}
	switch s.eng.GameState(s.side) {
	case engine.Checkmate:
		rec.Result = storage.WinFor(s.side.Other())
		rec.Termination = "checkmate"
	case engine.Stalemate:
		rec.Result = storage.Draw
		rec.Termination = "stalemate"
	}
	return rec
}
