package engine

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/trilltino/xfchess/internal/board"
)

// GameState is the status of the side to move.
type GameState int

const (
	Playing GameState = iota
	Stalemate
	Checkmate
)

func (s GameState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Stalemate:
		return "stalemate"
	case Checkmate:
		return "checkmate"
	}
	return "GameState(" + strconv.Itoa(int(s)) + ")"
}

// MovedFlags records whether a king or rook has left its home square.
// They are tracked for callers but not used by move generation.
type MovedFlags struct {
	WhiteKing  bool
	WhiteRookA bool
	WhiteRookH bool
	BlackKing  bool
	BlackRookA bool
	BlackRookH bool
}

func (f *MovedFlags) update(src board.Square) {
	switch src {
	case board.A1:
		f.WhiteRookA = true
	case board.E1:
		f.WhiteKing = true
	case board.H1:
		f.WhiteRookH = true
	case board.A8:
		f.BlackRookA = true
	case board.E8:
		f.BlackKing = true
	case board.H8:
		f.BlackRookH = true
	}
}

// Reply is the engine's answer to a position.
type Reply struct {
	From    board.Square
	To      board.Square
	Score   int       // from the mover's perspective
	Outcome GameState // Checkmate when a forced mate (either way) was found
	MateIn  int       // plies to mate when Outcome is Checkmate
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
}

// Move returns the reply as a board move.
func (r Reply) Move() board.Move {
	return board.NewMove(r.From, r.To)
}

// Stats are counters accumulated over the life of an engine.
type Stats struct {
	Searches   int
	Nodes      uint64 // main search frames
	QNodes     uint64 // quiescence nodes
	Cutoffs    uint64
	MaxPly     int
	LastDepth  int
	TTHitRate  float64 // percent
	TTUsed     int
	TTCapacity int
}

// Engine owns a game: the board, move tables, cache and search state.
// It is not safe for concurrent use; see session.Manager.
type Engine struct {
	board    board.Board
	tables   *board.MoveTables
	tt       *TranspositionTable
	searcher *Searcher
	opts     Options

	ply       int
	moved     MovedFlags
	searches  int
	lastDepth int
}

// NewEngine creates an engine at the starting position. The only error
// is a transposition table that cannot be sized as requested.
func NewEngine(opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	tt, err := NewTranspositionTable(opts.HashMB)
	if err != nil {
		return nil, errors.Wrap(err, "new engine")
	}
	e := &Engine{
		board:  board.StartBoard(),
		tables: board.NewMoveTables(),
		tt:     tt,
		opts:   opts,
	}
	e.searcher = NewSearcher(&e.board, e.tables, tt, opts)
	return e, nil
}

// Reset restores the starting position and clears the move and search
// counters. The transposition table is kept; use ClearCache to drop it.
func (e *Engine) Reset() {
	e.board = board.StartBoard()
	e.ply = 0
	e.moved = MovedFlags{}
	e.searches = 0
	e.lastDepth = 0
	e.searcher.ResetStats()
}

// ClearCache empties the transposition table.
func (e *Engine) ClearCache() {
	e.tt.Clear()
}

// DoMove moves the piece on src to dst without checking legality. It
// returns false if either square is off the board or src is empty. With
// updateFlags the king/rook home-square flags are updated.
func (e *Engine) DoMove(src, dst board.Square, updateFlags bool) bool {
	if !src.IsValid() || !dst.IsValid() || e.board[src] == board.Empty {
		return false
	}
	if updateFlags {
		e.moved.update(src)
	}
	board.MakeMove(&e.board, board.NewMove(src, dst))
	e.ply++
	return true
}

// IsLegalMove reports whether c may move from src to dst.
func (e *Engine) IsLegalMove(src, dst board.Square, c board.Color) bool {
	return board.IsLegalMove(&e.board, e.tables, src, dst, c)
}

// Play validates and makes a move for c, returning ErrInvalidSquare,
// ErrNoPiece, ErrWrongColor or ErrIllegalMove when it cannot.
func (e *Engine) Play(src, dst board.Square, c board.Color) error {
	switch {
	case !src.IsValid() || !dst.IsValid():
		return errors.Wrapf(ErrInvalidSquare, "%d -> %d", src, dst)
	case e.board[src] == board.Empty:
		return errors.Wrapf(ErrNoPiece, "%s", src)
	case !e.board[src].Is(c):
		return errors.Wrapf(ErrWrongColor, "%s holds a %s piece", src, e.board[src].Color())
	case !e.IsLegalMove(src, dst, c):
		return errors.Wrapf(ErrIllegalMove, "%s%s", src, dst)
	}
	e.DoMove(src, dst, true)
	return nil
}

// GameState returns Checkmate or Stalemate when c has no legal move,
// Playing otherwise.
func (e *Engine) GameState(c board.Color) GameState {
	if board.HasLegalMove(&e.board, e.tables, c) {
		return Playing
	}
	if board.IsInCheck(&e.board, e.tables, c) {
		return Checkmate
	}
	return Stalemate
}

// Reply searches for c's best move for up to think (the configured
// ThinkTime when think <= 0). The board is unchanged afterwards; the
// caller applies the move with DoMove or Play.
//
// ErrGameOver is returned when c has no legal move. Any other error is
// an internal defect; the reply then still carries a legal move.
func (e *Engine) Reply(ctx context.Context, c board.Color, think time.Duration) (Reply, error) {
	if think <= 0 {
		think = e.opts.ThinkTime
	}
	if state := e.GameState(c); state != Playing {
		return Reply{From: board.NoSquare, To: board.NoSquare, Outcome: state}, ErrGameOver
	}

	res, err := e.searcher.Iterate(ctx, c, think, e.ply, e.opts.OnInfo)
	e.searches++
	e.lastDepth = res.Depth

	r := Reply{
		From:    res.Move.From,
		To:      res.Move.To,
		Score:   res.Score,
		Outcome: Playing,
		Depth:   res.Depth,
		Nodes:   res.Nodes,
		Elapsed: res.Elapsed,
	}
	if IsMateScore(res.Score) {
		r.Outcome = Checkmate
		r.MateIn = MateIn(res.Score)
	}
	return r, err
}

// Board returns a copy of the current board.
func (e *Engine) Board() board.Board {
	return e.board
}

// SetBoard replaces the position. Ply and flags are left as they are.
func (e *Engine) SetBoard(b board.Board) {
	e.board = b
}

// LoadFEN sets the position from a FEN string and returns the side to move.
func (e *Engine) LoadFEN(fen string) (board.Color, error) {
	b, side, err := board.ParseFEN(fen)
	if err != nil {
		return 0, err
	}
	e.board = b
	return side, nil
}

// FEN formats the current position with side to move.
func (e *Engine) FEN(side board.Color) string {
	return e.board.FEN(side)
}

// Ply returns the number of moves made with DoMove since the last reset.
func (e *Engine) Ply() int {
	return e.ply
}

// MovedFlags returns the king/rook home-square flags.
func (e *Engine) MovedFlags() MovedFlags {
	return e.moved
}

// Tables returns the shared move tables.
func (e *Engine) Tables() *board.MoveTables {
	return e.tables
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// Evaluate returns the static evaluation of the current position.
func (e *Engine) Evaluate() int {
	return Evaluate(&e.board, e.tables)
}

// Perft counts leaf nodes of the legal move tree from the current position.
func (e *Engine) Perft(c board.Color, depth int) uint64 {
	return board.Perft(&e.board, e.tables, c, depth)
}

// Stats returns the accumulated search counters.
func (e *Engine) Stats() Stats {
	s := e.searcher
	return Stats{
		Searches:   e.searches,
		Nodes:      s.nodes,
		QNodes:     s.qnodes,
		Cutoffs:    s.cutoffs,
		MaxPly:     s.maxPly,
		LastDepth:  e.lastDepth,
		TTHitRate:  e.tt.HitRate(),
		TTUsed:     e.tt.Len(),
		TTCapacity: e.tt.Capacity(),
	}
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if IsMateScore(score) {
		moves := (MateIn(score) + 1) / 2
		if score > 0 {
			return "Mate in " + strconv.Itoa(moves)
		}
		return "Mated in " + strconv.Itoa(moves)
	}

	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	cents := strconv.Itoa(score % 100)
	if len(cents) == 1 {
		cents = "0" + cents
	}
	return sign + strconv.Itoa(score/100) + "." + cents
}
