package engine

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/trilltino/xfchess/internal/board"
)

// Search constants
const (
	Infinity  = 32000
	MateValue = board.KingValue
	MaxDepth  = 15
	MaxPly    = 128

	// mateThreshold separates mate scores (MateValue - ply) from
	// ordinary evaluations.
	mateThreshold = MateValue - MaxPly

	// checkEvery is the number of frame initializations between
	// deadline, cancellation and yield checks.
	checkEvery = 128
)

// IsMateScore reports whether a score is past the forced-mate cutoff of
// half the king's value.
func IsMateScore(score int) bool {
	return score > MateValue/2 || score < -MateValue/2
}

// MateIn returns the distance to mate in plies for a mate score.
func MateIn(score int) int {
	if score < 0 {
		score = -score
	}
	return MateValue - score
}

// frame is one level of the explicit alpha-beta stack.
type frame struct {
	depth      int
	ply        int
	alpha      int
	beta       int
	side       board.Color
	key        PositionKey
	extensions int

	entered bool
	inCheck bool
	moves   []board.Move
	cursor  int
	legal   int

	best     int
	bestMove board.Move
	hasBest  bool

	// Move made on the board while a child frame is being searched.
	move board.Move
	undo board.Undo
}

// Searcher runs depth-limited searches on a board it modifies in place and
// restores before returning.
type Searcher struct {
	board  *board.Board
	tables *board.MoveTables
	tt     *TranspositionTable
	opts   Options

	stack  []frame
	qstack []qframe

	ctx        context.Context
	deadline   time.Time
	sliceStart time.Time
	inits      int
	recency    int

	rootMove  board.Move
	rootScore int

	// Counters, accumulated until ResetStats.
	nodes   uint64
	qnodes  uint64
	cutoffs uint64
	maxPly  int
}

// NewSearcher creates a searcher over a board owned by the caller.
func NewSearcher(b *board.Board, tables *board.MoveTables, tt *TranspositionTable, opts Options) *Searcher {
	return &Searcher{
		board:  b,
		tables: tables,
		tt:     tt,
		opts:   opts,
		stack:  make([]frame, 0, MaxDepth+opts.MaxExtensions+2),
		qstack: make([]qframe, 0, opts.QuiescenceDepth+2),
	}
}

// Nodes returns the number of main-search frames entered.
func (s *Searcher) Nodes() uint64 {
	return s.nodes + s.qnodes
}

// ResetStats clears the node counters.
func (s *Searcher) ResetStats() {
	s.nodes, s.qnodes, s.cutoffs, s.maxPly = 0, 0, 0, 0
}

// SearchDepth runs one full-window alpha-beta search of the given depth
// for side. It returns the root score from side's perspective and the best
// root move, which is NoMove when side has no legal move. A search that
// passes deadline or whose ctx is cancelled returns errAborted with the
// board restored.
func (s *Searcher) SearchDepth(ctx context.Context, side board.Color, depth int, deadline time.Time) (int, board.Move, error) {
	s.ctx = ctx
	s.deadline = deadline
	s.rootMove = board.NoMove
	s.rootScore = 0

	s.stack = s.stack[:0]
	s.push(frame{
		depth: depth,
		alpha: -Infinity,
		beta:  Infinity,
		side:  side,
		key:   PositionHash(s.board).WithSide(side),
	})

	for {
		f := &s.stack[len(s.stack)-1]

		if !f.entered {
			f.entered = true
			if err := s.checkpoint(); err != nil {
				s.unwind()
				return 0, board.NoMove, err
			}
			if score, done := s.enter(f); done {
				if s.complete(score) {
					return s.rootScore, s.rootMove, nil
				}
			}
			continue
		}

		if s.expand(f) {
			continue
		}

		// All moves tried without a cutoff.
		score, err := s.exhaust(f)
		if err != nil {
			s.unwind()
			return 0, board.NoMove, err
		}
		if s.complete(score) {
			return s.rootScore, s.rootMove, nil
		}
	}
}

// push adds a frame, reusing the move buffer of a previous occupant.
func (s *Searcher) push(f frame) {
	n := len(s.stack)
	if n < cap(s.stack) {
		s.stack = s.stack[:n+1]
		f.moves = s.stack[n].moves[:0]
		s.stack[n] = f
	} else {
		s.stack = append(s.stack, f)
	}
	if f.ply > s.maxPly {
		s.maxPly = f.ply
	}
}

// checkpoint runs at every frame initialization. Every checkEvery calls it
// tests the deadline and ctx, and hands control to the Yield capability
// when the current time slice is used up.
func (s *Searcher) checkpoint() error {
	s.inits++
	if s.inits%checkEvery != 0 {
		return nil
	}
	now := time.Now()
	if !s.deadline.IsZero() && now.After(s.deadline) {
		return errAborted
	}
	if s.ctx != nil && s.ctx.Err() != nil {
		return errAborted
	}
	if s.opts.Yield != nil && now.Sub(s.sliceStart) >= s.opts.SliceBudget {
		s.opts.Yield()
		s.sliceStart = time.Now()
	}
	return nil
}

// enter initializes a frame. It returns done when the frame's score is
// known without expanding children: quiescence at the horizon, a usable
// cache hit, or a position without pseudo-legal moves.
func (s *Searcher) enter(f *frame) (int, bool) {
	s.nodes++

	if f.depth <= 0 {
		return s.quiesce(f.side, f.alpha, f.beta), true
	}

	ttMove := board.NoMove
	if e, ok := s.tt.Probe(f.key); ok {
		if f.ply > 0 && int(e.Depth) >= f.depth {
			return scoreFromTT(int(e.Score), f.ply), true
		}
		ttMove = e.Move
	}

	f.inCheck = board.IsInCheck(s.board, s.tables, f.side)
	if f.inCheck && f.extensions < s.opts.MaxExtensions {
		f.depth++
		f.extensions++
	}

	f.moves = board.GeneratePseudoLegal(s.board, s.tables, f.side, f.moves[:0])
	if len(f.moves) == 0 {
		return s.terminalScore(f), true
	}
	orderMoves(s.board, f.moves, ttMove)

	f.best = -Infinity
	return 0, false
}

// terminalScore scores a node without legal moves: mated (shallower mates
// score higher for the winner) or stalemate.
func (s *Searcher) terminalScore(f *frame) int {
	if f.inCheck {
		return -MateValue + f.ply
	}
	return 0
}

// expand makes the next legal move of f and pushes its child frame. It
// returns false once the move list is exhausted.
func (s *Searcher) expand(f *frame) bool {
	for f.cursor < len(f.moves) {
		m := f.moves[f.cursor]
		f.cursor++

		u := board.MakeMove(s.board, m)
		if board.IsInCheck(s.board, s.tables, f.side) {
			board.UnmakeMove(s.board, m, u)
			continue
		}
		f.legal++
		f.move, f.undo = m, u

		s.push(frame{
			depth:      f.depth - 1,
			ply:        f.ply + 1,
			alpha:      -f.beta,
			beta:       -f.alpha,
			side:       f.side.Other(),
			key:        f.key.AfterMove(m, u, s.board[m.To]),
			extensions: f.extensions,
		})
		return true
	}
	return false
}

// verifyFrame, when set, is consulted for every exhausted frame with legal
// moves; returning false fails the frame as if it had no best move.
var verifyFrame func(f *frame) bool

// exhaust finishes a frame whose moves were all searched.
func (s *Searcher) exhaust(f *frame) (int, error) {
	if f.legal == 0 {
		score := s.terminalScore(f)
		s.store(f, score, board.NoMove)
		return score, nil
	}
	if !f.hasBest || (verifyFrame != nil && !verifyFrame(f)) {
		return 0, errors.Wrapf(ErrSearchInvariant, "frame at ply %d completed %d legal moves without a best move", f.ply, f.legal)
	}
	s.store(f, f.best, f.bestMove)
	return f.best, nil
}

// complete pops the top frame with its score and propagates the result to
// the parents, popping each parent that fails high in turn. It reports
// whether the root frame has completed.
func (s *Searcher) complete(score int) bool {
	for {
		n := len(s.stack) - 1
		if n == 0 {
			s.rootScore = score
			s.rootMove = s.stack[0].bestMove
			s.stack = s.stack[:0]
			return true
		}
		s.stack = s.stack[:n]

		p := &s.stack[n-1]
		board.UnmakeMove(s.board, p.move, p.undo)

		child := -score
		if !p.hasBest || child > p.best {
			p.best = child
			p.bestMove = p.move
			p.hasBest = true
		}
		if child > p.alpha {
			p.alpha = child
		}
		if p.alpha < p.beta {
			return false
		}

		// Fail high: the remaining moves cannot change the result.
		s.cutoffs++
		s.store(p, p.best, p.bestMove)
		score = p.best
	}
}

// unwind restores the board after an aborted search.
func (s *Searcher) unwind() {
	for i := len(s.stack) - 2; i >= 0; i-- {
		f := &s.stack[i]
		board.UnmakeMove(s.board, f.move, f.undo)
	}
	s.stack = s.stack[:0]
}

func (s *Searcher) store(f *frame, score int, move board.Move) {
	s.tt.Store(f.key, move, scoreToTT(score, f.ply), f.depth, Priority(f.depth, s.recency))
}
