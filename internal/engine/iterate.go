package engine

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/trilltino/xfchess/internal/board"
)

// SearchInfo reports a completed iteration.
type SearchInfo struct {
	Depth   int
	Score   int
	Move    board.Move
	Nodes   uint64
	Time    time.Duration
	HitRate float64 // transposition table hit rate, percent
}

// Result is the outcome of an iterative-deepening run.
type Result struct {
	Move     board.Move
	Score    int
	Depth    int // last completed depth, 0 when the fallback move was used
	Nodes    uint64
	Elapsed  time.Duration
	Fallback bool
}

// softLimit is the share of the think time after which no new depth starts.
const softLimit = 0.9

// Iterate runs depths 1..MaxDepth for side within think. It stops after a
// depth when 90% of think has elapsed or a forced mate is found; a depth
// still running at the deadline is abandoned. If no depth completes, the
// first legal move is returned. recency is the game ply used for cache
// replacement priorities.
//
// An internal invariant error ends the iteration early; the best completed
// result (or the fallback move) is still returned alongside it.
func (s *Searcher) Iterate(ctx context.Context, side board.Color, think time.Duration, recency int, onInfo func(SearchInfo)) (Result, error) {
	tm := NewTimeManager(think)
	deadline := tm.Deadline()
	startNodes := s.Nodes()

	s.sliceStart = time.Now()
	s.recency = recency
	s.inits = 0

	var res Result
	var searchErr error
	for depth := 1; depth <= s.opts.MaxDepth; depth++ {
		if tm.ShouldStop() {
			break
		}
		score, move, err := s.SearchDepth(ctx, side, depth, deadline)
		if err != nil {
			if !errors.Is(err, errAborted) {
				searchErr = err
			}
			break
		}
		if move.IsNone() {
			break
		}
		res.Move, res.Score, res.Depth = move, score, depth

		if onInfo != nil {
			onInfo(SearchInfo{
				Depth:   depth,
				Score:   score,
				Move:    move,
				Nodes:   s.Nodes() - startNodes,
				Time:    tm.Elapsed(),
				HitRate: s.tt.HitRate(),
			})
		}

		if IsMateScore(score) || tm.PastOptimum() {
			break
		}
	}

	if res.Move.IsNone() {
		if m, ok := board.FirstLegalMove(s.board, s.tables, side); ok {
			res.Move = m
			res.Fallback = true
		}
	}
	res.Nodes = s.Nodes() - startNodes
	res.Elapsed = tm.Elapsed()
	return res, searchErr
}
