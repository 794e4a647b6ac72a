package engine

import "github.com/trilltino/xfchess/internal/board"

// qframe is one level of the capture-only quiescence stack.
type qframe struct {
	side   board.Color
	alpha  int
	beta   int
	moves  []board.Move
	cursor int

	move board.Move
	undo board.Undo
}

// quiesce searches captures from the current position until it is quiet
// or QuiescenceDepth plies deep, and returns a fail-hard score in
// [alpha, beta] from side's perspective.
func (s *Searcher) quiesce(side board.Color, alpha, beta int) int {
	s.qstack = s.qstack[:0]

	if v, done := s.qenter(side, alpha, beta); done {
		return v
	}

	var score int
	for {
		n := len(s.qstack) - 1
		f := &s.qstack[n]

		if s.qexpand(f) {
			v, done := s.qenter(f.side.Other(), -f.beta, -f.alpha)
			if !done {
				continue
			}
			score = v
		} else {
			// Exhausted: alpha is the result.
			score = f.alpha
			s.qstack = s.qstack[:n]
			if n == 0 {
				return score
			}
		}

		// Propagate score to the frame on top, popping parents that
		// fail high.
		for {
			p := &s.qstack[len(s.qstack)-1]
			board.UnmakeMove(s.board, p.move, p.undo)
			v := -score
			if v < p.beta {
				if v > p.alpha {
					p.alpha = v
				}
				break
			}
			s.qstack = s.qstack[:len(s.qstack)-1]
			if len(s.qstack) == 0 {
				return p.beta
			}
			score = p.beta
		}
	}
}

// qenter evaluates a new quiescence node. It returns done with the node's
// score when stand pat cuts, the ply cap is reached or there is no capture;
// otherwise it pushes a frame whose captures are ordered for expansion.
func (s *Searcher) qenter(side board.Color, alpha, beta int) (int, bool) {
	s.qnodes++

	standPat := Evaluate(s.board, s.tables) * int(side)
	if standPat >= beta {
		return beta, true
	}
	if standPat > alpha {
		alpha = standPat
	}
	if len(s.qstack) >= s.opts.QuiescenceDepth {
		return alpha, true
	}

	n := len(s.qstack)
	var moves []board.Move
	if n < cap(s.qstack) {
		moves = s.qstack[:n+1][n].moves[:0]
	}
	moves = board.GenerateCaptures(s.board, s.tables, side, moves)
	if len(moves) == 0 {
		return alpha, true
	}
	orderMoves(s.board, moves, board.NoMove)

	s.qstack = append(s.qstack, qframe{side: side, alpha: alpha, beta: beta, moves: moves})
	return 0, false
}

// qexpand makes the next capture of f that keeps its king safe.
func (s *Searcher) qexpand(f *qframe) bool {
	for f.cursor < len(f.moves) {
		m := f.moves[f.cursor]
		f.cursor++
		u := board.MakeMove(s.board, m)
		if board.IsInCheck(s.board, s.tables, f.side) {
			board.UnmakeMove(s.board, m, u)
			continue
		}
		f.move, f.undo = m, u
		return true
	}
	return false
}
