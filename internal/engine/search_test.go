package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/trilltino/xfchess/internal/board"
)

func newTestSearcher(t *testing.T, fen string, opts Options) (*Searcher, *board.Board, board.Color) {
	t.Helper()
	b, side, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	opts = opts.withDefaults()
	tt, err := NewTranspositionTable(1)
	if err != nil {
		t.Fatal(err)
	}
	return NewSearcher(&b, board.NewMoveTables(), tt, opts), &b, side
}

// A crowded position where almost every piece can capture something, so
// capture chains run far beyond the quiescence ply limit.
const captureStorm = "4k3/8/rnbqrbnr/PPPPPPPP/pppppppp/RNBQRBNR/8/4K3 w - - 0 1"

func TestQuiescenceTerminates(t *testing.T) {
	for _, limit := range []int{1, 2, 4} {
		s, b, side := newTestSearcher(t, captureStorm, Options{QuiescenceDepth: limit})
		before := *b

		alpha, beta := -Infinity, Infinity
		score := s.quiesce(side, alpha, beta)
		t.Logf("limit %d: score %d after %d nodes", limit, score, s.qnodes)

		if score < alpha || score > beta {
			t.Errorf("limit %d: score %d outside [%d, %d]", limit, score, alpha, beta)
		}
		if *b != before {
			t.Errorf("limit %d: board not restored", limit)
		}
		if len(s.qstack) != 0 {
			t.Errorf("limit %d: %d frames left on the stack", limit, len(s.qstack))
		}
	}
}

func TestQuiescenceStandPat(t *testing.T) {
	is := is.New(t)
	s, b, side := newTestSearcher(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", Options{})

	stand := Evaluate(b, s.tables)
	is.Equal(s.quiesce(side, -Infinity, Infinity), stand) // no captures
	is.Equal(s.quiesce(side, -Infinity, stand-1), stand-1) // fail hard at beta
	is.Equal(s.quiesce(side, stand+10, stand+20), stand+10)
}

func TestQuiescenceSeesRecapture(t *testing.T) {
	// Queen takes a pawn defended by a pawn: the static gain is a pawn but
	// the exchange loses the queen.
	s, b, side := newTestSearcher(t, "4k3/8/2p5/3p4/8/8/3Q4/4K3 w - - 0 1", Options{})
	stand := Evaluate(b, s.tables)
	score := s.quiesce(side, -Infinity, Infinity)
	if score != stand {
		t.Errorf("quiesce = %d, want stand pat %d", score, stand)
	}
}

func TestSearchDepthRestoresBoard(t *testing.T) {
	s, b, side := newTestSearcher(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w - - 2 3", Options{})
	before := *b

	for depth := 1; depth <= 3; depth++ {
		score, move, err := s.SearchDepth(context.Background(), side, depth, time.Time{})
		if err != nil {
			t.Fatalf("depth %d: %v", depth, err)
		}
		if !board.IsLegalMove(b, s.tables, move.From, move.To, side) {
			t.Errorf("depth %d: illegal best move %s", depth, move)
		}
		t.Logf("depth %d: %s score %d", depth, move, score)
		if *b != before {
			t.Fatalf("depth %d: board not restored", depth)
		}
		if len(s.stack) != 0 {
			t.Fatalf("depth %d: stack not empty", depth)
		}
	}
}

func TestSearchDepthAbortRestoresBoard(t *testing.T) {
	s, b, side := newTestSearcher(t, board.StartFEN, Options{})
	before := *b

	_, _, err := s.SearchDepth(context.Background(), side, 8, time.Now().Add(time.Millisecond))
	if err != errAborted {
		t.Fatalf("SearchDepth error = %v, want errAborted", err)
	}
	if *b != before {
		t.Fatal("board not restored after abort")
	}
}

func TestSearchWinsHangingQueen(t *testing.T) {
	s, _, side := newTestSearcher(t, "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1", Options{})
	_, move, err := s.SearchDepth(context.Background(), side, 3, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if move.From != board.D2 || move.To != board.D5 {
		t.Errorf("best move = %s, want d2d5", move)
	}
}

func TestSearchStalemateScoresZero(t *testing.T) {
	s, _, side := newTestSearcher(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", Options{})
	score, move, err := s.SearchDepth(context.Background(), side, 2, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if score != 0 || !move.IsNone() {
		t.Errorf("stalemate: score %d move %s, want 0 and no move", score, move)
	}
}

func TestMoveOrdering(t *testing.T) {
	is := is.New(t)
	b, side, err := board.ParseFEN("4k3/8/8/3q4/4P3/8/8/R3K3 w - - 0 1")
	is.NoErr(err)
	tables := board.NewMoveTables()

	moves := board.GeneratePseudoLegal(&b, tables, side, nil)
	orderMoves(&b, moves, board.NoMove)
	is.True(moves[0].Same(board.NewMove(board.E4, board.D5))) // pawn takes queen first

	tt := board.NewMove(board.A1, board.A2)
	orderMoves(&b, moves, tt)
	is.True(moves[0].Same(tt)) // cached move overrides captures
	is.True(moves[1].Same(board.NewMove(board.E4, board.D5)))

	for i := 1; i < len(moves); i++ {
		is.True(moves[i-1].Score >= moves[i].Score)
	}
}

func TestCheckExtensionBudget(t *testing.T) {
	// White queen and rook against a bare king: most white moves give check.
	const fen = "4k3/8/8/8/8/8/8/R2QK3 w - - 0 1"
	const depth = 3

	tests := []struct {
		name       string
		extensions int
		maxPly     int
	}{
		{"disabled", -1, depth},
		{"one", 1, depth + 1},
		{"default", 0, depth + DefaultMaxExtensions},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, b, side := newTestSearcher(t, fen, Options{MaxExtensions: tc.extensions})
			before := *b
			if _, _, err := s.SearchDepth(context.Background(), side, depth, time.Time{}); err != nil {
				t.Fatal(err)
			}
			if *b != before {
				t.Fatal("board changed")
			}
			t.Logf("max ply %d", s.maxPly)
			if s.maxPly > tc.maxPly {
				t.Errorf("max ply %d exceeds %d", s.maxPly, tc.maxPly)
			}
			if tc.extensions < 0 && s.maxPly != depth {
				t.Errorf("max ply %d without extensions, want %d", s.maxPly, depth)
			}
			if tc.extensions >= 0 && s.maxPly <= depth {
				t.Errorf("max ply %d, expected checks to extend past %d", s.maxPly, depth)
			}
		})
	}
}

func TestExhaustWithoutBestMove(t *testing.T) {
	s, _, _ := newTestSearcher(t, board.StartFEN, Options{})
	_, err := s.exhaust(&frame{legal: 1})
	if !errors.Is(err, ErrSearchInvariant) {
		t.Fatalf("err = %v, want ErrSearchInvariant", err)
	}
	t.Logf("%+v", err)
}

func TestIterateKeepsMoveOnInvariantError(t *testing.T) {
	tests := []struct {
		name      string
		failDepth int
		wantDepth int
		fallback  bool
	}{
		{"previous depth", 2, 1, false},
		{"fallback", 1, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verifyFrame = func(f *frame) bool {
				return f.ply > 0 || f.depth < tc.failDepth
			}
			t.Cleanup(func() { verifyFrame = nil })

			s, b, side := newTestSearcher(t, board.StartFEN, Options{})
			before := *b
			res, err := s.Iterate(context.Background(), side, 2*time.Second, 0, nil)
			if !errors.Is(err, ErrSearchInvariant) {
				t.Fatalf("err = %v, want ErrSearchInvariant", err)
			}
			if *b != before {
				t.Fatal("board changed")
			}
			if res.Depth != tc.wantDepth || res.Fallback != tc.fallback {
				t.Errorf("depth %d fallback %v, want %d %v", res.Depth, res.Fallback, tc.wantDepth, tc.fallback)
			}
			if !board.IsLegalMove(b, s.tables, res.Move.From, res.Move.To, side) {
				t.Errorf("move %s is not legal", res.Move)
			}
		})
	}
}
