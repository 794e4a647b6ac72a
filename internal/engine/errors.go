package engine

import (
	"github.com/pkg/errors"
	"github.com/trilltino/xfchess/internal/board"
)

// Input errors returned by Play and LoadFEN. Callers may recover from them.
var (
	ErrInvalidSquare = board.ErrInvalidSquare
	ErrNoPiece       = errors.New("no piece at source square")
	ErrWrongColor    = errors.New("piece belongs to the other side")
	ErrIllegalMove   = errors.New("illegal move")
)

// ErrGameOver is returned by Reply when the side to move has no legal move.
var ErrGameOver = errors.New("game is over")

// ErrInvalidHashSize is a construction-time resource error.
var ErrInvalidHashSize = errors.New("invalid transposition table size")

// ErrSearchInvariant signals an engine defect detected during search, not
// a bad input. It is always returned together with a legal fallback move.
var ErrSearchInvariant = errors.New("search invariant violated")

// errAborted unwinds a depth that ran past its deadline or was cancelled.
var errAborted = errors.New("search aborted")
