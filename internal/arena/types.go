package arena

import (
	"time"

	"github.com/trilltino/xfchess/internal/board"
	"github.com/trilltino/xfchess/internal/engine"
	"github.com/trilltino/xfchess/internal/storage"
)

// Config controls a match between two engine configurations.
type Config struct {
	Concurrency int           // games played at once, one engine pair each
	Games       int           // stop after this many games, 0 plays every opening twice
	MoveTime    time.Duration // think time per move
	MaxPlies    int           // adjudicate a draw after this many plies

	EngineA engine.Options
	EngineB engine.Options

	// Openings are move sequences in standard algebraic notation. Nil uses
	// the built-in set.
	Openings []string

	// Store, when set, receives every finished game.
	Store *storage.Storage
}

// Default configuration values.
const (
	DefaultConcurrency = 4
	DefaultMoveTime    = 100 * time.Millisecond
	DefaultMaxPlies    = 300
)

func (c Config) withDefaults() Config {
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.MoveTime <= 0 {
		c.MoveTime = DefaultMoveTime
	}
	if c.MaxPlies <= 0 {
		c.MaxPlies = DefaultMaxPlies
	}
	if c.Openings == nil {
		c.Openings = builtinOpenings()
	}
	return c
}

type gameInfo struct {
	opening        string // FEN
	engineAIsWhite bool
	gameNumber     int
}

type gameResult struct {
	gameInfo gameInfo
	moves    []string
	plies    int
	comment  string
	result   storage.Result
	elapsed  time.Duration
}

// winner reports the color that won, if any.
func (r gameResult) winner() (board.Color, bool) {
	switch r.result {
	case storage.WhiteWins:
		return board.White, true
	case storage.BlackWins:
		return board.Black, true
	}
	return 0, false
}

// Summary is the match score from engine A's point of view.
type Summary struct {
	Games  int
	Wins   int
	Losses int
	Draws  int

	WinningFraction float64
	EloDifference   float64
	LOS             float64 // likelihood of superiority
}
