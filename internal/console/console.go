// Package console plays games against the engine over a line-oriented
// text interface.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/trilltino/xfchess/internal/board"
	"github.com/trilltino/xfchess/internal/engine"
	"github.com/trilltino/xfchess/internal/session"
	"github.com/trilltino/xfchess/internal/storage"
)

const engineName = "xfchess"

// Config configures a console.
type Config struct {
	Engine engine.Options

	// Store, when set, supplies preferences and receives finished games.
	Store *storage.Storage

	// AutoReply makes the engine answer every human move.
	AutoReply bool
}

// Console is the interactive front end. It is driven by Run and is not
// safe for concurrent use.
type Console struct {
	out   io.Writer
	store *storage.Storage

	manager *session.Manager
	game    *session.Session
	started time.Time

	prefs      *storage.UserPreferences
	human      board.Color
	difficulty engine.Difficulty
	think      time.Duration // overrides the difficulty when set
	autoReply  bool
	recorded   bool
}

// New creates a console writing to out.
func New(out io.Writer, cfg Config) (*Console, error) {
	c := &Console{
		out:       out,
		store:     cfg.Store,
		autoReply: cfg.AutoReply,
		prefs:     storage.DefaultPreferences(),
	}
	if c.store != nil {
		prefs, err := c.store.LoadPreferences()
		if err != nil {
			return nil, errors.Wrap(err, "load preferences")
		}
		c.prefs = prefs
	}
	c.difficulty = c.prefs.Difficulty
	c.human = board.White
	if col, ok := board.ParseColor(c.prefs.PlayerColor); ok {
		c.human = col
	}

	opts := cfg.Engine
	if opts.HashMB == 0 {
		opts.HashMB = c.prefs.HashMB
	}
	opts.OnInfo = c.sendInfo
	c.manager = session.NewManager(opts)

	if err := c.newGame(""); err != nil {
		return nil, err
	}
	return c, nil
}

// Run reads commands from in until it is exhausted or "quit" is read.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		var err error
		switch cmd {
		case "quit", "exit":
			return nil
		case "help":
			c.handleHelp()
		case "new":
			err = c.newGame(strings.Join(args, " "))
			if err == nil {
				c.printf("new game, you play %s\n", c.human)
				err = c.maybeReply(ctx)
			}
		case "move", "m":
			if len(args) != 1 {
				err = errors.New("usage: move <from><to>")
				break
			}
			err = c.handleMove(ctx, args[0])
		case "go":
			err = c.handleGo(ctx, args)
		case "d", "board":
			b := c.game.Board()
			c.printf("%s", b.String())
			c.printf("fen %s\n", c.game.Snapshot().FEN)
		case "fen":
			c.printf("%s\n", c.game.Snapshot().FEN)
		case "state":
			snap := c.game.Snapshot()
			c.printf("%s to move, %s\n", snap.SideToMove, snap.State)
		case "level":
			err = c.handleLevel(args)
		case "color":
			err = c.handleColor(ctx, args)
		case "time":
			err = c.handleTime(args)
		case "history":
			c.printf("%s\n", strings.Join(c.game.Snapshot().Moves, " "))
		case "pgn":
			err = c.handlePGN()
		case "perft":
			err = c.handlePerft(args)
		case "stats":
			c.handleStats()
		case "games":
			err = c.handleGames()
		default:
			// A bare coordinate move is accepted as a shorthand.
			if _, perr := board.ParseMove(cmd); perr == nil {
				err = c.handleMove(ctx, cmd)
			} else {
				err = errors.Errorf("unknown command %q, try help", cmd)
			}
		}
		if err != nil {
			c.printf("error: %v\n", err)
		}
	}
	return scanner.Err()
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) newGame(fen string) error {
	if c.game != nil {
		if err := c.manager.Delete(c.game.ID); err != nil {
			log.Printf("drop session: %v", err)
		}
	}
	g, err := c.manager.NewFromFEN(fen)
	if err != nil {
		return err
	}
	c.game = g
	c.started = time.Now()
	c.recorded = false
	return nil
}

func (c *Console) handleHelp() {
	c.printf(`commands:
  new [fen]          start a new game
  move e2e4          play a move (a bare e2e4 works too)
  go [ms]            let the engine move for the side to move
  d, board           show the board
  fen                show the position as FEN
  state              show whose move it is and the game state
  level easy|medium|hard
  color white|black  choose your side
  time <ms>          fixed engine think time, 0 follows the level
  history            list the moves played
  pgn                print the game as PGN
  perft <depth>      count move paths
  stats              search statistics
  games              list saved games
  quit
`)
}

func (c *Console) handleMove(ctx context.Context, s string) error {
	if err := c.game.PlayUCI(s); err != nil {
		return err
	}
	if c.finishIfOver() {
		return nil
	}
	if c.autoReply {
		return c.reply(ctx, 0)
	}
	return nil
}

func (c *Console) handleGo(ctx context.Context, args []string) error {
	var think time.Duration
	if len(args) > 0 {
		ms, err := strconv.Atoi(args[0])
		if err != nil || ms <= 0 {
			return errors.Errorf("bad think time %q", args[0])
		}
		think = time.Duration(ms) * time.Millisecond
	}
	return c.reply(ctx, think)
}

// maybeReply lets the engine open the game when the human plays Black.
func (c *Console) maybeReply(ctx context.Context) error {
	if c.autoReply && c.game.Snapshot().SideToMove != c.human {
		return c.reply(ctx, 0)
	}
	return nil
}

func (c *Console) reply(ctx context.Context, think time.Duration) error {
	if think <= 0 {
		think = c.thinkTime()
	}
	r, err := c.game.EngineMove(ctx, think)
	if errors.Is(err, engine.ErrGameOver) {
		c.finishIfOver()
		return nil
	}
	if err != nil {
		// The move was still played.
		log.Printf("search: %+v", err)
	}
	c.printf("bestmove %s score %s depth %d nodes %d time %dms\n",
		r.Move(), engine.ScoreToString(r.Score), r.Depth, r.Nodes, r.Elapsed.Milliseconds())
	c.finishIfOver()
	return nil
}

func (c *Console) thinkTime() time.Duration {
	if c.think > 0 {
		return c.think
	}
	return c.difficulty.ThinkTime()
}

func (c *Console) sendInfo(info engine.SearchInfo) {
	c.printf("info depth %d score %s nodes %d time %d hashhit %.0f%% pv %s\n",
		info.Depth, engine.ScoreToString(info.Score), info.Nodes,
		info.Time.Milliseconds(), info.HitRate, info.Move)
}

// finishIfOver announces a finished game and records it once. It reports
// whether the game is over.
func (c *Console) finishIfOver() bool {
	snap := c.game.Snapshot()
	switch snap.State {
	case engine.Checkmate:
		c.printf("checkmate, %s wins\n", snap.SideToMove.Other())
	case engine.Stalemate:
		c.printf("stalemate, draw\n")
	default:
		return false
	}
	if !c.recorded {
		c.recorded = true
		if err := c.recordGame(snap); err != nil {
			log.Printf("record game: %v", err)
		}
	}
	return true
}

func (c *Console) recordGame(snap session.Snapshot) error {
	if c.store == nil {
		return nil
	}
	white, black := c.prefs.Username, engineName
	if c.human == board.Black {
		white, black = black, white
	}
	if err := c.store.SaveGame(c.game.Record(white, black)); err != nil {
		return err
	}
	return c.store.RecordGame(storage.GameResult{
		Won:        snap.State == engine.Checkmate && snap.SideToMove != c.human,
		Draw:       snap.State == engine.Stalemate,
		Difficulty: c.difficulty,
		Duration:   time.Since(c.started),
	})
}

func (c *Console) handleLevel(args []string) error {
	if len(args) != 1 {
		c.printf("level %s, about %d Elo\n", c.difficulty, c.difficulty.EstimatedElo())
		return nil
	}
	d, err := engine.ParseDifficulty(args[0])
	if err != nil {
		return err
	}
	c.difficulty = d
	c.think = 0
	c.prefs.Difficulty = d
	c.printf("level %s\n", d)
	return c.savePrefs()
}

func (c *Console) handleColor(ctx context.Context, args []string) error {
	if len(args) != 1 {
		c.printf("you play %s\n", c.human)
		return nil
	}
	col, ok := board.ParseColor(args[0])
	if !ok {
		return errors.Errorf("bad color %q", args[0])
	}
	c.human = col
	c.prefs.PlayerColor = col.String()
	if err := c.savePrefs(); err != nil {
		return err
	}
	c.printf("you play %s\n", col)
	return c.maybeReply(ctx)
}

func (c *Console) handleTime(args []string) error {
	if len(args) != 1 {
		c.printf("think time %v\n", c.thinkTime())
		return nil
	}
	ms, err := strconv.Atoi(args[0])
	if err != nil || ms < 0 {
		return errors.Errorf("bad think time %q", args[0])
	}
	c.think = time.Duration(ms) * time.Millisecond
	c.printf("think time %v\n", c.thinkTime())
	return nil
}

func (c *Console) handlePGN() error {
	rec := c.game.Record(c.prefs.Username, engineName)
	if c.human == board.Black {
		rec.White, rec.Black = rec.Black, rec.White
	}
	pgn, err := rec.PGN()
	if err != nil {
		return err
	}
	c.printf("%s\n", pgn)
	return nil
}

func (c *Console) handlePerft(args []string) error {
	depth := 3
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 {
			return errors.Errorf("bad depth %q", args[0])
		}
		depth = d
	}
	start := time.Now()
	nodes := c.game.Perft(depth)
	c.printf("perft %d: %d nodes in %v\n", depth, nodes, time.Since(start).Round(time.Millisecond))
	return nil
}

func (c *Console) handleStats() {
	s := c.game.Stats()
	c.printf("searches %d nodes %d qnodes %d cutoffs %d maxply %d depth %d\n",
		s.Searches, s.Nodes, s.QNodes, s.Cutoffs, s.MaxPly, s.LastDepth)
	c.printf("hash %d/%d entries, hit rate %.1f%%\n", s.TTUsed, s.TTCapacity, s.TTHitRate)
	if c.store != nil {
		gs, err := c.store.LoadStats()
		if err == nil {
			c.printf("games %d won %d lost %d drawn %d (%.0f%%)\n",
				gs.GamesPlayed, gs.Wins, gs.Losses, gs.Draws, gs.GetWinRate())
		}
	}
}

func (c *Console) handleGames() error {
	if c.store == nil {
		return errors.New("no storage")
	}
	games, err := c.store.ListGames()
	if err != nil {
		return err
	}
	for _, g := range games {
		id := g.ID
		if len(id) > 8 {
			id = id[:8]
		}
		c.printf("%s %s %s vs %s %s (%d moves, %s)\n",
			id, g.PlayedAt.Format("2006-01-02"), g.White, g.Black, g.Result, len(g.Moves), g.Termination)
	}
	return nil
}

func (c *Console) savePrefs() error {
	if c.store == nil {
		return nil
	}
	return c.store.SavePreferences(c.prefs)
}
