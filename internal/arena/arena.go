// Package arena plays engine-vs-engine matches. Games run concurrently,
// each worker owning its own pair of engines.
package arena

import (
	"context"
	"log"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"github.com/trilltino/xfchess/internal/engine"
	"golang.org/x/sync/errgroup"
)

// Run plays the match described by cfg and returns engine A's score.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	cfg = cfg.withDefaults()

	log.Println("arena started")
	defer log.Println("arena finished")

	log.Println("NumCPU", runtime.NumCPU(),
		"GOMAXPROCS", runtime.GOMAXPROCS(0),
		"concurrency", cfg.Concurrency)

	g, ctx := errgroup.WithContext(ctx)

	gameInfos := make(chan gameInfo)
	gameResults := make(chan gameResult)

	g.Go(func() error {
		defer close(gameInfos)
		return loadOpenings(ctx, cfg.Openings, cfg.Games, gameInfos)
	})

	var summary Summary
	g.Go(func() error {
		var err error
		summary, err = showResults(ctx, cfg, gameResults)
		return err
	})

	wg := &sync.WaitGroup{}
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, cfg, gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	err := g.Wait()
	return summary, err
}

func playGames(
	ctx context.Context,
	cfg Config,
	gameInfos <-chan gameInfo,
	gameResults chan<- gameResult,
) error {
	engineA, err := engine.NewEngine(cfg.EngineA)
	if err != nil {
		return errors.Wrap(err, "engine A")
	}
	engineB, err := engine.NewEngine(cfg.EngineB)
	if err != nil {
		return errors.Wrap(err, "engine B")
	}

	for info := range gameInfos {
		res, err := playGame(ctx, engineA, engineB, cfg, info)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}
