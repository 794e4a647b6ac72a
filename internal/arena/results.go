package arena

import (
	"context"
	"log"
	"math"

	"github.com/pkg/errors"
	"github.com/trilltino/xfchess/internal/board"
	"github.com/trilltino/xfchess/internal/storage"
)

func showResults(
	ctx context.Context,
	cfg Config,
	gameResults <-chan gameResult,
) (Summary, error) {
	var s Summary
	for res := range gameResults {
		s.Games++
		log.Printf("Finished game %v: %v {%v} %d plies in %v\n",
			res.gameInfo.gameNumber, res.result, res.comment, res.plies, res.elapsed)

		winner, decisive := res.winner()
		switch {
		case !decisive:
			s.Draws++
		case (winner == board.White) == res.gameInfo.engineAIsWhite:
			s.Wins++
		default:
			s.Losses++
		}
		s.computeStat()
		log.Printf("Score: %v - %v - %v  [%.3f] %v\n",
			s.Wins, s.Losses, s.Draws, s.WinningFraction, s.Games)
		log.Printf("Elo difference: %.1f, LOS: %.1f %%\n",
			s.EloDifference, s.LOS*100)

		if cfg.Store != nil {
			if err := cfg.Store.SaveGame(record(res)); err != nil {
				return s, errors.Wrap(err, "save game")
			}
		}
		if err := ctx.Err(); err != nil {
			return s, err
		}
	}
	return s, nil
}

func record(res gameResult) *storage.GameRecord {
	white, black := "engine A", "engine B"
	if !res.gameInfo.engineAIsWhite {
		white, black = black, white
	}
	return &storage.GameRecord{
		White:       white,
		Black:       black,
		StartFEN:    res.gameInfo.opening,
		Moves:       res.moves,
		Result:      res.result,
		Termination: res.comment,
		Duration:    res.elapsed,
	}
}

// https://www.chessprogramming.org/Match_Statistics
func (s *Summary) computeStat() {
	games := s.Wins + s.Losses + s.Draws
	if games == 0 {
		return
	}
	s.WinningFraction = (float64(s.Wins) + 0.5*float64(s.Draws)) / float64(games)
	s.EloDifference = -math.Log(1/s.WinningFraction-1) * 400 / math.Ln10
	if decisive := s.Wins + s.Losses; decisive > 0 {
		s.LOS = 0.5 + 0.5*math.Erf(float64(s.Wins-s.Losses)/math.Sqrt(2*float64(decisive)))
	} else {
		s.LOS = 0.5
	}
}
