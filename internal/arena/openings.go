package arena

import (
	"context"
	_ "embed"
	"strings"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

//go:embed openings.txt
var openingsTxt string

func builtinOpenings() []string {
	var result []string
	for _, line := range strings.Split(openingsTxt, "\n") {
		line = strings.TrimSpace(line)
		if !(line == "" || strings.HasPrefix(line, "//")) {
			result = append(result, line)
		}
	}
	return result
}

// parseOpening plays a SAN move sequence from the standard position and
// returns the resulting FEN.
func parseOpening(opening string) (string, error) {
	game := chess.NewGame()
	for _, tok := range strings.Fields(opening) {
		if strings.HasSuffix(tok, ".") {
			continue
		}
		if err := game.MoveStr(tok); err != nil {
			return "", errors.Wrapf(err, "opening %q", opening)
		}
	}
	return game.Position().String(), nil
}

// loadOpenings sends every opening twice, once with each engine as White.
func loadOpenings(ctx context.Context, openings []string, limit int, gameInfos chan<- gameInfo) error {
	number := 0
	for _, opening := range openings {
		fen, err := parseOpening(opening)
		if err != nil {
			return err
		}
		for _, aIsWhite := range []bool{true, false} {
			if limit > 0 && number >= limit {
				return nil
			}
			number++
			select {
			case <-ctx.Done():
				return ctx.Err()
			case gameInfos <- gameInfo{opening: fen, engineAIsWhite: aIsWhite, gameNumber: number}:
			}
		}
	}
	return nil
}
