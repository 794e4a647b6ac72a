package storage

import (
	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

// PGN replays rec with notnil/chess and renders it as PGN text. Games
// that do not start from the standard position carry their FEN.
func (rec *GameRecord) PGN() (string, error) {
	var opts []func(*chess.Game)
	if rec.StartFEN != "" {
		fen, err := chess.FEN(rec.StartFEN)
		if err != nil {
			return "", errors.Wrap(err, "start position")
		}
		opts = append(opts, fen)
	}
	game := chess.NewGame(opts...)

	game.AddTagPair("Event", "xfchess")
	game.AddTagPair("White", rec.White)
	game.AddTagPair("Black", rec.Black)
	game.AddTagPair("Date", rec.PlayedAt.Format("2006.01.02"))
	game.AddTagPair("Result", string(rec.Result))
	if rec.Termination != "" {
		game.AddTagPair("Termination", rec.Termination)
	}
	if rec.StartFEN != "" {
		game.AddTagPair("FEN", rec.StartFEN)
	}

	notation := chess.UCINotation{}
	for i, s := range rec.Moves {
		m, err := notation.Decode(game.Position(), s)
		if err != nil {
			return "", errors.Wrapf(err, "move %d %q", i+1, s)
		}
		if err := game.Move(m); err != nil {
			return "", errors.Wrapf(err, "move %d %q", i+1, s)
		}
	}
	return game.String(), nil
}
