package arena

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
	"github.com/trilltino/xfchess/internal/board"
	"github.com/trilltino/xfchess/internal/engine"
	"github.com/trilltino/xfchess/internal/storage"
)

var errBadMove = errors.New("engine returned an illegal move")

func playGame(
	ctx context.Context,
	engineA, engineB *engine.Engine,
	cfg Config,
	info gameInfo,
) (gameResult, error) {
	start := time.Now()

	engineA.Reset()
	engineB.Reset()
	engineA.ClearCache()
	engineB.ClearCache()

	pos, side, err := board.ParseFEN(info.opening)
	if err != nil {
		return gameResult{}, err
	}
	tables := engineA.Tables()
	// Both engines follow the game move by move so their ply counters
	// drive cache replacement.
	for _, eng := range []*engine.Engine{engineA, engineB} {
		eng.SetBoard(pos)
	}

	res := gameResult{gameInfo: info}
	finish := func(result storage.Result, comment string) (gameResult, error) {
		res.result = result
		res.comment = comment
		res.elapsed = time.Since(start)
		return res, nil
	}

	keys := make(map[engine.PositionKey]int)
	for {
		if !board.HasLegalMove(&pos, tables, side) {
			if board.IsInCheck(&pos, tables, side) {
				return finish(storage.WinFor(side.Other()), "checkmate")
			}
			return finish(storage.Draw, "stalemate")
		}
		if isLowMaterial(&pos) {
			return finish(storage.Draw, "low material")
		}
		key := engine.PositionHash(&pos).WithSide(side)
		keys[key]++
		if keys[key] == 3 {
			return finish(storage.Draw, "3 fold repetition")
		}
		if res.plies >= cfg.MaxPlies {
			return finish(storage.Draw, "max plies")
		}
		if err := ctx.Err(); err != nil {
			return gameResult{}, err
		}

		eng := engineB
		if (side == board.White) == info.engineAIsWhite {
			eng = engineA
		}
		reply, err := eng.Reply(ctx, side, cfg.MoveTime)
		if err != nil && !errors.Is(err, engine.ErrSearchInvariant) {
			return gameResult{}, errors.Wrapf(err, "game %d ply %d", info.gameNumber, res.plies)
		}
		if err != nil {
			log.Printf("game %d: %+v", info.gameNumber, err)
		}

		m := reply.Move()
		if !board.IsLegalMove(&pos, tables, m.From, m.To, side) {
			return gameResult{}, errors.Wrapf(errBadMove, "game %d: %s in %s", info.gameNumber, m, pos.FEN(side))
		}
		res.moves = append(res.moves, board.UCI(&pos, m))
		board.MakeMove(&pos, m)
		engineA.DoMove(m.From, m.To, true)
		engineB.DoMove(m.From, m.To, true)
		side = side.Other()
		res.plies++
	}
}

// isLowMaterial reports a position where neither side can mate: no pawns,
// rooks or queens and at most one minor piece on the board.
func isLowMaterial(b *board.Board) bool {
	minors := 0
	for _, c := range []board.Color{board.White, board.Black} {
		if b.Count(board.Pawn, c)+b.Count(board.Rook, c)+b.Count(board.Queen, c) > 0 {
			return false
		}
		minors += b.Count(board.Knight, c) + b.Count(board.Bishop, c)
	}
	return minors <= 1
}
