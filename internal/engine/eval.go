// Package engine implements static evaluation, the transposition table,
// the explicit-stack alpha-beta search and the game facade around them.
package engine

import (
	"github.com/trilltino/xfchess/internal/board"
)

// MobilityWeight scales the difference in pseudo-legal move counts.
const MobilityWeight = 5

// Endgame thresholds: no queens left, or at most this many non-king pieces.
const endgameMaxPieces = 6

// Piece-Square Tables (PST) for positional evaluation.
// Laid out with rank 8 on the first row; White looks squares up mirrored.

// Pawn PST - encourages central control and advancement
var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

// Knight PST - encourages central positioning
var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

// Rook PST - seventh rank and central files
var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

// Queen PST - slight central preference, small bonus for staying home
// early so the queen is not developed before the minor pieces.
var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, 5, 5, -10, -10, -20,
}

// King PST (middlegame) - stay behind the pawn shield
var kingMidgamePST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

// King PST (endgame) - king should be active
var kingEndgamePST = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

// psts is indexed by board.Kind; the king entry is the middlegame table.
var psts = [...]*[64]int{
	nil, &pawnPST, &knightPST, &bishopPST, &rookPST, &queenPST, &kingMidgamePST,
}

// Evaluate returns the static evaluation of b from White's perspective:
// material, piece-square bonuses and mobility. Callers negate it for Black.
func Evaluate(b *board.Board, t *board.MoveTables) int {
	endgame := IsEndgame(b)
	score := 0
	for sq := board.Square(0); sq < 64; sq++ {
		p := b[sq]
		if p == board.Empty {
			continue
		}
		k := p.Kind()
		idx := sq
		if p.Color() == board.White {
			idx = sq.Mirror()
		}
		table := psts[k]
		if k == board.King && endgame {
			table = &kingEndgamePST
		}
		score += (k.Value() + table[idx]) * int(p.Color())
	}
	mobility := board.CountPseudoLegal(b, t, board.White) - board.CountPseudoLegal(b, t, board.Black)
	return score + MobilityWeight*mobility
}

// Material returns the material balance from White's perspective.
func Material(b *board.Board) int {
	score := 0
	for _, p := range b {
		score += p.Value() * int(p.Color())
	}
	return score
}

// IsEndgame reports whether the king should switch to its endgame table.
func IsEndgame(b *board.Board) bool {
	queens, pieces := 0, 0
	for _, p := range b {
		switch p.Kind() {
		case board.NoKind, board.King:
		case board.Queen:
			queens++
			pieces++
		default:
			pieces++
		}
	}
	return queens == 0 || pieces <= endgameMaxPieces
}
