package engine

import (
	"github.com/trilltino/xfchess/internal/board"
)

// Move ordering priorities
const (
	TTMoveScore    = 30000 // TT move is searched first
	CaptureBase    = 1000  // Captures before quiet moves
	PromotionBonus = 900
	centerWeight   = 5
)

// mvvLva scores a capture as victim value ×10 minus attacker value, in
// pawn units. Knights and bishops are worth the same and tie.
// Higher score = search first.
func mvvLva(victim, attacker board.Kind) int {
	return (victim.Value()*10 - attacker.Value()) / board.PawnValue
}

// centerDistance is the Chebyshev distance from sq to the nearest of the
// four central squares.
func centerDistance(sq board.Square) int {
	f, r := sq.File(), sq.Rank()
	return max(3-f, f-4, 3-r, r-4, 0)
}

// centralityBonus rewards destinations close to the centre.
func centralityBonus(sq board.Square) int {
	return (8 - centerDistance(sq)) * centerWeight
}

// scoreMoves fills in Score for every move: TT move, then captures by
// MVV-LVA, then quiet moves by centrality.
func scoreMoves(b *board.Board, moves []board.Move, ttMove board.Move) {
	for i := range moves {
		m := &moves[i]
		if !ttMove.IsNone() && m.Same(ttMove) {
			m.Score = TTMoveScore
			continue
		}
		s := centralityBonus(m.To)
		mover := b[m.From]
		if victim := b[m.To]; victim != board.Empty {
			s += CaptureBase + mvvLva(victim.Kind(), mover.Kind())
		}
		if mover.Kind() == board.Pawn && m.To.Rank() == board.PromotionRank(mover.Color()) {
			s += PromotionBonus
		}
		m.Score = int16(s)
	}
}

// sortMoves orders moves by descending score. Insertion sort keeps equal
// scores in generation order and needs no allocation.
func sortMoves(moves []board.Move) {
	for i := 1; i < len(moves); i++ {
		m := moves[i]
		j := i - 1
		for j >= 0 && moves[j].Score < m.Score {
			moves[j+1] = moves[j]
			j--
		}
		moves[j+1] = m
	}
}

// orderMoves scores and sorts moves in place.
func orderMoves(b *board.Board, moves []board.Move, ttMove board.Move) {
	scoreMoves(b, moves, ttMove)
	sortMoves(moves)
}
