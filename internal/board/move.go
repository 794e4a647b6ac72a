package board

import "fmt"

// Move is a from/to pair plus two scratch fields used by the engine:
// Score holds the ordering score and NextDir, for entries of a sliding
// ray table, the index where the following ray starts.
type Move struct {
	From    Square
	To      Square
	Score   int16
	NextDir uint8
}

// NoMove is the zero Move. A real move never has From == To.
var NoMove Move

// NewMove creates a move between two squares.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// IsNone reports whether m is NoMove.
func (m Move) IsNone() bool {
	return m.From == m.To
}

// Same compares only the squares of two moves.
func (m Move) Same(o Move) bool {
	return m.From == o.From && m.To == o.To
}

// String returns the move in coordinate notation (e.g., "e2e4").
func (m Move) String() string {
	if m.IsNone() {
		return "0000"
	}
	return m.From.String() + m.To.String()
}

// ParseMove parses coordinate notation. A trailing promotion letter is
// accepted and ignored: pawns always promote to a queen.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	if from == to {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	return NewMove(from, to), nil
}

// UCI formats m in coordinate notation with the promotion suffix other
// tools expect when a pawn on b reaches its last rank.
func UCI(b *Board, m Move) string {
	s := m.String()
	if p := b.PieceAt(m.From); p.Kind() == Pawn && m.To.Rank() == PromotionRank(p.Color()) {
		s += "q"
	}
	return s
}
