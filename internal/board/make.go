package board

// Undo is what UnmakeMove needs to restore a board after MakeMove.
type Undo struct {
	Captured Piece
	Moved    Piece
}

// MakeMove applies m without any legality check. A pawn reaching its last
// rank becomes a queen.
func MakeMove(b *Board, m Move) Undo {
	u := Undo{Captured: b[m.To], Moved: b[m.From]}
	p := u.Moved
	if p.Kind() == Pawn && m.To.Rank() == PromotionRank(p.Color()) {
		p = NewPiece(Queen, p.Color())
	}
	b[m.To] = p
	b[m.From] = Empty
	return u
}

// UnmakeMove reverts a move made with MakeMove.
func UnmakeMove(b *Board, m Move, u Undo) {
	b[m.From] = u.Moved
	b[m.To] = u.Captured
}

// IsCapture reports whether m takes a piece on b.
func IsCapture(b *Board, m Move) bool {
	return b[m.To] != Empty
}
