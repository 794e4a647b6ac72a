package board

import (
	"testing"

	"github.com/matryer/is"
)

func TestRookOnFileGivesCheck(t *testing.T) {
	is := is.New(t)
	tables := NewMoveTables()

	var b Board
	b[E1] = NewPiece(King, White)
	b[A8] = NewPiece(King, Black)
	b[A1] = NewPiece(Rook, White)
	is.True(IsInCheck(&b, tables, Black)) // rook and king share the a-file

	for _, blocker := range []Piece{NewPiece(Pawn, White), NewPiece(Knight, Black), NewPiece(Queen, Black)} {
		b[A4] = blocker
		is.True(!IsInCheck(&b, tables, Black))
	}
	b[A4] = Empty
	is.True(IsInCheck(&b, tables, Black))
}

func TestSquareAttackedByKind(t *testing.T) {
	tables := NewMoveTables()

	tests := []struct {
		name   string
		fen    string
		target Square
		by     Color
		want   bool
	}{
		{"white pawn diagonal", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", D3, White, true},
		{"white pawn forward", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", E3, White, false},
		{"pawn no wrap", "4k3/8/8/8/8/8/7P/4K3 w - - 0 1", A4, White, false},
		{"black pawn diagonal", "4k3/4p3/8/8/8/8/8/4K3 w - - 0 1", F6, Black, true},
		{"black pawn backwards", "k7/4p3/8/8/8/8/8/4K3 w - - 0 1", F8, Black, false},
		{"knight", "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1", E6, White, true},
		{"knight no wrap", "4k3/8/8/8/7N/8/8/4K3 w - - 0 1", A3, White, false},
		{"bishop", "4k3/8/8/8/8/8/1B6/4K3 w - - 0 1", G7, White, true},
		{"bishop blocked", "4k3/8/8/4p3/8/8/1B6/4K3 w - - 0 1", G7, White, false},
		{"queen straight", "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1", A7, White, true},
		{"king adjacent", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", D2, White, true},
		{"king far", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", E3, White, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, _, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			if got := IsSquareAttacked(&b, tables, tc.target, tc.by); got != tc.want {
				t.Errorf("IsSquareAttacked(%s, %s) = %v, want %v", tc.target, tc.by, got, tc.want)
			}
		})
	}
}

func TestBackRankMateHasNoLegalMoves(t *testing.T) {
	tables := NewMoveTables()
	b, side, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}
	t.Log(b.String())

	if !IsInCheck(&b, tables, side) {
		t.Fatal("expected black to be in check")
	}
	if HasLegalMove(&b, tables, side) {
		t.Error("expected no legal moves")
	}

	// The king can take an adjacent unprotected rook.
	b, side, err = ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !HasLegalMove(&b, tables, side) {
		t.Error("expected Kxg8 to be available")
	}
}
