package board

import (
	"errors"
	"strings"
)

// Errors returned by the parsing helpers.
var (
	ErrInvalidSquare = errors.New("invalid square")
	ErrInvalidFEN    = errors.New("invalid FEN")
	ErrInvalidMove   = errors.New("invalid move")
)

// Board is the 64-square array of signed pieces, indexed by Square.
type Board [64]Piece

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StartBoard returns the standard starting position with White on ranks 1-2.
func StartBoard() Board {
	var b Board
	for f := 0; f < 8; f++ {
		b[NewSquare(f, 0)] = NewPiece(backRank[f], White)
		b[NewSquare(f, 1)] = NewPiece(Pawn, White)
		b[NewSquare(f, 6)] = NewPiece(Pawn, Black)
		b[NewSquare(f, 7)] = NewPiece(backRank[f], Black)
	}
	return b
}

// PieceAt returns the occupant of sq, Empty for off-board squares.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return Empty
	}
	return b[sq]
}

// KingSquare returns the square of c's king or NoSquare.
func (b *Board) KingSquare(c Color) Square {
	king := NewPiece(King, c)
	for sq := Square(0); sq < 64; sq++ {
		if b[sq] == king {
			return sq
		}
	}
	return NoSquare
}

// Count returns the number of pieces of kind k owned by c.
func (b *Board) Count(k Kind, c Color) int {
	p := NewPiece(k, c)
	n := 0
	for _, q := range b {
		if q == p {
			n++
		}
	}
	return n
}

// String renders the board with rank 8 on top.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		sb.WriteByte(byte('1' + r))
		for f := 0; f < 8; f++ {
			sb.WriteByte(' ')
			sb.WriteByte(b[NewSquare(f, r)].Char())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
