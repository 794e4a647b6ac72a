package board

// Color is the side a piece belongs to. Its value is also the sign a piece
// of that color carries on the board.
type Color int8

const (
	White Color = 1
	Black Color = -1
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return -c
}

// index maps White to 0 and Black to 1 for per-color tables.
func (c Color) index() int {
	if c == White {
		return 0
	}
	return 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// ParseColor accepts "w"/"white" and "b"/"black".
func ParseColor(s string) (Color, bool) {
	switch s {
	case "w", "white", "White":
		return White, true
	case "b", "black", "Black":
		return Black, true
	}
	return 0, false
}

// Kind is the unsigned piece type stored in the magnitude of a Piece.
type Kind int8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece kind name.
func (k Kind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Material values in centipawns.
const (
	PawnValue   = 100
	KnightValue = 300
	BishopValue = 300
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 18000
)

// KindValue is indexed by Kind.
var KindValue = [7]int{0, PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue}

// Value returns the material value of the kind.
func (k Kind) Value() int {
	if k < NoKind || k > King {
		return 0
	}
	return KindValue[k]
}

// Piece is a signed square occupant: the sign is the color and the
// magnitude is the Kind. Zero is an empty square.
type Piece int8

// Empty marks an unoccupied square.
const Empty Piece = 0

// NewPiece creates a Piece of kind k for color c.
func NewPiece(k Kind, c Color) Piece {
	return Piece(int8(k) * int8(c))
}

// Kind returns the magnitude of the piece.
func (p Piece) Kind() Kind {
	if p < 0 {
		return Kind(-p)
	}
	return Kind(p)
}

// Color returns the owner of the piece, or 0 for an empty square.
func (p Piece) Color() Color {
	switch {
	case p > 0:
		return White
	case p < 0:
		return Black
	}
	return 0
}

// Is reports whether the piece is occupied by color c.
func (p Piece) Is(c Color) bool {
	return int8(p)*int8(c) > 0
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	return p.Kind().Value()
}

const pieceChars = ".PNBRQK"

// Char returns the FEN character for the piece, '.' when empty.
func (p Piece) Char() byte {
	c := pieceChars[p.Kind()]
	if p < 0 {
		c += 'a' - 'A'
	}
	return c
}

// String returns the FEN character for the piece.
func (p Piece) String() string {
	return string(p.Char())
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) (Piece, bool) {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}
	for k := Pawn; k <= King; k++ {
		if pieceChars[k] == c {
			return NewPiece(k, color), true
		}
	}
	return Empty, false
}
