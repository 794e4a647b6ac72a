package board

// Direction is a file/rank step.
type Direction struct {
	DF, DR int
}

// Step directions. North points towards rank 8.
var (
	North     = Direction{0, 1}
	South     = Direction{0, -1}
	East      = Direction{1, 0}
	West      = Direction{-1, 0}
	NorthEast = Direction{1, 1}
	NorthWest = Direction{-1, 1}
	SouthEast = Direction{1, -1}
	SouthWest = Direction{-1, -1}

	RookDirections   = [4]Direction{North, South, East, West}
	BishopDirections = [4]Direction{NorthEast, NorthWest, SouthEast, SouthWest}
	KnightOffsets    = [8]Direction{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	KingOffsets      = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
)

// MoveTables holds occupancy-independent destinations for every square.
// Rook and Bishop lists are concatenated rays, ordered outward from the
// origin, and every entry's NextDir is the index of the first entry of the
// next ray so a blocked ray can be skipped in one step.
//
// Tables are immutable once built and may be shared across goroutines.
type MoveTables struct {
	Rook   [64][]Move
	Bishop [64][]Move
	Knight [64][]Move
	King   [64][]Move
	// Pawn is indexed by color (White, then Black): single push, double
	// push from the start rank, then the diagonal captures.
	Pawn [2][64][]Move
}

// NewMoveTables computes all move tables.
func NewMoveTables() *MoveTables {
	t := &MoveTables{}
	for sq := Square(0); sq < 64; sq++ {
		t.Rook[sq] = rays(sq, RookDirections[:])
		t.Bishop[sq] = rays(sq, BishopDirections[:])
		t.Knight[sq] = steps(sq, KnightOffsets[:])
		t.King[sq] = steps(sq, KingOffsets[:])
		t.Pawn[White.index()][sq] = pawnMoves(sq, White)
		t.Pawn[Black.index()][sq] = pawnMoves(sq, Black)
	}
	return t
}

// PawnMoves returns the pawn table of color c for sq.
func (t *MoveTables) PawnMoves(c Color, sq Square) []Move {
	return t.Pawn[c.index()][sq]
}

func rays(sq Square, dirs []Direction) []Move {
	var out []Move
	for _, d := range dirs {
		start := len(out)
		f, r := sq.File()+d.DF, sq.Rank()+d.DR
		for onBoard(f, r) {
			out = append(out, NewMove(sq, NewSquare(f, r)))
			f += d.DF
			r += d.DR
		}
		for i := start; i < len(out); i++ {
			out[i].NextDir = uint8(len(out))
		}
	}
	return out
}

func steps(sq Square, offsets []Direction) []Move {
	var out []Move
	for _, d := range offsets {
		f, r := sq.File()+d.DF, sq.Rank()+d.DR
		if onBoard(f, r) {
			out = append(out, NewMove(sq, NewSquare(f, r)))
		}
	}
	return out
}

func pawnMoves(sq Square, c Color) []Move {
	var out []Move
	forward := int(c)
	f, r := sq.File(), sq.Rank()
	if !onBoard(f, r+forward) {
		return nil
	}
	out = append(out, NewMove(sq, NewSquare(f, r+forward)))
	if r == pawnStartRank(c) {
		out = append(out, NewMove(sq, NewSquare(f, r+2*forward)))
	}
	for _, df := range [2]int{-1, 1} {
		if onBoard(f+df, r+forward) {
			out = append(out, NewMove(sq, NewSquare(f+df, r+forward)))
		}
	}
	return out
}

func pawnStartRank(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

// PromotionRank returns the last rank for pawns of color c.
func PromotionRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}
