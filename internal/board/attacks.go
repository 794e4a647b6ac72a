package board

// IsSquareAttacked reports whether any piece of color by attacks target.
// It scans the whole board and tests each attacker with an O(1) rule plus,
// for sliders, a walk over the squares in between.
func IsSquareAttacked(b *Board, t *MoveTables, target Square, by Color) bool {
	tf, tr := target.File(), target.Rank()
	for sq := Square(0); sq < 64; sq++ {
		p := b[sq]
		if !p.Is(by) {
			continue
		}
		df, dr := tf-sq.File(), tr-sq.Rank()
		switch p.Kind() {
		case Pawn:
			if abs(df) != 1 {
				continue
			}
			for _, m := range t.Pawn[by.index()][sq] {
				if m.To == target {
					return true
				}
			}
		case Knight:
			adf, adr := abs(df), abs(dr)
			if (adf == 1 && adr == 2) || (adf == 2 && adr == 1) {
				return true
			}
		case Bishop:
			if diagonal(df, dr) && clearPath(b, sq, target) {
				return true
			}
		case Rook:
			if straight(df, dr) && clearPath(b, sq, target) {
				return true
			}
		case Queen:
			if (diagonal(df, dr) || straight(df, dr)) && clearPath(b, sq, target) {
				return true
			}
		case King:
			if max(abs(df), abs(dr)) == 1 {
				return true
			}
		}
	}
	return false
}

// IsInCheck reports whether c's king is attacked. A side without a king is
// never in check.
func IsInCheck(b *Board, t *MoveTables, c Color) bool {
	k := b.KingSquare(c)
	if k == NoSquare {
		return false
	}
	return IsSquareAttacked(b, t, k, c.Other())
}

func diagonal(df, dr int) bool {
	return df != 0 && abs(df) == abs(dr)
}

func straight(df, dr int) bool {
	return (df == 0) != (dr == 0)
}

// clearPath reports whether every square strictly between from and to is
// empty. The squares must share a rank, file or diagonal.
func clearPath(b *Board, from, to Square) bool {
	step := Square(sign(to.Rank()-from.Rank())*8 + sign(to.File()-from.File()))
	for sq := from + step; sq != to; sq += step {
		if b[sq] != Empty {
			return false
		}
	}
	return true
}
