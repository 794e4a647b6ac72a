package board

// GeneratePseudoLegal appends every pseudo-legal move for color c to buf.
// The mover's own king safety is not checked.
func GeneratePseudoLegal(b *Board, t *MoveTables, c Color, buf []Move) []Move {
	for sq := Square(0); sq < 64; sq++ {
		if b[sq].Is(c) {
			buf = appendPieceMoves(b, t, sq, c, buf, false)
		}
	}
	return buf
}

// GenerateCaptures appends the pseudo-legal moves of c that land on an
// enemy piece.
func GenerateCaptures(b *Board, t *MoveTables, c Color, buf []Move) []Move {
	for sq := Square(0); sq < 64; sq++ {
		if b[sq].Is(c) {
			buf = appendPieceMoves(b, t, sq, c, buf, true)
		}
	}
	return buf
}

// CountPseudoLegal returns the number of pseudo-legal moves of c without
// materializing them.
func CountPseudoLegal(b *Board, t *MoveTables, c Color) int {
	var buf [256]Move
	return len(GeneratePseudoLegal(b, t, c, buf[:0]))
}

// GenerateLegal appends the moves of c that do not leave its king attacked.
func GenerateLegal(b *Board, t *MoveTables, c Color, buf []Move) []Move {
	var scratch [256]Move
	for _, m := range GeneratePseudoLegal(b, t, c, scratch[:0]) {
		if KeepsKingSafe(b, t, m, c) {
			buf = append(buf, m)
		}
	}
	return buf
}

// HasLegalMove reports whether c has at least one legal move.
func HasLegalMove(b *Board, t *MoveTables, c Color) bool {
	_, ok := FirstLegalMove(b, t, c)
	return ok
}

// FirstLegalMove scans the board in square order and returns the first
// move of c that passes the king-safety test.
func FirstLegalMove(b *Board, t *MoveTables, c Color) (Move, bool) {
	var buf [32]Move
	for sq := Square(0); sq < 64; sq++ {
		if !b[sq].Is(c) {
			continue
		}
		for _, m := range appendPieceMoves(b, t, sq, c, buf[:0], false) {
			if KeepsKingSafe(b, t, m, c) {
				return m, true
			}
		}
	}
	return NoMove, false
}

// IsLegalMove reports whether moving the piece on src to dst is a
// pseudo-legal move of c that leaves c's king safe. The board is modified
// transiently and restored before returning.
func IsLegalMove(b *Board, t *MoveTables, src, dst Square, c Color) bool {
	if !src.IsValid() || !dst.IsValid() || !b[src].Is(c) {
		return false
	}
	var buf [32]Move
	for _, m := range appendPieceMoves(b, t, src, c, buf[:0], false) {
		if m.To == dst {
			return KeepsKingSafe(b, t, m, c)
		}
	}
	return false
}

// KeepsKingSafe makes m, tests whether c is in check, and unmakes it.
func KeepsKingSafe(b *Board, t *MoveTables, m Move, c Color) bool {
	u := MakeMove(b, m)
	safe := !IsInCheck(b, t, c)
	UnmakeMove(b, m, u)
	return safe
}

func appendPieceMoves(b *Board, t *MoveTables, sq Square, c Color, buf []Move, capturesOnly bool) []Move {
	switch b[sq].Kind() {
	case Pawn:
		return appendPawnMoves(b, t.Pawn[c.index()][sq], c, buf, capturesOnly)
	case Knight:
		return appendSteps(b, t.Knight[sq], c, buf, capturesOnly)
	case Bishop:
		return appendSlides(b, t.Bishop[sq], c, buf, capturesOnly)
	case Rook:
		return appendSlides(b, t.Rook[sq], c, buf, capturesOnly)
	case Queen:
		buf = appendSlides(b, t.Rook[sq], c, buf, capturesOnly)
		return appendSlides(b, t.Bishop[sq], c, buf, capturesOnly)
	case King:
		return appendSteps(b, t.King[sq], c, buf, capturesOnly)
	}
	return buf
}

func appendSteps(b *Board, table []Move, c Color, buf []Move, capturesOnly bool) []Move {
	for _, m := range table {
		target := b[m.To]
		if target.Is(c) || (capturesOnly && target == Empty) {
			continue
		}
		buf = append(buf, m)
	}
	return buf
}

func appendSlides(b *Board, table []Move, c Color, buf []Move, capturesOnly bool) []Move {
	for i := 0; i < len(table); {
		m := table[i]
		target := b[m.To]
		if target == Empty {
			if !capturesOnly {
				buf = append(buf, m)
			}
			i++
			continue
		}
		if !target.Is(c) {
			buf = append(buf, m)
		}
		i = int(m.NextDir)
	}
	return buf
}

func appendPawnMoves(b *Board, table []Move, c Color, buf []Move, capturesOnly bool) []Move {
	for _, m := range table {
		target := b[m.To]
		if m.To.File() != m.From.File() {
			if target != Empty && !target.Is(c) {
				buf = append(buf, m)
			}
			continue
		}
		if capturesOnly || target != Empty {
			continue
		}
		if abs(m.To-m.From) == 16 && b[(m.To+m.From)/2] != Empty {
			continue
		}
		buf = append(buf, m)
	}
	return buf
}
