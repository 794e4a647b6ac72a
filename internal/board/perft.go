package board

// Perft counts leaf nodes of the legal move tree of the given depth, with
// side to move c. It is the standard check for move generation.
func Perft(b *Board, t *MoveTables, c Color, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var buf [256]Move
	moves := GenerateLegal(b, t, c, buf[:0])
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		u := MakeMove(b, m)
		nodes += Perft(b, t, c.Other(), depth-1)
		UnmakeMove(b, m, u)
	}
	return nodes
}
