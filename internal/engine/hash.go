package engine

import "github.com/trilltino/xfchess/internal/board"

// PositionKey is a 192-bit position fingerprint. Every occupied square
// contributes a mixed value of (kind, color, square) to each of the three
// lanes; the lanes use different seeds so a collision needs all three to
// collide at once.
type PositionKey [3]uint64

var laneSeeds = [3]uint64{0x9e3779b97f4a7c15, 0xc2b2ae3d27d4eb4f, 0x165667b19e3779f9}

// sideKey is folded into the first lane when Black is to move.
const sideKey = 0xd6e8feb86659fd93

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// PositionHash computes the key of a board from scratch.
func PositionHash(b *board.Board) PositionKey {
	var k PositionKey
	for sq := board.Square(0); sq < 64; sq++ {
		if p := b[sq]; p != board.Empty {
			k.Toggle(p, sq)
		}
	}
	return k
}

// Toggle adds or removes the contribution of p on sq.
func (k *PositionKey) Toggle(p board.Piece, sq board.Square) {
	id := uint64(sq)<<4 | uint64(int(p)+8)
	for i := range k {
		k[i] ^= mix(id ^ laneSeeds[i])
	}
}

// WithSide folds the side to move into the key.
func (k PositionKey) WithSide(c board.Color) PositionKey {
	if c == board.Black {
		k[0] ^= sideKey
	}
	return k
}

// AfterMove returns the key of the position reached by m, given the undo
// record MakeMove produced and the piece now standing on m.To. The side
// fold is flipped as well.
func (k PositionKey) AfterMove(m board.Move, u board.Undo, arrived board.Piece) PositionKey {
	k.Toggle(u.Moved, m.From)
	if u.Captured != board.Empty {
		k.Toggle(u.Captured, m.To)
	}
	k.Toggle(arrived, m.To)
	k[0] ^= sideKey
	return k
}

// Index truncates the key to a bucket index in [0, n).
func (k PositionKey) Index(n int) int {
	return int(k[0] % uint64(n))
}
