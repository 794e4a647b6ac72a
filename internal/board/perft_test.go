package board

import "testing"

// TestPerftStartingPosition tests move generation from the starting position.
// Castling, en passant and promotion cannot occur in the first four plies,
// so the standard counts apply.
func TestPerftStartingPosition(t *testing.T) {
	tables := NewMoveTables()

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	for _, tc := range tests {
		if tc.depth > 3 && testing.Short() {
			continue
		}
		t.Run("", func(t *testing.T) {
			b := StartBoard()
			got := Perft(&b, tables, White, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
			if b != StartBoard() {
				t.Errorf("perft(%d) did not restore the board", tc.depth)
			}
		})
	}
}

func BenchmarkPerft3(b *testing.B) {
	tables := NewMoveTables()
	start := StartBoard()
	for i := 0; i < b.N; i++ {
		Perft(&start, tables, White, 3)
	}
}
