package board

import (
	"fmt"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN reads the piece placement and side-to-move fields of a FEN
// string. Castling, en passant and clock fields are accepted but ignored.
// A missing side field means White to move.
func ParseFEN(fen string) (Board, Color, error) {
	var b Board
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return b, 0, fmt.Errorf("%w: empty string", ErrInvalidFEN)
	}

	if err := parsePiecePlacement(&b, parts[0]); err != nil {
		return b, 0, err
	}

	side := White
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
			side = White
		case "b":
			side = Black
		default:
			return b, 0, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, parts[1])
		}
	}
	return b, side, nil
}

func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			p, ok := PieceFromChar(c)
			if !ok {
				return fmt.Errorf("%w: piece %q", ErrInvalidFEN, c)
			}
			if file > 7 {
				return fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, rank+1)
			}
			b[NewSquare(file, rank)] = p
			file++
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, rank+1, file)
		}
	}
	return nil
}

// FEN formats b with side to move. Castling and en passant are never
// available, so those fields are always "-".
func (b *Board) FEN(side Color) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b[NewSquare(file, rank)]
			if p == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	if side == Black {
		sb.WriteString(" b - - 0 1")
	} else {
		sb.WriteString(" w - - 0 1")
	}
	return sb.String()
}
