package board

import (
	"errors"
	"testing"
)

func TestParseFENStart(t *testing.T) {
	b, side, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatal(err)
	}
	if side != White {
		t.Errorf("side = %s, want White", side)
	}
	if b != StartBoard() {
		t.Errorf("board mismatch:\n%s", b.String())
	}
	if b[E1] != NewPiece(King, White) || b[E8] != NewPiece(King, Black) {
		t.Error("kings are not on e1/e8")
	}

	want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"
	if got := b.FEN(White); got != want {
		t.Errorf("FEN() = %q, want %q", got, want)
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x",
		"rnbqkbnrr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w",
	}
	for _, fen := range bad {
		if _, _, err := ParseFEN(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("ParseFEN(%q) error = %v, want ErrInvalidFEN", fen, err)
		}
	}
}

func TestSquareAndMoveParsing(t *testing.T) {
	sq, err := ParseSquare("e4")
	if err != nil || sq != E4 {
		t.Fatalf("ParseSquare(e4) = %v, %v", sq, err)
	}
	if sq.File() != 4 || sq.Rank() != 3 || sq.Mirror() != E5 {
		t.Errorf("e4 file/rank/mirror = %d/%d/%s", sq.File(), sq.Rank(), sq.Mirror())
	}
	if _, err := ParseSquare("i9"); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("ParseSquare(i9) error = %v", err)
	}

	m, err := ParseMove("e7e8q")
	if err != nil || m.From != E7 || m.To != E8 {
		t.Fatalf("ParseMove(e7e8q) = %v, %v", m, err)
	}
	if _, err := ParseMove("e2e2"); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("ParseMove(e2e2) error = %v", err)
	}
	if NoMove.String() != "0000" || !NoMove.IsNone() {
		t.Error("NoMove should format as 0000")
	}
}
