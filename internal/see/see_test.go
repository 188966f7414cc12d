package see

import (
	"testing"

	"chess-engine/internal/board"
)

func findMove(t *testing.T, b *board.Board, from, to string) board.Move {
	t.Helper()
	f, err := board.ParseSquare(from)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", from, err)
	}
	tt, err := board.ParseSquare(to)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", to, err)
	}
	for _, m := range b.GenerateMoves(board.GenAllLegal, make([]board.Move, 0, 64)) {
		if m.From() == f && m.To() == tt {
			return m
		}
	}
	t.Fatalf("move %s->%s not found", from, to)
	return board.NullMove
}

func TestSEEAccountsForRevealedSlider(t *testing.T) {
	b := board.NewBoard()
	if err := b.SetFEN("6k1/4q1p1/4n3/8/2B5/8/8/6K1 w - - 0 1"); err != nil {
		t.Fatalf("SetFEN: %v", err)
	}
	m := findMove(t, b, "c4", "e6")
	if got := Value(b, m); got != 0 {
		t.Fatalf("expected SEE score 0, got %d", got)
	}
}

func TestSEEHandlesEnPassantCapture(t *testing.T) {
	b := board.NewBoard()
	if err := b.SetFEN("8/8/8/3pP3/8/8/8/6K1 w - d6 0 1"); err != nil {
		t.Fatalf("SetFEN: %v", err)
	}
	m := findMove(t, b, "e5", "d6")
	if !m.IsEnPassant() {
		t.Fatalf("expected en passant flag on e5d6")
	}
	if got, want := Value(b, m), pieceValue[board.Pawn]; got != want {
		t.Fatalf("expected SEE score %d, got %d", want, got)
	}
}

func TestSEELosingCaptureIsNegative(t *testing.T) {
	b := board.NewBoard()
	if err := b.SetFEN("6k1/6n1/4p3/8/2Q5/8/8/6K1 w - - 0 1"); err != nil {
		t.Fatalf("SetFEN: %v", err)
	}
	m := findMove(t, b, "c4", "e6")
	if got := Value(b, m); got >= 0 {
		t.Fatalf("expected negative SEE trading queen for knight-defended pawn, got %d", got)
	}
}

func TestSEEQuietMoveIsZero(t *testing.T) {
	b := board.NewBoard()
	m := findMove(t, b, "e2", "e4")
	if got := Value(b, m); got != 0 {
		t.Fatalf("expected 0 SEE for a quiet move, got %d", got)
	}
}
