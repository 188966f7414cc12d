package board

import "testing"

func findMove(t *testing.T, b *Board, from, to Square) Move {
	t.Helper()
	moves := b.GenerateMoves(GenAllLegal, make([]Move, 0, 64))
	for _, m := range moves {
		if m.From() == from && m.To() == to {
			return m
		}
	}
	t.Fatalf("move %s->%s not found", from, to)
	return NullMove
}

func TestThreefoldRepetitionKnightShuffle(t *testing.T) {
	b := NewBoard()
	g1, _ := ParseSquare("g1")
	f3, _ := ParseSquare("f3")
	g8, _ := ParseSquare("g8")
	f6, _ := ParseSquare("f6")

	cycle := func() {
		b.Play(findMove(t, b, g1, f3))
		b.Play(findMove(t, b, g8, f6))
		b.Play(findMove(t, b, f3, g1))
		b.Play(findMove(t, b, f6, g8))
	}

	cycle()
	if b.RepetitionCount() >= 2 {
		t.Fatalf("should not be threefold yet after one cycle")
	}

	cycle()
	if b.RepetitionCount() < 2 {
		t.Fatalf("expected threefold repetition after two cycles, got RepetitionCount()=%d", b.RepetitionCount())
	}
}

func TestFiftyMoveRuleWithKnightShuffle(t *testing.T) {
	b := NewBoard()
	g1, _ := ParseSquare("g1")
	f3, _ := ParseSquare("f3")
	g8, _ := ParseSquare("g8")
	f6, _ := ParseSquare("f6")

	for i := 0; i < 25; i++ {
		b.Play(findMove(t, b, g1, f3))
		b.Play(findMove(t, b, g8, f6))
		b.Play(findMove(t, b, f3, g1))
		b.Play(findMove(t, b, f6, g8))
	}

	if !b.IsDrawBy50() {
		t.Fatalf("expected 50-move rule draw after 100 halfmoves, got Rule50()=%d", b.Rule50())
	}
}
