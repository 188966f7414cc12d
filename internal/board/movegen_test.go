package board

import "testing"

func TestMoveGenerationInitial(t *testing.T) {
	b := NewBoard()
	moves := b.GenerateMoves(GenAllLegal, make([]Move, 0, 64))
	if len(moves) != 20 {
		t.Errorf("initial position: expected 20 moves, got %d", len(moves))
	}
}

func TestCapturesOnlyInitialZero(t *testing.T) {
	b := NewBoard()
	moves := b.GenerateMoves(GenCapturesOnly, make([]Move, 0, 64))
	if len(moves) != 0 {
		t.Fatalf("initial captures: got %d want 0", len(moves))
	}
}

func TestCapturesOnlyEnPassant(t *testing.T) {
	b := NewBoard()
	if err := b.SetFEN("k7/8/8/3pP3/8/8/8/7K w - d6 0 2"); err != nil {
		t.Fatalf("SetFEN: %v", err)
	}
	moves := b.GenerateMoves(GenCapturesOnly, make([]Move, 0, 64))
	var epCount int
	for _, m := range moves {
		if m.IsEnPassant() {
			epCount++
		}
	}
	if epCount != 1 {
		t.Fatalf("expected exactly 1 en passant capture, got %d (total=%d)", epCount, len(moves))
	}
}

func TestPromotionCapturesAndQuiets(t *testing.T) {
	b := NewBoard()
	if err := b.SetFEN("1n5k/P7/8/8/8/8/8/7K w - - 0 1"); err != nil {
		t.Fatalf("SetFEN: %v", err)
	}

	caps := b.GenerateMoves(GenCapturesOnly, make([]Move, 0, 64))
	b8, _ := ParseSquare("b8")
	var capPromos int
	for _, m := range caps {
		if m.IsPromotion() && m.To() == b8 {
			capPromos++
		}
	}
	if capPromos != 4 {
		t.Fatalf("expected 4 capture promotions from a7xb8, got %d", capPromos)
	}

	all := b.GenerateMoves(GenAllLegal, make([]Move, 0, 64))
	a7, _ := ParseSquare("a7")
	a8, _ := ParseSquare("a8")
	var quietPromos int
	for _, m := range all {
		if m.IsPromotion() && m.From() == a7 && m.To() == a8 {
			quietPromos++
		}
	}
	if quietPromos != 4 {
		t.Fatalf("expected 4 quiet promotions from a7a8, got %d", quietPromos)
	}
}

func TestGenerateMovesReusesBuffer(t *testing.T) {
	b := NewBoard()
	buf := make([]Move, 0, 256)

	allocs := testing.AllocsPerRun(100, func() {
		buf = b.GenerateMoves(GenAllLegal, buf[:0])
		if len(buf) != 20 {
			t.Fatalf("expected 20 moves, got %d", len(buf))
		}
	})
	if allocs != 0 {
		t.Fatalf("expected 0 allocs reusing buffer, got %f", allocs)
	}
}
