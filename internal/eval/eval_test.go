package eval

import (
	"testing"

	"chess-engine/internal/board"
)

func TestEvaluateStartposIsTempoOnly(t *testing.T) {
	b := board.NewBoard()
	c := NewCache()
	got := c.Evaluate(b)
	if got != TempoBonus {
		t.Fatalf("expected startpos eval to be exactly the tempo bonus (%d), got %d", TempoBonus, got)
	}
}

func TestEvaluateIsSymmetricUnderColorFlip(t *testing.T) {
	white := board.NewBoard()
	if err := white.SetFEN("4k3/8/8/8/4P3/8/8/4K3 w - - 0 1"); err != nil {
		t.Fatalf("SetFEN: %v", err)
	}
	black := board.NewBoard()
	if err := black.SetFEN("4k3/8/8/4p3/8/8/8/4K3 b - - 0 1"); err != nil {
		t.Fatalf("SetFEN: %v", err)
	}

	wc, bc := NewCache(), NewCache()
	wScore := wc.Evaluate(white)
	bScore := bc.Evaluate(black)
	if wScore != bScore {
		t.Fatalf("mirrored positions should evaluate identically from the mover's perspective: white=%d black=%d", wScore, bScore)
	}
}

func TestEvaluateFavorsMaterialAdvantage(t *testing.T) {
	b := board.NewBoard()
	if err := b.SetFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1"); err != nil {
		t.Fatalf("SetFEN: %v", err)
	}
	c := NewCache()
	if got := c.Evaluate(b); got <= 0 {
		t.Fatalf("expected a material-up position to score positive for the side to move, got %d", got)
	}
}

func TestEvaluateCachesRepeatedKey(t *testing.T) {
	b := board.NewBoard()
	c := NewCache()
	first := c.Evaluate(b)
	second := c.Evaluate(b)
	if first != second {
		t.Fatalf("expected cached evaluation to be stable: first=%d second=%d", first, second)
	}
}
