package board

import (
	"strings"
	"testing"
)

func playUCISequence(b *Board, seq string) (applied int, ok bool) {
	for _, mv := range strings.Split(seq, " ") {
		if !b.PlayUCI(mv) {
			return applied, false
		}
		applied++
	}
	return applied, true
}

// Long move sequence that runs the 50-move counter to a draw without any
// pawn move or capture in its final 50 full moves.
func TestFiftyMoveRuleLongSequence(t *testing.T) {
	b := NewBoard()
	seq := "d2d4 d7d5 f2f4 f7f5 e2e3 e7e6 g2g3 g7g6 h2h4 h7h5 c2c3 c7c6 b2b4 b7b5 a2a3 a7a6 " +
		"b1d2 g8e7 f1g2 c8b7 e1f2 e8f7 d1e2 f8g7 h1h3 a8a7 c1b2 b8d7 a1c1 b7c8 c1b1 d7f8 " +
		"g1f3 f8h7 d2f1 e7g8 f1d2 g8e7 d2f1 e7g8 f1h2 g8h6 f3g5 f7f8 e2c2 f8e7 b1d1 c8b7 " +
		"f2e2 g7f8 g2f3 h7f6 c2c1 d8c8 c1a1 c8a8 d1g1 b7c8 h2f1 h8h7 h3h2 h7h8 f1d2 f8g7 " +
		"d2f1 c8d7 a1c1 a8b7 b2a1 a7a8 f1d2 h8c8 g1g2 c8f8 h2h1 f8g8 g2g1 g8h8 g5h3 h6g8 " +
		"d2f1 g8h6 f1h2 f6g4 h2f1 g4f6 f1d2 g7f8 g1e1 b7c7 h1g1 f8g7 f3h1 h8b8 e1f1 d7e8 " +
		"d2b3 e8d7 b3c5 f6e4 h3g5 h6g4 c5b3 e4f6 g5h3 g4h6 h1f3 f6g8 g1h1 g7f6 f1f2 e7d8 " +
		"e2f1 d8c8 f1g2 c8b7"

	if _, ok := playUCISequence(b, seq); !ok {
		t.Fatalf("sequence failed to apply in full")
	}
	if !b.IsDrawBy50() {
		t.Fatalf("expected 50-move rule draw, got Rule50()=%d", b.Rule50())
	}
}

// Threefold repetition reached by maneuvering pieces back to a position
// visited twice before, verified via RepetitionCount rather than a
// hand-rolled zobrist history slice.
func TestThreefoldRepetitionLongSequence(t *testing.T) {
	b := NewBoard()
	seq := "d2d4 g8f6 c2c4 g7g6 f2f3 d7d6 e2e4 e7e5 d4d5 f6h5 c1e3 f8g7 b1c3 e8g8 d1d2 f7f5 " +
		"e1c1 f5f4 e3f2 g7f6 d2e1 b8d7 c1b1 f6e7 g2g3 c7c5 d5c6 b7c6 c4c5 d6c5 c3a4 d8c7 " +
		"e1c3 a8b8 f1h3 d7b6 a4c5 f8f7 b2b3 f4g3 h2g3 e7c5 c3c5 h5g7 d1c1 c8e6 c5c6 c7e7 " +
		"c6c5 e7f6 h3g2 f7b7 b1a1 b6d7 c5d6 g7e8 d6a6 e6b3 a6f6 e8f6 a2b3 b7b3 c1c2 b3b1 " +
		"a1a2 b1b4 a2a1 b4b1 a1a2 b1b4 a2a1 b4b1"

	if _, ok := playUCISequence(b, seq); !ok {
		t.Fatalf("sequence failed to apply in full")
	}
	if b.RepetitionCount() < 2 {
		t.Fatalf("expected threefold repetition after provided sequence, got RepetitionCount()=%d", b.RepetitionCount())
	}
}
