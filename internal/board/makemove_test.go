package board

import "testing"

func TestMakeUnmakeNormalMove(t *testing.T) {
	b := NewBoard()
	startFEN := b.FEN()
	startKey := b.Key()

	if !b.PlayUCI("e2e4") {
		t.Fatalf("PlayUCI e2e4 failed")
	}
	b.Undo()

	if got := b.FEN(); got != startFEN {
		t.Fatalf("FEN mismatch after unmake: got %q want %q", got, startFEN)
	}
	if b.Key() != startKey {
		t.Fatalf("zobrist mismatch after unmake")
	}
}

func TestMakeUnmakeCapture(t *testing.T) {
	b := NewBoard()
	if err := b.SetFEN("8/r7/8/8/8/8/8/R3K3 w - - 0 1"); err != nil {
		t.Fatalf("SetFEN: %v", err)
	}
	startKey := b.Key()
	startFEN := b.FEN()

	if !b.PlayUCI("a1a7") {
		t.Fatalf("PlayUCI a1a7 (rook capture) failed")
	}
	b.Undo()

	if b.Key() != startKey {
		t.Fatalf("zobrist mismatch after capture unmake")
	}
	if got := b.FEN(); got != startFEN {
		t.Fatalf("FEN mismatch after capture unmake: got %q want %q", got, startFEN)
	}
}

func TestMakeUnmakeEnPassant(t *testing.T) {
	b := NewBoard()
	if err := b.SetFEN("k7/8/8/3pP3/8/8/8/7K w - d6 0 2"); err != nil {
		t.Fatalf("SetFEN: %v", err)
	}
	startKey := b.Key()
	startFEN := b.FEN()

	if !b.PlayUCI("e5d6") {
		t.Fatalf("PlayUCI e5d6 (en passant) failed")
	}
	b.Undo()

	if b.Key() != startKey {
		t.Fatalf("zobrist mismatch after ep unmake")
	}
	if got := b.FEN(); got != startFEN {
		t.Fatalf("FEN mismatch after ep unmake: got %q want %q", got, startFEN)
	}
}

func TestMakeUnmakeCastling(t *testing.T) {
	b := NewBoard()
	if err := b.SetFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1"); err != nil {
		t.Fatalf("SetFEN: %v", err)
	}
	startKey := b.Key()
	startFEN := b.FEN()

	if !b.PlayUCI("e1g1") {
		t.Fatalf("PlayUCI e1g1 (castle) failed")
	}
	p, c := b.PieceOn(MakeSquare(5, 0)) // f1
	if p != Rook || c != White {
		t.Fatalf("expected white rook on f1 after castling, got %v/%v", p, c)
	}

	b.Undo()
	if b.Key() != startKey {
		t.Fatalf("zobrist mismatch after castling unmake")
	}
	if got := b.FEN(); got != startFEN {
		t.Fatalf("FEN mismatch after castling unmake: got %q want %q", got, startFEN)
	}
}
