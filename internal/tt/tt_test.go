package tt

import (
	"testing"

	"chess-engine/internal/board"
)

func TestStoreProbeRoundTrip(t *testing.T) {
	table := New(1)
	move := board.NewMove(board.MakeSquare(4, 1), board.MakeSquare(4, 3), board.FlagNormal, 0)

	table.Store(0x1234, move, 150, 8, BoundExact, 0)
	e, found := table.Probe(0x1234)
	if !found {
		t.Fatalf("expected entry to be found")
	}
	if e.Move != move || e.Score != 150 || e.Depth != 8 || e.Bound != BoundExact {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestProbeMissOnEmptyTable(t *testing.T) {
	table := New(1)
	_, found := table.Probe(0xabc)
	if found {
		t.Fatalf("expected no entry in a fresh table")
	}
}

func TestClearRemovesEntries(t *testing.T) {
	table := New(1)
	move := board.NewMove(board.MakeSquare(0, 0), board.MakeSquare(0, 1), board.FlagNormal, 0)
	table.Store(0x1, move, 10, 4, BoundExact, 0)
	table.Clear()
	if _, found := table.Probe(0x1); found {
		t.Fatalf("expected entry to be gone after Clear")
	}
}

func TestUsableRespectsBoundAndDepth(t *testing.T) {
	exact := Entry{Score: 100, Depth: 6, Bound: BoundExact}
	if score, ok := Usable(exact, true, 4, -1000, 1000, 0); !ok || score != 100 {
		t.Fatalf("exact bound at sufficient depth should be usable, got score=%d ok=%v", score, ok)
	}
	if _, ok := Usable(exact, true, 10, -1000, 1000, 0); ok {
		t.Fatalf("shallower stored depth than requested should not be usable")
	}

	lower := Entry{Score: 500, Depth: 6, Bound: BoundLower}
	if _, ok := Usable(lower, true, 4, -1000, 400, 0); !ok {
		t.Fatalf("lower bound above beta should be usable")
	}
	if _, ok := Usable(lower, true, 4, -1000, 600, 0); ok {
		t.Fatalf("lower bound below beta should not be usable")
	}
}

func TestUsableNormalizesMateScoreByPly(t *testing.T) {
	e := Entry{Score: int16(Checkmate + 10), Depth: 1, Bound: BoundExact}
	score, ok := Usable(e, true, 1, -32000, 32000, 3)
	if !ok {
		t.Fatalf("expected mate score to be usable")
	}
	if score != int32(Checkmate+10-3) {
		t.Fatalf("expected mate score denormalized by ply, got %d", score)
	}
}

func TestHashfullEmptyIsZero(t *testing.T) {
	table := New(1)
	if got := table.Hashfull(); got != 0 {
		t.Fatalf("expected 0 hashfull on empty table, got %d", got)
	}
}
