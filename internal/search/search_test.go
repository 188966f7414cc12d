package search

import (
	"testing"

	"chess-engine/internal/board"
)

func TestSearchFindsMateInOne(t *testing.T) {
	b := board.NewBoard()
	if err := b.SetFEN("7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1"); err != nil {
		t.Fatalf("SetFEN: %v", err)
	}
	e := NewEngine(4)
	res := e.Search(b, Limits{Depth: 4})

	if res.BestMove.IsNull() {
		t.Fatalf("expected a best move")
	}
	g6, _ := board.ParseSquare("g6")
	g7, _ := board.ParseSquare("g7")
	if res.BestMove.From() != g6 || res.BestMove.To() != g7 {
		t.Fatalf("expected Qxg7#, got %s", res.BestMove)
	}
	if res.Score < Checkmate {
		t.Fatalf("expected a mate score, got %d", res.Score)
	}
}

func TestSearchPrefersWinningCapture(t *testing.T) {
	b := board.NewBoard()
	if err := b.SetFEN("4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1"); err != nil {
		t.Fatalf("SetFEN: %v", err)
	}
	e := NewEngine(4)
	res := e.Search(b, Limits{Depth: 6})

	d2, _ := board.ParseSquare("d2")
	d5, _ := board.ParseSquare("d5")
	if res.BestMove.From() != d2 || res.BestMove.To() != d5 {
		t.Fatalf("expected the rook to take the undefended queen (d2d5), got %s", res.BestMove)
	}
}

func TestSearchReturnsMoveFromStartpos(t *testing.T) {
	b := board.NewBoard()
	e := NewEngine(4)
	res := e.Search(b, Limits{Depth: 3})
	if res.BestMove.IsNull() {
		t.Fatalf("expected a best move from the startpos")
	}
}

func TestSearchRespectsNodeLimit(t *testing.T) {
	b := board.NewBoard()
	e := NewEngine(4)
	res := e.Search(b, Limits{Nodes: 1000})
	if res.Nodes > 20000 {
		t.Fatalf("expected the node limit to cap the search well short of a full-depth search, got %d nodes", res.Nodes)
	}
}

func TestSearchReturnsForcedMoveImmediately(t *testing.T) {
	b := board.NewBoard()
	if err := b.SetFEN("8/8/8/8/4k3/8/3q4/3K4 w - - 0 1"); err != nil {
		t.Fatalf("SetFEN: %v", err)
	}
	e := NewEngine(4)
	res := e.Search(b, Limits{Depth: 30})
	if res.Depth != 30 {
		t.Fatalf("Result.Depth = %d, want the requested depth echoed back", res.Depth)
	}
	d1, _ := board.ParseSquare("d1")
	if res.BestMove.From() != d1 {
		t.Fatalf("expected the king's only legal move from d1, got %s", res.BestMove)
	}
}

func TestContemptDrawLowersDrawScore(t *testing.T) {
	e := NewEngine(4)
	e.Contempt = 40
	if got := e.contemptDraw(); got != DrawScore-40 {
		t.Fatalf("contemptDraw() = %d, want %d", got, DrawScore-40)
	}
}

func TestNewGameClearsTranspositionTable(t *testing.T) {
	b := board.NewBoard()
	e := NewEngine(4)
	e.Search(b, Limits{Depth: 4})
	if _, found := e.TT.Probe(b.Key()); !found {
		t.Fatalf("expected an entry in the TT after a search")
	}
	e.NewGame()
	if _, found := e.TT.Probe(b.Key()); found {
		t.Fatalf("expected NewGame to clear the transposition table")
	}
}
