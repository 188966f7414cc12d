package board

import "testing"

// Standard perft positions from the Chess Programming Wiki, the same set
// the teacher's tests/perft_test.go validates its generator against.
func TestPerftStandardPositions(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		nodes map[int]uint64
	}{
		{"initial", StartFEN, map[int]uint64{1: 20, 2: 400, 3: 8902, 4: 197281}},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			map[int]uint64{1: 48, 2: 2039, 3: 97862}},
		{"en_passant", "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", map[int]uint64{1: 5, 2: 19}},
		{"promotion", "1n5k/P7/8/8/8/8/8/7K w - - 0 1", map[int]uint64{1: 11}},
		{"position3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", map[int]uint64{1: 14, 2: 191, 3: 2812}},
		{"position4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			map[int]uint64{1: 6, 2: 264, 3: 9467}},
		{"position5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 0 1",
			map[int]uint64{1: 44, 2: 1486, 3: 62379}},
		{"position6", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
			map[int]uint64{1: 46, 2: 2079, 3: 89890}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for depth := 1; depth <= len(c.nodes); depth++ {
				want, ok := c.nodes[depth]
				if !ok {
					continue
				}
				b := NewBoard()
				if err := b.SetFEN(c.fen); err != nil {
					t.Fatalf("SetFEN(%q): %v", c.fen, err)
				}
				if got := b.Perft(depth); got != want {
					t.Errorf("%s depth %d: got %d, want %d", c.name, depth, got, want)
				}
			}
		})
	}
}

func TestPerftInitialDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	b := NewBoard()
	if got := b.Perft(5); got != 4865609 {
		t.Errorf("initial depth 5: got %d, want %d", got, 4865609)
	}
}

// TestPerftStandardPositionsDeep carries kiwipete, position3, and position4
// to their full published depths, the same depths TestPerftInitialDeep
// validates startpos to. The shallow depths above stay in
// TestPerftStandardPositions for the fast (non -short) default run.
func TestPerftStandardPositionsDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	cases := []struct {
		name  string
		fen   string
		depth int
		want  uint64
	}{
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 4, 4085603},
		{"position3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 5, 674624},
		{"position4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 5, 15833292},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewBoard()
			if err := b.SetFEN(c.fen); err != nil {
				t.Fatalf("SetFEN(%q): %v", c.fen, err)
			}
			if got := b.Perft(c.depth); got != c.want {
				t.Errorf("%s depth %d: got %d, want %d", c.name, c.depth, got, c.want)
			}
		})
	}
}
