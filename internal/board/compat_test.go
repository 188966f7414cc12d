package board

import "testing"

func TestCrossCheckPerftAgreesWithUpstream(t *testing.T) {
	cases := []struct {
		fen   string
		depth int
	}{
		{StartFEN, 3},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2},
	}
	for _, c := range cases {
		ours, theirs, err := CrossCheckPerft(c.fen, c.depth)
		if err != nil {
			t.Fatalf("CrossCheckPerft(%q, %d): %v", c.fen, c.depth, err)
		}
		if ours != theirs {
			t.Errorf("CrossCheckPerft(%q, %d) = %d, upstream = %d", c.fen, c.depth, ours, theirs)
		}
	}
}

func TestCrossCheckDragontoothPerftAgreesWithUpstream(t *testing.T) {
	cases := []struct {
		fen   string
		depth int
	}{
		{StartFEN, 3},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2},
	}
	for _, c := range cases {
		ours, theirs, err := CrossCheckDragontoothPerft(c.fen, c.depth)
		if err != nil {
			t.Fatalf("CrossCheckDragontoothPerft(%q, %d): %v", c.fen, c.depth, err)
		}
		if ours != theirs {
			t.Errorf("CrossCheckDragontoothPerft(%q, %d) = %d, upstream = %d", c.fen, c.depth, ours, theirs)
		}
	}
}
