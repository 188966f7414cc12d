package board

import (
	extgoosemg "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
)

// CrossCheckPerft parses fen into both this package's Board and the
// upstream GooseEngineMG move generator and runs Perft(depth) on each,
// returning both counts so callers (cmd/perft -crosscheck, tests) can
// confirm the rewritten generator agrees with the generator it was
// generalized from.
func CrossCheckPerft(fen string, depth int) (ours, theirs uint64, err error) {
	b := NewBoard()
	if err = b.SetFEN(fen); err != nil {
		return 0, 0, err
	}
	ours = b.Perft(depth)

	extBoard, err := extgoosemg.ParseFEN(fen)
	if err != nil {
		return ours, 0, err
	}
	theirs = extgoosemg.Perft(extBoard, depth)
	return ours, theirs, nil
}

// CrossCheckDragontoothPerft is CrossCheckPerft's second opinion: it parses
// fen into dylhunn/dragontoothmg's board, the generator this package's
// attack tables and SEE implementation trace their lineage to, and runs the
// same depth-limited node count against it.
func CrossCheckDragontoothPerft(fen string, depth int) (ours, theirs uint64, err error) {
	b := NewBoard()
	if err = b.SetFEN(fen); err != nil {
		return 0, 0, err
	}
	ours = b.Perft(depth)

	extBoard := dragontoothmg.ParseFen(fen)
	theirs = dragontoothPerft(&extBoard, depth)
	return ours, theirs, nil
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}
