package search

import "chess-engine/internal/board"

// PVLine is absent from the teacher's own repo snapshot (no type definition
// under engine/ defines it despite Clear/Clone/Update/GetPVMove all being
// called from search.go), so this is built from that call-site contract: a
// flat move buffer per node, grown by prepending a move and appending the
// child's own line.
type PVLine struct {
	Moves []board.Move
}

// Clear empties the line without releasing its backing array.
func (pv *PVLine) Clear() {
	pv.Moves = pv.Moves[:0]
}

// Clone returns an independent copy, since PV lines from deeper nodes are
// reused (Clear'd) across sibling searches and must not alias the one kept
// at the root.
func (pv PVLine) Clone() PVLine {
	out := PVLine{Moves: make([]board.Move, len(pv.Moves))}
	copy(out.Moves, pv.Moves)
	return out
}

// Update records move as this node's best move, followed by child's line.
func (pv *PVLine) Update(move board.Move, child PVLine) {
	pv.Moves = append(pv.Moves[:0], move)
	pv.Moves = append(pv.Moves, child.Moves...)
}

// GetPVMove returns the line's first move, or the null move if empty.
func (pv PVLine) GetPVMove() board.Move {
	if len(pv.Moves) == 0 {
		return board.NullMove
	}
	return pv.Moves[0]
}

// String renders the line as space-separated long-algebraic moves, for the
// UCI "pv" info field.
func (pv PVLine) String() string {
	s := ""
	for _, m := range pv.Moves {
		if s != "" {
			s += " "
		}
		s += m.String()
	}
	return s
}
