package search

import (
	"chess-engine/internal/board"
	"chess-engine/internal/see"
)

// mvvLva scores captures by (victim, attacker): high-value victim taken by a
// low-value attacker scores highest, the teacher's table in moveordering.go.
var mvvLva = [7][7]int32{
	board.Pawn:   {board.Pawn: 14, board.Knight: 13, board.Bishop: 12, board.Rook: 11, board.Queen: 10, board.King: 0},
	board.Knight: {board.Pawn: 24, board.Knight: 23, board.Bishop: 22, board.Rook: 21, board.Queen: 20, board.King: 0},
	board.Bishop: {board.Pawn: 34, board.Knight: 33, board.Bishop: 32, board.Rook: 31, board.Queen: 30, board.King: 0},
	board.Rook:   {board.Pawn: 44, board.Knight: 43, board.Bishop: 42, board.Rook: 41, board.Queen: 40, board.King: 0},
	board.Queen:  {board.Pawn: 54, board.Knight: 53, board.Bishop: 52, board.Rook: 51, board.Queen: 50, board.King: 0},
}

const (
	pvOffset        int32 = 2500000
	promotionOffset int32 = 2000000
	captureOffset   int32 = 1500000
	killerOffset    int32 = 200000
	counterOffset   int32 = 100000
	badCaptureOffset int32 = -1000000
)

const historyMaxVal = 10000

// killerTable holds the two most recent quiet moves that caused a beta
// cutoff at each ply, the teacher's killer.go shape.
type killerTable struct {
	moves [maxPly + 1][2]board.Move
}

func (k *killerTable) insert(m board.Move, ply int) {
	if ply < 0 || ply > maxPly {
		return
	}
	if k.moves[ply][0] == m {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

func (k *killerTable) isKiller(m board.Move, ply int) bool {
	if ply < 0 || ply > maxPly {
		return false
	}
	return k.moves[ply][0] == m || k.moves[ply][1] == m
}

// at returns the primary and secondary killer for ply, the zero move for
// either slot once ply runs past maxPly (deep quiescence recursion).
func (k *killerTable) at(ply int) (primary, secondary board.Move) {
	if ply < 0 || ply > maxPly {
		return board.NullMove, board.NullMove
	}
	return k.moves[ply][0], k.moves[ply][1]
}

func (k *killerTable) clear() {
	*k = killerTable{}
}

// orderingTables holds the counter-move and history tables that persist
// across a search, the teacher's moveordering_util.go/searchutil.go shape
// unified into one consistent definition (the teacher repo declares these
// twice, inconsistently, across the two files).
type orderingTables struct {
	counter [2][64][64]board.Move
	history [2][64][64]int32
	killers killerTable
}

func newOrderingTables() *orderingTables {
	return &orderingTables{}
}

func (o *orderingTables) clear() {
	*o = orderingTables{}
}

func sideIndex(c board.Color) int {
	if c == board.White {
		return 0
	}
	return 1
}

func (o *orderingTables) storeCounter(side board.Color, prev, move board.Move) {
	if prev.IsNull() {
		return
	}
	o.counter[sideIndex(side)][prev.From()][prev.To()] = move
}

func (o *orderingTables) counterMove(side board.Color, prev board.Move) board.Move {
	if prev.IsNull() {
		return board.NullMove
	}
	return o.counter[sideIndex(side)][prev.From()][prev.To()]
}

func (o *orderingTables) bumpHistory(side board.Color, move board.Move, depth int) {
	idx := sideIndex(side)
	h := &o.history[idx][move.From()][move.To()]
	*h += int32(depth * depth)
	if *h >= historyMaxVal {
		o.ageHistory(idx)
	}
}

func (o *orderingTables) penalizeHistory(side board.Color, move board.Move, depth int) {
	idx := sideIndex(side)
	h := &o.history[idx][move.From()][move.To()]
	*h -= int32(depth)
	if *h < 0 {
		*h = 0
	}
}

func (o *orderingTables) ageHistory(idx int) {
	for from := 0; from < 64; from++ {
		for to := 0; to < 64; to++ {
			o.history[idx][from][to] /= 2
		}
	}
}

func (o *orderingTables) historyScore(side board.Color, move board.Move) int32 {
	return o.history[sideIndex(side)][move.From()][move.To()]
}

// scoredMove pairs a move with its ordering score for a single node.
type scoredMove struct {
	move  board.Move
	score int32
}

// scoreMoves assigns each legal move in moves an ordering score: the TT/PV
// move first, then promotions, then MVV-LVA-ranked captures, then killers,
// then counter moves layered on history, then plain history.
func (o *orderingTables) scoreMoves(b *board.Board, moves []board.Move, ply int, ttMove, prevMove board.Move) []scoredMove {
	us := b.SideToMove()
	out := make([]scoredMove, len(moves))
	for i, m := range moves {
		out[i] = scoredMove{move: m, score: o.scoreMove(b, m, us, ply, ttMove, prevMove)}
	}
	return out
}

func (o *orderingTables) scoreMove(b *board.Board, m board.Move, us board.Color, ply int, ttMove, prevMove board.Move) int32 {
	if m.Equal(ttMove) {
		return pvOffset
	}
	if m.IsPromotion() {
		return promotionOffset + int32(pieceValueMG[m.Promotion().Piece()])
	}
	victim, _ := b.PieceOn(m.To())
	if m.IsEnPassant() {
		victim = board.Pawn
	}
	if victim != board.None {
		attacker, _ := b.PieceOn(m.From())
		if see.Value(b, m) < 0 {
			return badCaptureOffset + mvvLva[victim][attacker]
		}
		return captureOffset + mvvLva[victim][attacker]
	}
	primary, secondary := o.killers.at(ply)
	if primary == m {
		return killerOffset + 200
	}
	if secondary == m {
		return killerOffset
	}
	score := o.historyScore(us, m)
	if o.counterMove(us, prevMove).Equal(m) {
		score += counterOffset
	}
	return score
}

// scoreCaptures scores quiescence-search candidates: captures, promotions,
// and (from GenCapturesAndQuietChecks) non-capturing checks, ranked by
// MVV-LVA with the TT move boosted to the front and quiet checks ranked
// below every capture.
func scoreCaptures(b *board.Board, moves []board.Move, ttMove board.Move) []scoredMove {
	out := make([]scoredMove, 0, len(moves))
	for _, m := range moves {
		var score int32
		switch {
		case m.Equal(ttMove):
			score = captureOffset + 256
		case m.IsPromotion():
			score = captureOffset + 75
		default:
			victim, _ := b.PieceOn(m.To())
			if m.IsEnPassant() {
				victim = board.Pawn
			}
			if victim != board.None {
				attacker, _ := b.PieceOn(m.From())
				score = mvvLva[victim][attacker]
			}
		}
		out = append(out, scoredMove{move: m, score: score})
	}
	return out
}

// pickBest selection-sorts the remaining moves[from:] in place, moving the
// highest-scoring one to index from and returning it, the teacher's
// orderNextMove swap-to-front approach.
func pickBest(moves []scoredMove, from int) board.Move {
	best := from
	for i := from + 1; i < len(moves); i++ {
		if moves[i].score > moves[best].score {
			best = i
		}
	}
	moves[from], moves[best] = moves[best], moves[from]
	return moves[from].move
}
