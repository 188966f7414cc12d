// Package search implements iterative-deepening negamax with aspiration
// windows, null-move pruning, late-move reductions/pruning, futility and
// reverse-futility pruning, singular extension, internal iterative
// deepening and quiescence search with SEE/delta pruning, grounded on the
// teacher's engine/search.go but with the self-consistent PVLine/timeHandler
// the teacher's own snapshot is missing.
package search

import (
	"chess-engine/internal/board"
	"chess-engine/internal/eval"
	"chess-engine/internal/see"
	"chess-engine/internal/tt"
)

const (
	MaxScore  int32 = 32500
	Checkmate int32 = 20000
	DrawScore int32 = 0
	maxPly          = 128
)

var pieceValueMG = [7]int32{board.None: 0, board.Pawn: 90, board.Knight: 320, board.Bishop: 330, board.Rook: 500, board.Queen: 1000, board.King: 0}

var futilityMargins = [8]int32{0, 120, 220, 320, 420, 520, 620, 720}
var rfpMargins = [8]int32{0, 100, 200, 300, 400, 500, 600, 700}
var razorMargins = [4]int32{0, 240, 280, 320}
var lmpMargins = [9]int{0, 3, 5, 9, 14, 20, 27, 35, 44}

const (
	lmrDepthLimit = 2
	lmrMoveLimit  = 2
	nullMoveMinDepth = 2
	seePruneDepth    = 8
	seePruneMargin   = -20
	quiescenceSeeMargin int32 = 100
	deltaMargin          int32 = 200
	aspirationWindow     int32 = 35
	qsExplosionLimit     int  = -8
	qsQuietCheckLimit    int  = -2
)

// lmrTable[depth][moveIndex] mirrors the teacher's gentle depth/lateness
// growth curve from init.go's InitLMRTable.
var lmrTable [maxPly + 1][128]int8

func init() {
	for d := 1; d <= maxPly; d++ {
		for m := 1; m < 128; m++ {
			r := 1 + d/8 + m/16
			if r > d-2 {
				r = d - 2
			}
			if r < 0 {
				r = 0
			}
			lmrTable[d][m] = int8(r)
		}
	}
}

// Limits bounds a single search call. A zero value means "search until Stop
// is called or mate is found" (infinite).
type Limits struct {
	Depth     int
	Nodes     uint64
	MoveTime  int
	WTimeMs   int
	BTimeMs   int
	WIncMs    int
	BIncMs    int
	MovesToGo int
	Infinite  bool
}

// Result is what a completed (or interrupted) search reports.
type Result struct {
	BestMove board.Move
	Score    int32
	Depth    int
	Nodes    uint64
	PV       PVLine
}

// InfoFunc receives one formatted UCI "info" line per completed iteration;
// an aspiration fail-high/fail-low that triggers a re-search emits no line.
// The uci package wires this to stdout.
type InfoFunc func(line string)

// Engine owns all state that must persist across a game: the transposition
// table, evaluation cache, and move-ordering heuristics. Not safe for
// concurrent use by more than one goroutine.
type Engine struct {
	TT    *tt.Table
	eval  *eval.Cache
	order *orderingTables
	cut   cutStatistics
	th    timeHandler

	nodes     uint64
	nodeLimit uint64
	stop      bool
	prevScore int32

	OnInfo   InfoFunc
	Contempt int32
}

// contemptDraw returns the draw score seen by the side to move: positive
// Contempt makes a draw look slightly worse than flat zero, so the engine
// only settles for one when it can't do better.
func (e *Engine) contemptDraw() int32 {
	return DrawScore - e.Contempt
}

// NewEngine allocates a transposition table of ttMB megabytes plus the
// ordering and evaluation caches.
func NewEngine(ttMB int) *Engine {
	return &Engine{
		TT:    tt.New(ttMB),
		eval:  eval.NewCache(),
		order: newOrderingTables(),
	}
}

// NewGame resets all per-game learning state: the TT, history/killer/
// counter tables and the aspiration-window anchor.
func (e *Engine) NewGame() {
	e.TT.Clear()
	e.order.clear()
	e.prevScore = 0
}

// Stop requests the in-progress search to return as soon as possible.
func (e *Engine) Stop() { e.stop = true }

// Search runs iterative deepening from b's current position up to
// limits.Depth (or until the time budget / Stop call cuts it short), and
// returns the best move found at the deepest completed iteration.
func (e *Engine) Search(b *board.Board, limits Limits) Result {
	e.stop = false
	e.nodes = 0
	e.nodeLimit = limits.Nodes
	e.cut.reset()
	e.TT.NewSearch()

	useCustomDepth := limits.Infinite || limits.MoveTime > 0 || limits.Depth > 0 && limits.WTimeMs == 0 && limits.BTimeMs == 0
	remaining, increment := limits.WTimeMs, limits.WIncMs
	if b.SideToMove() == board.Black {
		remaining, increment = limits.BTimeMs, limits.BIncMs
	}
	if limits.MoveTime > 0 {
		remaining, increment, useCustomDepth = limits.MoveTime, 0, false
	}
	movesLeft := limits.MovesToGo
	e.th.init(remaining, increment, movesLeft, useCustomDepth || remaining == 0)

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > maxPly {
		maxDepth = maxPly
	}

	return e.rootSearch(b, maxDepth, useCustomDepth || remaining == 0)
}

func (e *Engine) rootSearch(b *board.Board, depth int, customDepth bool) Result {
	var rootBuf [256]board.Move
	if rootMoves := b.GenerateMoves(board.GenAllLegal, rootBuf[:0]); len(rootMoves) == 1 {
		forced := rootMoves[0]
		b.Play(forced)
		score := -e.eval.Evaluate(b)
		b.Undo()
		var pv PVLine
		pv.Update(forced, PVLine{})
		return Result{BestMove: forced, Score: score, Depth: depth, Nodes: e.nodes, PV: pv}
	}

	alpha, beta := -MaxScore, MaxScore
	if e.prevScore != 0 {
		alpha = e.prevScore - aspirationWindow
		beta = e.prevScore + aspirationWindow
	}

	var bestScore int32 = -MaxScore
	var pvLine, prevPVLine PVLine
	window := aspirationWindow

	for d := 1; d <= depth; d++ {
		if !customDepth && d > 1 {
			if e.th.softTimeExceeded() && !e.th.shouldExtendTime() {
				break
			}
			if e.th.shouldStopEarly() {
				break
			}
		}

		pvLine.Clear()
		score := e.alphabeta(b, alpha, beta, d, 0, &pvLine, board.NullMove, false, false, pvNode)

		if e.stop || (!customDepth && e.th.timeUp()) {
			if len(prevPVLine.Moves) == 0 && len(pvLine.Moves) > 0 {
				bestScore = score
				prevPVLine = pvLine.Clone()
			}
			break
		}

		if score <= alpha || score >= beta {
			if window >= MaxScore {
				window = MaxScore
			} else {
				window *= 2
			}
			alpha, beta = score-window, score+window
			if alpha < -MaxScore {
				alpha = -MaxScore
			}
			if beta > MaxScore {
				beta = MaxScore
			}
			d--
			continue
		}

		mateFound := (score > Checkmate || score < -Checkmate) && len(pvLine.Moves) > 0

		alpha, beta = score-aspirationWindow, score+aspirationWindow
		window = aspirationWindow
		bestScore = score
		e.prevScore = score
		prevPVLine = pvLine.Clone()

		if len(pvLine.Moves) > 0 {
			e.th.updateStability(score, uint16(pvLine.Moves[0]))
		}
		if e.th.shouldExtendTime() {
			e.th.extendTime()
		}

		if e.OnInfo != nil {
			e.OnInfo(formatInfo(d, score, e.nodes, pvLine))
		}

		if mateFound {
			break
		}
	}

	best := prevPVLine.GetPVMove()
	if best.IsNull() {
		var buf [64]board.Move
		moves := b.GenerateMoves(board.GenAllLegal, buf[:0])
		if len(moves) > 0 {
			best = moves[0]
		}
	}

	return Result{BestMove: best, Score: bestScore, Depth: depth, Nodes: e.nodes, PV: prevPVLine}
}

// nodeType classifies a node the way the teacher's PVS re-search expects a
// beta cutoff (Cut), expects none (All), or carries the full window (PV).
// It propagates independently of the isPV window test below: a null-window
// node can still be typed Cut or All, and that distinction is what drives
// computeLMR's per-node reduction-aggressiveness counter.
type nodeType int8

const (
	pvNode nodeType = iota
	cutNode
	allNode
)

// flipped swaps Cut and All, leaving PV unchanged, the "-node_type" trick
// the teacher's search.cc uses when recursing into a child.
func (nt nodeType) flipped() nodeType {
	switch nt {
	case cutNode:
		return allNode
	case allNode:
		return cutNode
	default:
		return pvNode
	}
}

func (e *Engine) alphabeta(b *board.Board, alpha, beta int32, depth, ply int, pvLine *PVLine, prevMove board.Move, didNull, extended bool, nt nodeType) int32 {
	e.nodes++
	if e.nodes&4095 == 0 {
		if !e.th.usingCustomDepth && e.th.timeUp() {
			e.stop = true
		}
		if e.nodeLimit > 0 && e.nodes >= e.nodeLimit {
			e.stop = true
		}
	}
	if e.stop {
		return 0
	}
	if ply >= maxPly {
		return e.eval.Evaluate(b)
	}

	isRoot := ply == 0
	isPV := beta-alpha > 1
	var childPV PVLine
	var bestMove board.Move

	if !isRoot {
		if b.IsDrawBy50() || b.RepetitionCount() >= 2 || b.IsInsufficientMaterial() {
			return e.contemptDraw()
		}
		draw := e.contemptDraw()
		if alpha < draw && b.RepetitionCount() >= 1 {
			alpha = draw
		}

		matedScore := -MaxScore + int32(ply)
		mateScore := MaxScore - int32(ply) - 1
		if matedScore > alpha {
			alpha = matedScore
		}
		if mateScore < beta {
			beta = mateScore
		}
		if alpha >= beta {
			return alpha
		}
	}

	inCheck := b.InCheck()
	if inCheck {
		depth++
	}

	if depth <= 0 {
		return e.quiescence(b, alpha, beta, ply, 0, board.NullMove)
	}

	key := b.Key()
	entry, found := e.TT.Probe(key)
	var ttMove board.Move
	if found {
		ttMove = entry.Move
	}
	if score, ok := tt.Usable(entry, found, depth, alpha, beta, ply); ok && !isRoot {
		if !isPV || entry.Bound == tt.BoundExact {
			e.cut.ttCutoffs++
			return score
		}
	}

	var staticScore int32
	if found {
		staticScore = int32(entry.Score)
		bestMove = ttMove
	} else {
		staticScore = e.eval.Evaluate(b)
	}

	improving := ply >= 2 && !inCheck && staticScore > alpha

	if !inCheck && !isPV && !isRoot && depth >= 1 && depth <= 7 && abs32(beta) < Checkmate {
		margin := rfpMargins[depth]
		if !improving {
			margin -= 50
		}
		if staticScore-margin >= beta {
			e.cut.staticNullCutoffs++
			e.TT.Store(key, ttMove, staticScore-margin, depth, tt.BoundLower, ply)
			return staticScore - margin
		}
	}

	if !inCheck && !isPV && !isRoot && depth <= 3 && abs32(beta) < Checkmate {
		margin := razorMargins[depth]
		if staticScore+margin < beta {
			ralpha := beta - margin
			v := e.quiescence(b, ralpha-1, ralpha, ply, 0, prevMove)
			if v <= ralpha-1 {
				return v
			}
		}
	}

	hasNonPawnMaterial := b.Pieces(b.SideToMove(), board.Knight) != 0 ||
		b.Pieces(b.SideToMove(), board.Bishop) != 0 ||
		b.Pieces(b.SideToMove(), board.Rook) != 0 ||
		b.Pieces(b.SideToMove(), board.Queen) != 0

	if !inCheck && !isPV && !isRoot && !didNull && hasNonPawnMaterial && depth >= nullMoveMinDepth {
		b.PlayNull()
		r := 3 + depth/3
		if depth > 6 {
			r++
		}
		if r > depth-1 {
			r = depth - 1
		}
		score := -e.alphabeta(b, -beta, -beta+1, depth-1-r, ply+1, &childPV, bestMove, true, extended, allNode)
		b.UndoNull()

		if score >= beta && score < Checkmate {
			e.cut.nullMoveCutoffs++
			e.TT.Store(key, ttMove, score, depth, tt.BoundLower, ply)
			if depth > 10 {
				verify := e.alphabeta(b, beta-1, beta, depth-1-r, ply, &childPV, prevMove, true, extended, nt)
				if verify >= beta {
					return verify
				}
			} else {
				return score
			}
		}
	}

	var singular bool
	if !isPV && !isRoot && !inCheck && !didNull && !extended && depth >= 8 &&
		!ttMove.IsNull() && found && entry.Bound == tt.BoundExact && int(entry.Depth) >= depth-3 {
		ttValue := int32(entry.Score)
		if ttValue < Checkmate && ttValue > -Checkmate {
			margin := int32(50 + 10*depth)
			target := ttValue - margin
			r := 3 + depth/4
			if r > depth-1 {
				r = depth - 1
			}
			var verifyPV PVLine
			s := e.alphabeta(b, target-1, target, depth-1-r, ply, &verifyPV, prevMove, didNull, true, nt)
			if s < target {
				singular = true
			}
		}
	}

	iidMinDepth := 7
	if isPV {
		iidMinDepth = 4
	}
	if ttMove.IsNull() && depth >= iidMinDepth && !didNull && !extended {
		reduced := depth - 2
		if depth >= 8 {
			reduced = depth - depth/4
		}
		var iidPV PVLine
		e.alphabeta(b, alpha, beta, reduced, ply, &iidPV, prevMove, false, true, nt)
		if e2, ok := e.TT.Probe(key); ok && !e2.Move.IsNull() {
			ttMove = e2.Move
			bestMove = ttMove
		}
	}

	var moveBuf [256]board.Move
	moves := b.GenerateMoves(board.GenAllLegal, moveBuf[:0])
	if len(moves) == 0 {
		if inCheck {
			return -MaxScore + int32(ply)
		}
		return e.contemptDraw()
	}

	scored := e.order.scoreMoves(b, moves, ply, ttMove, prevMove)

	bestScore := int32(-MaxScore)
	bound := tt.BoundUpper
	legalMoves := 0
	lmrCount := 0
	var quietTried []board.Move

	for i := 0; i < len(scored); i++ {
		move := pickBest(scored, i)

		toPiece, _ := b.PieceOn(move.To())
		isCapture := toPiece != board.None || move.IsEnPassant()
		movePromotes := move.IsPromotion()
		givesCheck := b.GivesCheck(move)
		tactical := isCapture || givesCheck || movePromotes
		legalMoves++

		if depth <= 8 && !isPV && !tactical && !isRoot && legalMoves > 1 {
			margin := lmpMargins[min(depth, len(lmpMargins)-1)]
			if !improving {
				margin = margin * 2 / 3
			}
			if margin > 0 && legalMoves > margin {
				e.cut.lateMovePrunes++
				continue
			}
		}

		if depth <= 7 && depth >= 1 && !givesCheck && !isPV && !isRoot && !tactical && abs32(alpha) < Checkmate {
			margin := futilityMargins[depth]
			if !improving {
				margin -= 50
			}
			if staticScore+margin <= alpha {
				e.cut.futilityPrunes++
				continue
			}
		}

		if !isCapture {
			quietTried = append(quietTried, move)
		} else if depth <= seePruneDepth && !isPV && !isRoot && !givesCheck && see.Value(b, move) < seePruneMargin {
			continue
		}

		us := b.SideToMove()
		b.Play(move)

		extendMove := !extended && move.Equal(ttMove) && singular
		nextExtended := extended || extendMove

		var score int32
		if legalMoves == 1 {
			childType := nt.flipped()
			if nt == pvNode {
				childType = pvNode
			}
			nextDepth := nextSearchDepth(depth-1, 0, extendMove)
			score = -e.alphabeta(b, -beta, -alpha, nextDepth, ply+1, &childPV, move, false, nextExtended, childType)
		} else {
			// The expected cutoff didn't happen on the first move, so this
			// node's remaining children are no longer typed Cut.
			if nt == cutNode {
				nt = allNode
			}
			historyScore := e.order.historyScore(us, move)
			var reduction int8
			if int8(depth) >= lmrDepthLimit && legalMoves >= lmrMoveLimit && !givesCheck && !tactical {
				lmrCount++
				reduction = computeLMR(depth, legalMoves, isPV, tactical, historyScore, improving, e.order.killers.isKiller(move, ply), extendMove, nt, lmrCount)
			}
			score = e.searchPVS(b, move, depth-1, reduction, alpha, beta, ply, extendMove, nextExtended, &childPV, nt)
		}

		b.Undo()

		if score > bestScore {
			bestScore = score
			bestMove = move
		}
		if score >= beta {
			e.cut.betaCutoffs++
			bound = tt.BoundLower
			if !isCapture {
				e.order.killers.insert(move, ply)
				e.order.storeCounter(us, prevMove, move)
				e.order.bumpHistory(us, move, depth)
				for _, failed := range quietTried {
					if !failed.Equal(move) {
						e.order.penalizeHistory(us, failed, depth)
					}
				}
			}
			break
		}
		if score > alpha {
			alpha = score
			bound = tt.BoundExact
			pvLine.Update(move, childPV)
			if !isCapture {
				e.order.bumpHistory(us, move, depth)
			}
		}
	}

	childPV.Clear()
	if !e.stop {
		e.TT.Store(key, bestMove, bestScore, depth, bound, ply)
	}
	return bestScore
}

func nextSearchDepth(base int, reduction int8, extend bool) int {
	d := base - int(reduction)
	if extend && reduction == 0 {
		d++
	}
	return d
}

// searchPVS implements the standard 3-stage principal-variation search
// re-search pattern: reduced null-window, then full-depth null-window if the
// reduction was lifted by a promising score, then full window.
func (e *Engine) searchPVS(b *board.Board, move board.Move, baseDepth int, reduction int8, alpha, beta int32, ply int, extendMove, nextExtended bool, childPV *PVLine, nt nodeType) int32 {
	reducedType := nt.flipped()
	if nt == pvNode {
		reducedType = cutNode
	}
	nextDepth := nextSearchDepth(baseDepth, reduction, extendMove)
	score := -e.alphabeta(b, -(alpha + 1), -alpha, nextDepth, ply+1, childPV, move, false, nextExtended, reducedType)

	if score > alpha && reduction > 0 {
		nextDepth = nextSearchDepth(baseDepth, 0, extendMove)
		score = -e.alphabeta(b, -(alpha + 1), -alpha, nextDepth, ply+1, childPV, move, false, nextExtended, allNode)
	}
	if score > alpha && score < beta {
		nextDepth = nextSearchDepth(baseDepth, 0, extendMove)
		score = -e.alphabeta(b, -beta, -alpha, nextDepth, ply+1, childPV, move, false, nextExtended, pvNode)
	}
	return score
}

// computeLMR returns the late-move-reduction ply count for the legalMoves'th
// move at this node. lmrCount is the running count of moves this node has
// already offered to LMR (this move included); once it crosses
// 3+8/depth (2+8/depth at a Cut node, since a Cut node expects fewer moves
// before its cutoff) the move gets pushed one ply deeper, mirroring the
// teacher's own node-type-aware move-count aggressiveness rule.
func computeLMR(depth, legalMoves int, isPV, tactical bool, historyScore int32, improving, isKiller, extendMove bool, nt nodeType, lmrCount int) int8 {
	if isPV || tactical || depth < lmrDepthLimit || legalMoves <= 2 {
		return 0
	}
	d := depth
	if d > maxPly {
		d = maxPly
	}
	m := legalMoves - 1
	if m >= len(lmrTable[0]) {
		m = len(lmrTable[0]) - 1
	}
	r := lmrTable[d][m]

	if r > 0 && historyScore > 0 {
		bonus := int8(historyScore / 2000)
		if bonus > 2 {
			bonus = 2
		}
		if bonus > r {
			bonus = r
		}
		r -= bonus
	}
	if historyScore <= 0 && legalMoves > 6 {
		r++
	}
	if !improving {
		r++
	}
	if isKiller && r > 0 {
		r--
	}

	threshold := 3 + 8/depth
	if nt == cutNode {
		threshold = 2 + 8/depth
	}
	if lmrCount >= threshold {
		r++
	}

	if extendMove {
		r = 0
	}
	if r < 0 {
		r = 0
	}
	return r
}

// quiescence resolves captures (and, near the top of the qsearch tree,
// checking quiet moves) until the position is quiet. qdepth starts at 0 on
// the call out of alphabeta and counts down by one per recursive ply; it
// is the vehicle for both the quiet-check cutoff and the QS_LIMIT explosion
// guard, independent of the absolute search ply.
func (e *Engine) quiescence(b *board.Board, alpha, beta int32, ply, qdepth int, prevMove board.Move) int32 {
	e.nodes++
	if e.nodes&2047 == 0 {
		if !e.th.usingCustomDepth && e.th.timeUp() {
			e.stop = true
		}
		if e.nodeLimit > 0 && e.nodes >= e.nodeLimit {
			e.stop = true
		}
	}
	if e.stop {
		return 0
	}
	if ply >= maxPly {
		return e.eval.Evaluate(b)
	}

	inCheck := b.InCheck()

	key := b.Key()
	entry, found := e.TT.Probe(key)
	var ttMove board.Move
	if found {
		ttMove = entry.Move
	}
	if score, ok := tt.Usable(entry, found, qdepth, alpha, beta, ply); ok {
		e.cut.ttCutoffs++
		return score
	}

	var standPat int32
	if found {
		standPat = int32(entry.Score)
	} else {
		standPat = e.eval.Evaluate(b)
	}

	if !inCheck {
		if standPat >= beta {
			e.cut.qStandPatCutoffs++
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	bestScore := standPat
	if inCheck {
		bestScore = -MaxScore
	}

	// QS_LIMIT: past this many plies of pure captures the tree has already
	// blown well past any useful horizon; settle for the static estimate
	// instead of recursing further.
	if !inCheck && qdepth <= qsExplosionLimit {
		return bestScore
	}

	genMode := board.GenCapturesOnly
	if !inCheck && qdepth >= qsQuietCheckLimit {
		genMode = board.GenCapturesAndQuietChecks
	}

	var moveBuf [256]board.Move
	var moves []board.Move
	if inCheck {
		moves = b.GenerateMoves(board.GenAllLegal, moveBuf[:0])
	} else {
		moves = b.GenerateMoves(genMode, moveBuf[:0])
	}
	if len(moves) == 0 {
		if inCheck {
			return -MaxScore + int32(ply)
		}
		return bestScore
	}

	var scored []scoredMove
	if inCheck {
		scored = e.order.scoreMoves(b, moves, ply, ttMove, prevMove)
	} else {
		scored = scoreCaptures(b, moves, ttMove)
	}

	bound := tt.BoundUpper
	var bestMove board.Move

	for i := 0; i < len(scored); i++ {
		move := pickBest(scored, i)

		if !inCheck {
			toPiece, _ := b.PieceOn(move.To())
			isQuiet := !move.IsEnPassant() && toPiece == board.None && !move.IsPromotion()
			if !isQuiet && see.Value(b, move) < -int(quiescenceSeeMargin) {
				continue
			}
			gain := int32(0)
			if move.IsEnPassant() {
				gain = pieceValueMG[board.Pawn]
			} else if toPiece != board.None {
				gain = pieceValueMG[toPiece]
			}
			if move.IsPromotion() {
				gain += pieceValueMG[move.Promotion().Piece()] - pieceValueMG[board.Pawn]
			}
			if standPat+gain+deltaMargin < alpha {
				continue
			}
		}

		b.Play(move)
		score := -e.quiescence(b, -beta, -alpha, ply+1, qdepth-1, move)
		b.Undo()

		if score > bestScore {
			bestScore = score
			bestMove = move
		}
		if score >= beta {
			e.cut.qBetaCutoffs++
			e.TT.Store(key, move, score, qdepth, tt.BoundLower, ply)
			return score
		}
		if score > alpha {
			alpha = score
			bound = tt.BoundExact
			bestMove = move
		}
	}

	e.TT.Store(key, bestMove, bestScore, qdepth, bound, ply)
	return bestScore
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
