package eval

import "chess-engine/internal/board"

// pawnStructureScore computes the pawn-structure terms that depend only on
// pawn and king placement (isolated/chained/candidate/hole/doubled, plus
// shelter/storm) and caches them in c.pawn keyed by the board's
// pawn_king-restricted zobrist key. Passed-pawn scoring is deliberately kept
// out of this cache: the unstoppable-passer and king-proximity/defended-path
// terms depend on where every other piece is standing, not just pawns and
// kings, so they're recomputed from the cached passed-pawn bitboards on
// every call instead.
func (c *Cache) pawnStructureScore(b *board.Board) (mg, eg int32) {
	key := b.PawnKingKey()
	idx := key & (pawnHashSize - 1)
	e := &c.pawn[idx]
	if !(e.valid && e.key == key) {
		wp := b.Pieces(board.White, board.Pawn)
		bp := b.Pieces(board.Black, board.Pawn)

		m1, e1, wPassed := pawnSideScore(wp, bp, true)
		m2, e2, bPassed := pawnSideScore(bp, wp, false)

		shelterStorm := shelterScore(wp, b.KingSquare(board.White), true) -
			shelterScore(bp, b.KingSquare(board.Black), false) +
			stormScore(bp, b.KingSquare(board.White), false) -
			stormScore(wp, b.KingSquare(board.Black), true)

		*e = pawnEntry{
			key: key, valid: true,
			mg: m1 - m2 + shelterStorm, eg: e1 - e2,
			wPassed: wPassed, bPassed: bPassed,
		}
	}

	mg, eg = e.mg, e.eg

	pmg, peg := passedPawnScore(b, e.wPassed, true)
	mg += pmg
	eg += peg
	pmg, peg = passedPawnScore(b, e.bPassed, false)
	mg -= pmg
	eg -= peg

	return mg, eg
}

// pawnSideScore scores own's isolated/chained/candidate/hole/doubled terms
// against enemy's pawns, from own's point of view, and returns the bitboard
// of own pawns that are passed (for the caller to score separately).
func pawnSideScore(own, enemy board.Bitboard, white bool) (mg, eg int32, passed board.Bitboard) {
	ownFiles := fileOccupancy(own)

	bb := own
	for bb != 0 {
		sq := bb.PopLSB()
		file := sq.File()

		if ownFiles&adjacentFiles(file) == 0 {
			mg -= isolatedPawnMG
			eg -= isolatedPawnEG
		}

		if isConnected(own, sq, white) {
			mg += connectedPawnMG
			eg += connectedPawnEG
		}

		if isPassed(sq, enemy, white) {
			passed |= sqBB(sq)
		} else if isCandidate(own, enemy, sq, white) {
			mg += candidatePawnMG
			eg += candidatePawnEG
		}
	}

	for f := 0; f < 8; f++ {
		count := (own & fileMask(f)).Count()
		if count > 1 {
			mg -= doubledPawnMG * int32(count-1)
			eg -= doubledPawnEG * int32(count-1)
		}
	}

	holes := holeSquares(own, white)
	mg -= int32(holes.Count()) * holeSquareMG
	eg -= int32(holes.Count()) * holeSquareEG

	return mg, eg, passed
}

func sqBB(s board.Square) board.Bitboard { return board.Bitboard(1) << uint(s) }

func fileMask(f int) board.Bitboard {
	var m board.Bitboard
	for r := 0; r < 8; r++ {
		m |= board.Bitboard(1) << uint(board.MakeSquare(f, r))
	}
	return m
}

func adjacentFiles(f int) uint {
	var m uint
	if f > 0 {
		m |= 1 << uint(f-1)
	}
	if f < 7 {
		m |= 1 << uint(f+1)
	}
	return m
}

// isConnected reports whether sq is defended by a friendly pawn on an
// adjacent file one rank behind — the teacher's "connected/phalanx" notion
// (connectedOrPhalanxPawnBonus), simplified to the defended case; this is
// the spec's "chained" classification.
func isConnected(own board.Bitboard, sq board.Square, white bool) bool {
	behind := -1
	if !white {
		behind = 1
	}
	r := sq.Rank() + behind
	if r < 0 || r > 7 {
		return false
	}
	for _, df := range [2]int{-1, 1} {
		f := sq.File() + df
		if f < 0 || f > 7 {
			continue
		}
		if own.Has(board.MakeSquare(f, r)) {
			return true
		}
	}
	return false
}

// isPassed reports whether sq has no enemy pawn on its own or an adjacent
// file at or ahead of it (from the mover's direction of travel).
func isPassed(sq board.Square, enemy board.Bitboard, white bool) bool {
	file := sq.File()
	rank := sq.Rank()
	bb := enemy
	for bb != 0 {
		esq := bb.PopLSB()
		ef := esq.File()
		if ef < file-1 || ef > file+1 {
			continue
		}
		if white {
			if esq.Rank() > rank {
				return false
			}
		} else {
			if esq.Rank() < rank {
				return false
			}
		}
	}
	return true
}

// isCandidate reports whether a non-passed pawn has, on its remaining path
// to promotion, at least as many own pawns able to defend the path (on an
// adjacent file, level with or behind it) as enemy pawns able to contest it
// (on its own or an adjacent file, ahead of it) — the standard candidate-
// passer heuristic. No teacher example implements this classification by
// name; it's domain knowledge grounded on the same file/rank bookkeeping
// isPassed and isConnected already use.
func isCandidate(own, enemy board.Bitboard, sq board.Square, white bool) bool {
	file, rank := sq.File(), sq.Rank()

	var enemyAhead int
	eb := enemy
	for eb != 0 {
		esq := eb.PopLSB()
		ef := esq.File()
		if ef < file-1 || ef > file+1 {
			continue
		}
		if white && esq.Rank() > rank {
			enemyAhead++
		} else if !white && esq.Rank() < rank {
			enemyAhead++
		}
	}
	if enemyAhead == 0 {
		return false
	}

	var ownSupport int
	ob := own
	for ob != 0 {
		osq := ob.PopLSB()
		if osq == sq {
			continue
		}
		of := osq.File()
		if of < file-1 || of > file+1 {
			continue
		}
		if white && osq.Rank() <= rank {
			ownSupport++
		} else if !white && osq.Rank() >= rank {
			ownSupport++
		}
	}
	return ownSupport >= enemyAhead
}

// holeSquares returns the squares in own's camp that no own pawn can ever
// defend (no own pawn stands on, or ahead on, either adjacent file), the
// same &^-adjacent-pawn-attack idea as the teacher's weakKingSquaresPenalty,
// generalized from the king zone to the camp as a whole since it depends
// only on pawn placement and is therefore safe to cache by pawn_king_key.
func holeSquares(own board.Bitboard, white bool) board.Bitboard {
	ownFiles := fileOccupancy(own)
	rankLo, rankHi := 2, 4
	if !white {
		rankLo, rankHi = 3, 5
	}
	var holes board.Bitboard
	for f := 0; f < 8; f++ {
		if ownFiles&adjacentFiles(f) != 0 {
			continue
		}
		for r := rankLo; r <= rankHi; r++ {
			holes |= sqBB(board.MakeSquare(f, r))
		}
	}
	return holes
}

// shelterScore rewards own pawns standing in front of the king on the
// king's file or an adjacent one, the spec's "shelter" term, grounded on the
// teacher's kingPawnDefense (pawns close to king) but restricted to the
// king's own file ±1 as the spec names.
func shelterScore(own board.Bitboard, ksq board.Square, white bool) int32 {
	kf := ksq.File()
	kr := ksq.Rank()
	var score int32
	bb := own
	for bb != 0 {
		sq := bb.PopLSB()
		f := sq.File()
		if f < kf-1 || f > kf+1 {
			continue
		}
		if white && sq.Rank() > kr {
			score += shelterPawnMG
		} else if !white && sq.Rank() < kr {
			score += shelterPawnMG
		}
	}
	return score
}

// passedPawnScore scores own's passed pawns (given in passed) against the
// live board: an unstoppable passer (the king-of-the-square race) scores a
// flat near-queening bonus (the race only applies once the enemy has no
// knight, bishop, rook or queen left); otherwise a quadratic-
// in-rank bonus is scaled down if the square just ahead of the pawn is
// enemy-controlled or up if it's own-defended, and further scaled by how
// much closer the attacking king is to the queening square than the
// defending king. This has no direct teacher equivalent (the teacher uses a
// flat PST instead, see DESIGN.md); it's built from the board primitives
// (AttackedBy, KingSquare) the rest of this package already uses.
func passedPawnScore(b *board.Board, passed board.Bitboard, white bool) (mg, eg int32) {
	them := board.Black
	if !white {
		them = board.White
	}
	us := them.Other()

	bb := passed
	for bb != 0 {
		sq := bb.PopLSB()
		rank := sq.Rank()
		advance := rank
		if !white {
			advance = 7 - rank
		}

		if unstoppablePasser(b, sq, white) {
			eg += unstoppablePasserBonus
			continue
		}

		base := int32(advance*advance) * 3

		var aheadSq board.Square
		if white {
			aheadSq = sq + 8
		} else {
			aheadSq = sq - 8
		}
		if aheadSq >= 0 && aheadSq < 64 {
			if b.AttackedBy(them, board.None).Has(aheadSq) {
				base = base * 2 / 3
			} else if b.AttackedBy(us, board.None).Has(aheadSq) {
				base = base * 4 / 3
			}
		}

		queenSq := board.MakeSquare(sq.File(), 7)
		if !white {
			queenSq = board.MakeSquare(sq.File(), 0)
		}
		proximity := chebyshevDistance(b.KingSquare(them), queenSq) - chebyshevDistance(b.KingSquare(us), queenSq)
		base += int32(proximity) * 4

		if base < 0 {
			base = 0
		}
		mg += base / 2
		eg += base
	}
	return mg, eg
}

// unstoppablePasser implements the king-of-the-square rule: with no enemy
// piece left that can reach the pawn's file in time, the pawn promotes
// untouched if the defending king can't beat it to the queening square
// (accounting for the side to move's extra tempo).
func unstoppablePasser(b *board.Board, sq board.Square, white bool) bool {
	them := board.Black
	if !white {
		them = board.White
	}
	if b.Pieces(them, board.Knight)|b.Pieces(them, board.Bishop)|b.Pieces(them, board.Rook)|b.Pieces(them, board.Queen) != 0 {
		return false
	}

	rank := sq.Rank()
	pawnDist := 7 - rank
	queenSq := board.MakeSquare(sq.File(), 7)
	if !white {
		pawnDist = rank
		queenSq = board.MakeSquare(sq.File(), 0)
	}

	kingDist := chebyshevDistance(b.KingSquare(them), queenSq)
	tempo := 0
	if b.SideToMove() == them {
		tempo = 1
	}
	return pawnDist < kingDist-tempo
}

func chebyshevDistance(a, b board.Square) int {
	df := a.File() - b.File()
	if df < 0 {
		df = -df
	}
	dr := a.Rank() - b.Rank()
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

// stormScore penalizes the defender for enemy pawns advancing on the king's
// file ±1, grounded on the teacher's evaluatePawnStorm (PawnStormBaseMG
// indexed by how far the pawn has advanced, reduced when a defending pawn
// blocks it directly), simplified to a single king-relative zone instead of
// the teacher's explicit same-side/opposite-side castling cases.
func stormScore(enemy board.Bitboard, ksq board.Square, enemyIsWhite bool) int32 {
	kf := ksq.File()
	var score int32
	bb := enemy
	for bb != 0 {
		sq := bb.PopLSB()
		f := sq.File()
		if f < kf-1 || f > kf+1 {
			continue
		}
		rank := sq.Rank()
		advance := rank
		if !enemyIsWhite {
			advance = 7 - rank
		}
		if advance < 0 || advance > 7 {
			continue
		}
		bonus := pawnStormBaseMG[advance]
		if bonus == 0 {
			continue
		}
		score += bonus
	}
	return score
}
