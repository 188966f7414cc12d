// Package eval scores a position from the side-to-move's perspective using
// a phase-interpolated blend of material+PST (tracked incrementally on the
// board itself), mobility, pawn structure, king safety and piece-specific
// bonuses.
package eval

import "chess-engine/internal/board"

// Phase weights and the MG/EG blend denominator, mirroring the teacher's
// GetPiecePhase/TotalPhase split (knight/bishop=1, rook=2, queen=4, 24 total).
const (
	knightPhase = 1
	bishopPhase = 1
	rookPhase   = 2
	queenPhase  = 4
	totalPhase  = knightPhase*4 + bishopPhase*4 + rookPhase*4 + queenPhase*2
)

// TempoBonus resolves spec's Open Question (b): a conservative centipawn
// bonus for the side to move, added as a flat amount after phase
// interpolation.
const TempoBonus = 10

const drawDivider = 8

var mobilityMG = [7]int32{board.Knight: 2, board.Bishop: 3, board.Rook: 2, board.Queen: 1}
var mobilityEG = [7]int32{board.Knight: 3, board.Bishop: 2, board.Rook: 4, board.Queen: 4}

var bishopPairMG int32 = 10
var bishopPairEG int32 = 50

var rookSemiOpenMG int32 = 13
var rookOpenMG int32 = 30
var rookSeventhEG int32 = 10
var queenSeventhEG int32 = 6
var trappedMinorMG int32 = 40

var isolatedPawnMG int32 = 6
var isolatedPawnEG int32 = 7
var doubledPawnMG int32 = 4
var doubledPawnEG int32 = 17
var connectedPawnMG int32 = 14
var connectedPawnEG int32 = 8
var backwardPawnMG int32 = 1
var backwardPawnEG int32 = 4
var candidatePawnMG int32 = 5
var candidatePawnEG int32 = 9
var holeSquareMG int32 = 3
var holeSquareEG int32 = 1
var shelterPawnMG int32 = 4

// pawnStormBaseMG mirrors the teacher's PawnStormBaseMG: indexed by how far
// (0-7 ranks) the storming pawn has advanced toward the defender's king.
var pawnStormBaseMG = [8]int32{0, 0, 0, 5, 10, 20, 30, 0}

var unstoppablePasserBonus int32 = 650

var kingAttackWeight = [7]int32{board.Knight: 2, board.Bishop: 2, board.Rook: 3, board.Queen: 5}

// pawnEntry caches per-side pawn-structure bitboards and their MG/EG score,
// keyed by the board's restricted pawn/king zobrist key (spec 3's
// pawn_king_key), the way the teacher keys its own pawn hash off the raw
// pawn bitboards.
type pawnEntry struct {
	key     uint64
	valid   bool
	mg      int32
	eg      int32
	wPassed board.Bitboard
	bPassed board.Bitboard
}

const pawnHashSize = 1 << 14

// Cache is a per-search-thread scratch area: a small pawn-structure hash and
// a small whole-position eval hash, matching spec 4.5's "small pawn-hash and
// eval-hash caches" note. It is not safe for concurrent use across threads.
type Cache struct {
	pawn [pawnHashSize]pawnEntry
	pos  [evalHashSize]posEntry
}

type posEntry struct {
	key   uint64
	valid bool
	score int32
}

const evalHashSize = 1 << 15

// NewCache returns an empty evaluation cache.
func NewCache() *Cache { return &Cache{} }

// Evaluate scores b from the side-to-move's perspective, in centipawns.
func (c *Cache) Evaluate(b *board.Board) int32 {
	key := b.Key()
	idx := key & (evalHashSize - 1)
	if e := &c.pos[idx]; e.valid && e.key == key {
		return e.score
	}

	score := c.evaluateWhitePerspective(b)

	toMove := int32(TempoBonus)
	if b.SideToMove() == board.Black {
		toMove = -toMove
	}
	score += toMove

	if b.IsInsufficientMaterial() {
		score /= drawDivider
	}

	if b.SideToMove() == board.Black {
		score = -score
	}

	c.pos[idx] = posEntry{key: key, valid: true, score: score}
	return score
}

// evaluateWhitePerspective sums material+PST (tracked incrementally on the
// board), mobility, king safety and pawn-structure terms, phase-interpolated
// between the opening and endgame tables, from White's point of view.
func (c *Cache) evaluateWhitePerspective(b *board.Board) int32 {
	wMG, wEG := b.PSQ(board.White)
	bMG, bEG := b.PSQ(board.Black)
	mg := wMG - bMG
	eg := wEG - bEG

	mobMG, mobEG := mobilityScore(b)
	mg += mobMG
	eg += mobEG

	if b.Pieces(board.White, board.Bishop).Count() >= 2 {
		mg += bishopPairMG
		eg += bishopPairEG
	}
	if b.Pieces(board.Black, board.Bishop).Count() >= 2 {
		mg -= bishopPairMG
		eg -= bishopPairEG
	}

	rmg, reg := rookFileScore(b)
	mg += rmg
	eg += reg

	pmg, peg := c.pawnStructureScore(b)
	mg += pmg
	eg += peg

	qmg, qeg := queenSeventhScore(b)
	mg += qmg
	eg += qeg

	tmg, teg := trappedMinorScore(b)
	mg += tmg
	eg += teg

	kmg, keg := kingSafetyScore(b)
	mg += kmg
	eg += keg

	phase := piecePhase(b)
	mgWeight := phase
	egWeight := totalPhase - phase
	if mgWeight > totalPhase {
		mgWeight = totalPhase
	}
	return int32((int64(mg)*int64(mgWeight) + int64(eg)*int64(egWeight)) / int64(totalPhase))
}

func piecePhase(b *board.Board) int {
	phase := 0
	phase += b.Pieces(board.White, board.Knight).Count()*knightPhase + b.Pieces(board.Black, board.Knight).Count()*knightPhase
	phase += b.Pieces(board.White, board.Bishop).Count()*bishopPhase + b.Pieces(board.Black, board.Bishop).Count()*bishopPhase
	phase += b.Pieces(board.White, board.Rook).Count()*rookPhase + b.Pieces(board.Black, board.Rook).Count()*rookPhase
	phase += b.Pieces(board.White, board.Queen).Count()*queenPhase + b.Pieces(board.Black, board.Queen).Count()*queenPhase
	if phase > totalPhase {
		phase = totalPhase
	}
	return phase
}

// mobilityScore counts, per non-pawn piece type, the squares attacked by the
// union of that type's pieces that aren't occupied by a friendly piece,
// weighted by mobilityMG/EG. The
// per-piece attack bitboards are already maintained in PlyState.Attacked by
// recomputeDerived, so this is a lookup rather than a recomputation.
func mobilityScore(b *board.Board) (mg, eg int32) {
	for _, c := range [2]board.Color{board.White, board.Black} {
		sign := int32(1)
		if c == board.Black {
			sign = -1
		}
		own := b.ColorOccupancy(c)
		for _, p := range [4]board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
			n := int32((b.AttackedBy(c, p) &^ own).Count())
			mg += sign * n * mobilityMG[p]
			eg += sign * n * mobilityEG[p]
		}
	}
	return mg, eg
}

func rookFileScore(b *board.Board) (mg, eg int32) {
	whiteFiles := fileOccupancy(b.Pieces(board.White, board.Pawn))
	blackFiles := fileOccupancy(b.Pieces(board.Black, board.Pawn))

	for _, c := range [2]board.Color{board.White, board.Black} {
		sign := int32(1)
		them := c.Other()
		own, enemy := whiteFiles, blackFiles
		seventh := board.Bitboard(0x00FF000000000000)
		if c == board.Black {
			sign = -1
			own, enemy = blackFiles, whiteFiles
			seventh = 0xFF00
		}
		dangerous := seventhRankDangerous(b, c, them)
		rooks := b.Pieces(c, board.Rook)
		for rooks != 0 {
			sq := rooks.PopLSB()
			file := uint(1) << uint(sq.File())
			if own&file == 0 && enemy&file == 0 {
				mg += sign * rookOpenMG
			} else if own&file == 0 {
				mg += sign * rookSemiOpenMG
			}
			if seventh.Has(sq) && dangerous {
				eg += sign * rookSeventhEG
			}
		}
	}
	return mg, eg
}

// seventhRankDangerous reports whether a rook/queen belonging to c standing
// on c's 7th rank is actually dangerous there: the spec's "when enemy king
// on 8th or enemy pawns on 7th" condition, as opposed to an empty 7th rank
// where the piece is just sitting on an arbitrary square. No teacher
// equivalent gates this; the teacher's rookSeventhRankBonus is unconditional.
func seventhRankDangerous(b *board.Board, c, them board.Color) bool {
	backRank := 7
	seventh := board.Bitboard(0x00FF000000000000)
	if c == board.Black {
		backRank = 0
		seventh = 0xFF00
	}
	if b.KingSquare(them).Rank() == backRank {
		return true
	}
	return b.Pieces(them, board.Pawn)&seventh != 0
}

// queenSeventhScore mirrors rookFileScore's 7th-rank bonus for queens, under
// the same dangerous-7th-rank condition; the teacher has no queen-7th term
// at all, this is supplemented from the same rook idea.
func queenSeventhScore(b *board.Board) (mg, eg int32) {
	for _, c := range [2]board.Color{board.White, board.Black} {
		sign := int32(1)
		them := c.Other()
		seventh := board.Bitboard(0x00FF000000000000)
		if c == board.Black {
			sign = -1
			seventh = 0xFF00
		}
		if !seventhRankDangerous(b, c, them) {
			continue
		}
		queens := b.Pieces(c, board.Queen)
		for queens != 0 {
			sq := queens.PopLSB()
			if seventh.Has(sq) {
				eg += sign * queenSeventhEG
			}
		}
	}
	return mg, eg
}

// trappedMinorScore penalizes a knight or bishop with no square to move to
// that isn't itself attacked by an enemy pawn — the generic shape of the
// classic trapped-knight-on-a8/h8 and trapped-bishop-behind-own-pawn
// patterns, without enumerating the specific squares by name. No teacher or
// original_source equivalent exists; this is domain knowledge built on the
// same AttacksFor/AttackedBy primitives mobilityScore already uses.
func trappedMinorScore(b *board.Board) (mg, eg int32) {
	occ := b.Occupancy()
	for _, c := range [2]board.Color{board.White, board.Black} {
		sign := int32(1)
		them := c.Other()
		if c == board.Black {
			sign = -1
		}
		own := b.ColorOccupancy(c)
		enemyPawnAttacks := b.AttackedBy(them, board.Pawn)
		for _, p := range [2]board.Piece{board.Knight, board.Bishop} {
			bb := b.Pieces(c, p)
			for bb != 0 {
				sq := bb.PopLSB()
				attacks := board.AttacksFor(p, c, sq, occ) &^ own
				if attacks&^enemyPawnAttacks == 0 {
					mg -= sign * trappedMinorMG
				}
			}
		}
	}
	return mg, eg
}

func fileOccupancy(pawns board.Bitboard) uint {
	var files uint
	for pawns != 0 {
		sq := pawns.PopLSB()
		files |= 1 << uint(sq.File())
	}
	return files
}

var kingSafetyDistanceMG int32 = 4

// kingSafetyScore penalizes a king for nearby enemy attackers, weighted by
// attacker piece type, mirroring the teacher's attacker-unit accumulation
// (evaluation.go's kingAttackCountPenalty). The zone is the king's own
// king-move neighborhood for every attacker type except knights, which get
// the knight-move neighborhood added to it (a knight can threaten the zone
// from a square a king-move zone would miss), and only "not solid" squares —
// ones not defended by a friendly pawn or occupied by an enemy pawn — count,
// the same &^-filtering idea as the teacher's weakKingSquaresPenalty. A
// per-king-square distance-to-safety term adds a flat penalty for how far
// the king has strayed from its own back-rank corners.
func kingSafetyScore(b *board.Board) (mg, eg int32) {
	for _, c := range [2]board.Color{board.White, board.Black} {
		sign := int32(1)
		them := c.Other()
		if c == board.Black {
			sign = -1
		}
		ksq := b.KingSquare(c)
		kingZone := board.KingAttacks(ksq) | board.Bitboard(1)<<uint(ksq)
		knightZone := board.KnightAttacks(ksq) | kingZone

		solid := b.AttackedBy(c, board.Pawn) | b.Pieces(them, board.Pawn)
		kingZone &^= solid
		knightZone &^= solid

		var units int32
		for _, p := range [4]board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
			zone := kingZone
			if p == board.Knight {
				zone = knightZone
			}
			units += int32((b.AttackedBy(them, p) & zone).Count()) * kingAttackWeight[p]
		}
		mg -= sign * units * 2

		mg -= sign * kingDistanceToSafety(ksq, c == board.White) * kingSafetyDistanceMG
	}
	return mg, eg
}

// kingDistanceToSafety measures how far ksq has strayed from the nearest of
// its own back-rank corners, the sheltered squares a castled king starts
// from — grounded on the same distance-based shape as the teacher's
// kingEndGameCentralizationPenalty/getKingMopUpBonus, applied here to the
// opening/middlegame king instead of the endgame mop-up king.
func kingDistanceToSafety(ksq board.Square, white bool) int32 {
	backRank := 7
	if white {
		backRank = 0
	}
	a := chebyshevDistance(ksq, board.MakeSquare(0, backRank))
	h := chebyshevDistance(ksq, board.MakeSquare(7, backRank))
	if a < h {
		return int32(a)
	}
	return int32(h)
}
