// Package see implements static exchange evaluation: the net material gain
// of a capture sequence on one square, assuming both sides play the locally
// optimal recapture (least valuable attacker first).
package see

import "chess-engine/internal/board"

// pieceValue mirrors the teacher's SeePieceValue table; the king is given a
// value higher than any realistic material swing so a king "capture" during
// the simulated exchange never looks like a losing trade.
var pieceValue = [7]int{
	board.None:   0,
	board.Pawn:   100,
	board.Knight: 300,
	board.Bishop: 300,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   5000,
}

// Value returns the static exchange evaluation of playing m on b: the
// material b's side to move nets from the capture sequence on m.To(),
// assuming both sides recapture with their least valuable attacker at each
// step. Quiet moves (no initial capture) evaluate to 0.
func Value(b *board.Board, m board.Move) int {
	target := m.To()
	from := m.From()

	movingPiece, _ := b.PieceOn(from)
	var captured board.Piece
	if m.IsEnPassant() {
		captured = board.Pawn
	} else {
		captured, _ = b.PieceOn(target)
	}
	if captured == board.None {
		return 0
	}

	occ := b.Occupancy()
	occ &^= sqBB(from)
	if m.IsEnPassant() {
		capSq := target - 8
		if b.SideToMove() == board.Black {
			capSq = target + 8
		}
		occ &^= sqBB(capSq)
	}

	var gain [32]int
	depth := 0
	gain[0] = pieceValue[captured]

	attacker := movingPiece
	side := b.SideToMove().Other()

	for {
		depth++
		gain[depth] = pieceValue[attacker] - gain[depth-1]
		if max(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		sq, piece, ok := leastValuableAttacker(b, occ, target, side)
		if !ok {
			break
		}
		occ &^= sqBB(sq)
		attacker = piece
		side = side.Other()
	}

	for d := depth - 1; d > 0; d-- {
		gain[d-1] = -max(-gain[d-1], gain[d])
	}
	return gain[0]
}

// leastValuableAttacker finds the cheapest piece of side attacking target
// given occupancy occ, recomputing slider attacks against occ so that pieces
// already removed from the exchange no longer block x-rayed attackers.
func leastValuableAttacker(b *board.Board, occ board.Bitboard, target board.Square, side board.Color) (board.Square, board.Piece, bool) {
	for _, p := range []board.Piece{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King} {
		bb := attackersOfType(b, occ, target, side, p)
		if bb != 0 {
			return bb.LSB(), p, true
		}
	}
	return board.NoSquare, board.None, false
}

func attackersOfType(b *board.Board, occ board.Bitboard, target board.Square, side board.Color, p board.Piece) board.Bitboard {
	pieces := b.Pieces(side, p) & occ
	if pieces == 0 {
		return 0
	}
	switch p {
	case board.Pawn:
		return board.PawnAttacks(side.Other(), target) & pieces
	case board.Knight:
		return board.KnightAttacks(target) & pieces
	case board.King:
		return board.KingAttacks(target) & pieces
	case board.Bishop:
		return board.BishopAttacks(target, occ) & pieces
	case board.Rook:
		return board.RookAttacks(target, occ) & pieces
	case board.Queen:
		return (board.BishopAttacks(target, occ) | board.RookAttacks(target, occ)) & pieces
	}
	return 0
}

func sqBB(s board.Square) board.Bitboard { return board.Bitboard(1) << uint(s) }

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
