package board

import "math/rand"

// Zobrist keys. pieceKey is indexed [color][piece][square]; piece index 0
// (None) is unused but kept so callers can index by board.Piece directly.
var pieceKey [2][7][64]uint64
var castleKey [16]uint64
var epFileKey [8]uint64
var sideKey uint64

func init() {
	rnd := rand.New(rand.NewSource(0x5EED5EEDC0FFEE))
	for c := 0; c < 2; c++ {
		for p := Pawn; p <= King; p++ {
			for s := 0; s < 64; s++ {
				pieceKey[c][p][s] = rnd.Uint64()
			}
		}
	}
	for i := range castleKey {
		castleKey[i] = rnd.Uint64()
	}
	for i := range epFileKey {
		epFileKey[i] = rnd.Uint64()
	}
	sideKey = rnd.Uint64()
}

// pawnKingComponent returns the piece-square zobrist key of p on s when p is
// a pawn or a king, and 0 for every other piece; PawnKingKey is the XOR of
// these components (spec 3's pawn_king_key). The side to move is not part of
// PawnKingKey: sideKey is folded into the full key only.
func pawnKingComponent(c Color, p Piece, s Square) uint64 {
	if p != Pawn && p != King {
		return 0
	}
	return pieceKey[c][p][s]
}
