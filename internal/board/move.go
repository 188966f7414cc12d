package board

import "strings"

// Move packs a chess move into 16 bits: from:6, to:6, promotion:2, flag:2.
// The zero value is the distinguished null move.
type Move uint16

// Move flags.
const (
	FlagNormal Move = iota
	FlagEnPassant
	FlagPromotion
	FlagCastle
)

const (
	moveFromMask  = 0x3F
	moveToShift   = 6
	moveToMask    = 0x3F
	movePromoShift = 12
	movePromoMask  = 0x3
	moveFlagShift  = 14
	moveFlagMask   = 0x3
)

// PromoPiece enumerates the 2-bit promotion encoding used inside Move.
type PromoPiece uint8

const (
	PromoKnight PromoPiece = iota
	PromoBishop
	PromoRook
	PromoQueen
)

func (p PromoPiece) Piece() Piece {
	switch p {
	case PromoKnight:
		return Knight
	case PromoBishop:
		return Bishop
	case PromoRook:
		return Rook
	default:
		return Queen
	}
}

func promoFromPiece(p Piece) PromoPiece {
	switch p {
	case Knight:
		return PromoKnight
	case Bishop:
		return PromoBishop
	case Rook:
		return PromoRook
	default:
		return PromoQueen
	}
}

// NewMove builds a move from its fields. promo is ignored unless flag is FlagPromotion.
func NewMove(from, to Square, flag Move, promo PromoPiece) Move {
	m := Move(from&moveFromMask) | (Move(to&moveToMask) << moveToShift) | ((flag & moveFlagMask) << moveFlagShift)
	if flag == FlagPromotion {
		m |= Move(promo&movePromoMask) << movePromoShift
	}
	return m
}

func (m Move) From() Square { return Square(m & moveFromMask) }
func (m Move) To() Square   { return Square((m >> moveToShift) & moveToMask) }
func (m Move) Flag() Move   { return (m >> moveFlagShift) & moveFlagMask }
func (m Move) Promotion() PromoPiece {
	return PromoPiece((m >> movePromoShift) & movePromoMask)
}
func (m Move) IsPromotion() bool { return m.Flag() == FlagPromotion }
func (m Move) IsEnPassant() bool { return m.Flag() == FlagEnPassant }
func (m Move) IsCastle() bool    { return m.Flag() == FlagCastle }

// IsNull reports whether m is the distinguished null move.
func (m Move) IsNull() bool { return m == 0 }

// Equal compares moves by (from, to, flag); promotion only matters when flag is FlagPromotion.
func (m Move) Equal(o Move) bool {
	if m.From() != o.From() || m.To() != o.To() || m.Flag() != o.Flag() {
		return false
	}
	if m.Flag() == FlagPromotion && m.Promotion() != o.Promotion() {
		return false
	}
	return true
}

// String renders the move in long algebraic form, e.g. "e2e4", "e7e8q".
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += strings.ToLower(m.Promotion().Piece().String())
	}
	return s
}

// NullMove is the all-zero distinguished null move.
const NullMove Move = 0
