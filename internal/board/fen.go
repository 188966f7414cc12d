package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedFEN is returned by SetFEN when the record cannot be parsed.
// Per spec 7, the board is left in a well-defined empty state on failure.
var ErrMalformedFEN = errors.New("board: malformed FEN")

var fenPieceOf = map[byte]Piece{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

// SetFEN resets the board to the position described by a standard six-field
// FEN record. Missing halfmove/fullmove fields default to 0 and 1 (spec 6).
// On malformed input the board is reset to empty, side=White and the error
// is returned; the caller may issue another `position` command to recover.
func (b *Board) SetFEN(fen string) error {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		b.reset()
		return fmt.Errorf("%w: need at least 4 fields, got %d", ErrMalformedFEN, len(fields))
	}

	b.reset()
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		b.reset()
		return fmt.Errorf("%w: expected 8 ranks, got %d", ErrMalformedFEN, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if file > 8 {
				b.reset()
				return fmt.Errorf("%w: rank %q overflows", ErrMalformedFEN, rankStr)
			}
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			lower := byte(ch)
			if lower >= 'A' && lower <= 'Z' {
				lower += 'a' - 'A'
			}
			pt, ok := fenPieceOf[lower]
			if !ok {
				b.reset()
				return fmt.Errorf("%w: bad piece char %q", ErrMalformedFEN, string(ch))
			}
			col := White
			if ch >= 'a' && ch <= 'z' {
				col = Black
			}
			if file > 7 {
				b.reset()
				return fmt.Errorf("%w: rank %q overflows", ErrMalformedFEN, rankStr)
			}
			b.addPiece(col, pt, MakeSquare(file, rank))
			file++
		}
	}

	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
		b.cur().Key ^= sideKey
	default:
		b.reset()
		return fmt.Errorf("%w: bad side to move %q", ErrMalformedFEN, fields[1])
	}

	var cr CastleRights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				cr |= WhiteKingside
			case 'Q':
				cr |= WhiteQueenside
			case 'k':
				cr |= BlackKingside
			case 'q':
				cr |= BlackQueenside
			default:
				b.reset()
				return fmt.Errorf("%w: bad castling field %q", ErrMalformedFEN, fields[2])
			}
		}
	}
	b.cur().CastlingRights = cr
	b.cur().Key ^= castleKey[cr]

	ep := NoSquare
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			b.reset()
			return fmt.Errorf("%w: bad en passant field %q", ErrMalformedFEN, fields[3])
		}
		ep = sq
	}
	b.cur().EPSquare = ep
	if ep != NoSquare {
		b.cur().Key ^= epFileKey[ep.File()]
	}

	halfmove := 0
	fullmove := 1
	if len(fields) >= 5 {
		if v, err := strconv.Atoi(fields[4]); err == nil {
			halfmove = v
		}
	}
	if len(fields) >= 6 {
		if v, err := strconv.Atoi(fields[5]); err == nil && v > 0 {
			fullmove = v
		}
	}
	b.cur().Rule50 = halfmove
	b.fullmove = fullmove

	b.recomputeDerived()
	return nil
}

func (b *Board) reset() {
	b.pieceBB = [2][7]Bitboard{}
	b.occColor = [2]Bitboard{}
	b.squarePiece = [64]Piece{}
	b.kingSq = [2]Square{NoSquare, NoSquare}
	b.sideToMove = White
	b.fullmove = 1
	b.sp = 0
	b.st = b.st[:1]
	b.st[0] = PlyState{EPSquare: NoSquare}
}

// FEN renders the current position as a standard FEN record.
func (b *Board) FEN() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			s := MakeSquare(f, r)
			p := b.squarePiece[s]
			if p == None {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			ch := p.String()
			if b.occColor[Black].Has(s) {
				ch = strings.ToLower(ch)
			}
			sb.WriteString(ch)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	if b.sideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}
	cr := b.cur().CastlingRights
	if cr == 0 {
		sb.WriteByte('-')
	} else {
		if cr&WhiteKingside != 0 {
			sb.WriteByte('K')
		}
		if cr&WhiteQueenside != 0 {
			sb.WriteByte('Q')
		}
		if cr&BlackKingside != 0 {
			sb.WriteByte('k')
		}
		if cr&BlackQueenside != 0 {
			sb.WriteByte('q')
		}
	}
	sb.WriteByte(' ')
	if b.cur().EPSquare == NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(b.cur().EPSquare.String())
	}
	sb.WriteString(fmt.Sprintf(" %d %d", b.cur().Rule50, b.fullmove))
	return sb.String()
}
