package board

// pushPly duplicates the current ply state onto a new top-of-stack slot,
// growing the backing slice if needed, and advances the stack pointer.
func (b *Board) pushPly() {
	for len(b.st) <= b.sp+1 {
		b.st = append(b.st, PlyState{})
	}
	b.st[b.sp+1] = b.st[b.sp]
	b.sp++
}

func castleClearMask(sq Square) CastleRights {
	switch sq {
	case 0:
		return WhiteQueenside
	case 4:
		return WhiteKingside | WhiteQueenside
	case 7:
		return WhiteKingside
	case 56:
		return BlackQueenside
	case 60:
		return BlackKingside | BlackQueenside
	case 63:
		return BlackKingside
	}
	return 0
}

// Play applies a pseudo-legal, non-null move: pushes a new ply state, moves
// pieces (handling capture, promotion, castling, en passant), updates
// castling rights, en-passant square and the 50-move counter, flips the
// side to move, and recomputes attacked/pinned/checkers from scratch.
func (b *Board) Play(m Move) {
	b.pushPly()
	st := b.cur()
	us := b.sideToMove
	them := us.Other()
	from, to := m.From(), m.To()

	st.LastMove = m
	st.CapturedPiece = None

	if st.EPSquare != NoSquare {
		st.Key ^= epFileKey[st.EPSquare.File()]
		st.EPSquare = NoSquare
	}

	movingPiece := b.squarePiece[from]

	if m.IsEnPassant() {
		var capSq Square
		if us == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
		st.CapturedPiece = Pawn
		b.removePiece(them, capSq)
	} else if captured := b.squarePiece[to]; captured != None {
		st.CapturedPiece = captured
		b.removePiece(them, to)
	}

	b.removePiece(us, from)
	placed := movingPiece
	if m.IsPromotion() {
		placed = m.Promotion().Piece()
	}
	b.addPiece(us, placed, to)

	if m.IsCastle() {
		var rFrom, rTo Square
		switch to {
		case 6:
			rFrom, rTo = 7, 5
		case 2:
			rFrom, rTo = 0, 3
		case 62:
			rFrom, rTo = 63, 61
		case 58:
			rFrom, rTo = 56, 59
		}
		b.removePiece(us, rFrom)
		b.addPiece(us, Rook, rTo)
	}

	oldCR := st.CastlingRights
	newCR := oldCR &^ (castleClearMask(from) | castleClearMask(to))
	if newCR != oldCR {
		st.Key ^= castleKey[oldCR]
		st.CastlingRights = newCR
		st.Key ^= castleKey[newCR]
	}

	if movingPiece == Pawn {
		diff := int(to) - int(from)
		if diff == 16 || diff == -16 {
			epSq := from + Square((int(to)-int(from))/2)
			st.EPSquare = epSq
			st.Key ^= epFileKey[epSq.File()]
		}
	}

	if movingPiece == Pawn || st.CapturedPiece != None {
		st.Rule50 = 0
	} else {
		st.Rule50++
	}

	b.sideToMove = them
	st.Key ^= sideKey
	if us == Black {
		b.fullmove++
	}

	b.recomputeDerived()
}

// Undo reverses the most recently played move and pops the ply stack.
func (b *Board) Undo() {
	st := b.cur()
	m := st.LastMove
	us := b.sideToMove.Other()
	them := b.sideToMove
	from, to := m.From(), m.To()

	movedAtTo := b.squarePiece[to]
	b.removePiece(us, to)
	orig := movedAtTo
	if m.IsPromotion() {
		orig = Pawn
	}
	b.addPiece(us, orig, from)

	if m.IsCastle() {
		var rFrom, rTo Square
		switch to {
		case 6:
			rFrom, rTo = 7, 5
		case 2:
			rFrom, rTo = 0, 3
		case 62:
			rFrom, rTo = 63, 61
		case 58:
			rFrom, rTo = 56, 59
		}
		b.removePiece(us, rTo)
		b.addPiece(us, Rook, rFrom)
	}

	if m.IsEnPassant() {
		var capSq Square
		if us == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
		b.addPiece(them, Pawn, capSq)
	} else if st.CapturedPiece != None {
		b.addPiece(them, st.CapturedPiece, to)
	}

	if us == Black {
		b.fullmove--
	}
	b.sideToMove = us
	b.sp--
}

// PlayNull makes the null move: legal only when not in check (callers must
// check InCheck() first). It flips the turn, clears the en-passant square,
// increments the 50-move counter, and recomputes derived state.
func (b *Board) PlayNull() {
	b.pushPly()
	st := b.cur()
	st.LastMove = NullMove
	st.CapturedPiece = None
	if st.EPSquare != NoSquare {
		st.Key ^= epFileKey[st.EPSquare.File()]
		st.EPSquare = NoSquare
	}
	st.Rule50++
	b.sideToMove = b.sideToMove.Other()
	st.Key ^= sideKey
	b.recomputeDerived()
}

// UndoNull reverses PlayNull.
func (b *Board) UndoNull() {
	b.sideToMove = b.sideToMove.Other()
	b.sp--
}

// PlayUCI applies a long-algebraic move string (e.g. "e2e4", "e7e8q") if it
// is legal in the current position. It returns false (board unchanged) if
// the move is malformed or illegal, per spec 7's handling of bad move lists.
func (b *Board) PlayUCI(s string) bool {
	if len(s) < 4 {
		return false
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return false
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return false
	}
	moves := b.GenerateMoves(GenAllLegal, make([]Move, 0, 64))
	for _, m := range moves {
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() {
			if len(s) < 5 {
				continue
			}
			want := promoFromLetter(s[4])
			if m.Promotion() != want {
				continue
			}
		}
		b.Play(m)
		return true
	}
	return false
}

func promoFromLetter(c byte) PromoPiece {
	switch c {
	case 'n', 'N':
		return PromoKnight
	case 'b', 'B':
		return PromoBishop
	case 'r', 'R':
		return PromoRook
	default:
		return PromoQueen
	}
}
