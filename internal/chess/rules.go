package chess

import "fmt"

// CanReach reports whether p can move to target on b, ignoring what the move
// would do to either king. A friendly occupant on target always fails. Pawn
// diagonal captures are not part of this predicate; see Threatens.
func CanReach(b *Board, p *Piece, target Square) bool {
	if p == nil || !target.Valid() || target == p.Square {
		return false
	}
	occ := b.At(target)
	if occ != nil && occ.Color == p.Color {
		return false
	}
	from := p.Square
	dr, dc := target.Row-from.Row, target.Col-from.Col
	switch p.Kind {
	case Pawn:
		return occ == nil && pawnPush(b, p, target)
	case Knight:
		return knightStep(dr, dc)
	case Bishop:
		return diagonal(dr, dc) && pathClear(b, from, target)
	case Rook:
		return straight(dr, dc) && pathClear(b, from, target)
	case Queen:
		return (diagonal(dr, dc) || straight(dr, dc)) && pathClear(b, from, target)
	case King:
		return kingStep(dr, dc)
	}
	return false
}

// Threatens reports whether p could capture an occupant of target, whether or
// not one is there.
func Threatens(b *Board, p *Piece, target Square) bool {
	if p == nil || !target.Valid() || target == p.Square {
		return false
	}
	dr, dc := target.Row-p.Square.Row, target.Col-p.Square.Col
	switch p.Kind {
	case Pawn:
		return dr == forward(p.Color) && abs(dc) == 1
	case Knight:
		return knightStep(dr, dc)
	case King:
		return kingStep(dr, dc)
	case Bishop, Rook, Queen:
		return CanReach(b, p, target)
	}
	return false
}

// checkShape applies the per-move legality that precedes king-safety: the
// friendly, reach and capture-eligibility tests, in that order.
func checkShape(b *Board, p *Piece, to Square) error {
	occ := b.At(to)
	switch {
	case occ != nil && occ.Color == p.Color:
		return fmt.Errorf("%w: %s on %s", ErrFriendlyOccupied, occ.Kind, to)
	case occ == nil:
		if !CanReach(b, p, to) {
			return fmt.Errorf("%w: %s %s to %s", ErrIllegalShape, p.Kind, p.Square, to)
		}
		return nil
	}
	if occ.Kind == King {
		return fmt.Errorf("%w: kings are never captured", ErrCaptureNotAllowed)
	}
	if !Threatens(b, p, to) {
		if p.Kind == Pawn && pawnPush(b, p, to) {
			return fmt.Errorf("%w: pawn cannot capture straight ahead", ErrCaptureNotAllowed)
		}
		return fmt.Errorf("%w: %s %s to %s", ErrIllegalShape, p.Kind, p.Square, to)
	}
	return nil
}

// pawnPush checks the straight-advance geometry without looking at target's
// occupant: one step, or two from the start row over an empty square.
func pawnPush(b *Board, p *Piece, target Square) bool {
	dr, dc := target.Row-p.Square.Row, target.Col-p.Square.Col
	if dc != 0 {
		return false
	}
	f := forward(p.Color)
	switch dr {
	case f:
		return true
	case 2 * f:
		mid := Square{Row: p.Square.Row + f, Col: p.Square.Col}
		return p.Square.Row == startRow(p.Color) && b.At(mid) == nil
	}
	return false
}

// pathClear scans every piece and fails if one lies strictly between from and
// to on their shared rank, file or diagonal. Color does not matter.
func pathClear(b *Board, from, to Square) bool {
	for _, q := range b.Pieces() {
		if q.Square == from || q.Square == to {
			continue
		}
		if between(from, to, q.Square) {
			return false
		}
	}
	return true
}

func between(from, to, sq Square) bool {
	dr, dc := to.Row-from.Row, to.Col-from.Col
	if !straight(dr, dc) && !diagonal(dr, dc) {
		return false
	}
	n := max(abs(dr), abs(dc))
	qr, qc := sq.Row-from.Row, sq.Col-from.Col
	k := max(abs(qr), abs(qc))
	return k > 0 && k < n && qr == k*sign(dr) && qc == k*sign(dc)
}

func straight(dr, dc int) bool { return (dr == 0) != (dc == 0) }

func diagonal(dr, dc int) bool { return dr != 0 && abs(dr) == abs(dc) }

func knightStep(dr, dc int) bool {
	return (abs(dr) == 1 && abs(dc) == 2) || (abs(dr) == 2 && abs(dc) == 1)
}

func kingStep(dr, dc int) bool {
	return (dr != 0 || dc != 0) && abs(dr) <= 1 && abs(dc) <= 1
}
