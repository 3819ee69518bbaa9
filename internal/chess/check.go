package chess

import "fmt"

// InCheck reports whether any piece of c's opponent threatens c's king.
func InCheck(b *Board, c Color) (bool, error) {
	king := b.King(c)
	if king == nil {
		return false, fmt.Errorf("%w: %s", ErrMissingKing, c)
	}
	for _, p := range b.Pieces() {
		if p.Color != c && Threatens(b, p, king.Square) {
			return true, nil
		}
	}
	return false, nil
}

// IsCheckmate reports whether c is in check with no move that removes it.
// Candidate moves are played on a scratch clone; b is never modified.
func IsCheckmate(b *Board, c Color) (bool, error) {
	checked, err := InCheck(b, c)
	if err != nil || !checked {
		return false, err
	}
	for _, p := range b.Pieces() {
		if p.Color != c {
			continue
		}
		for r := 0; r < 8; r++ {
			for col := 0; col < 8; col++ {
				to := Square{Row: r, Col: col}
				if checkShape(b, p, to) != nil {
					continue
				}
				scratch := b.Clone()
				scratch.Move(p.Square, to)
				still, err := InCheck(scratch, c)
				if err != nil {
					return false, err
				}
				if !still {
					return false, nil
				}
			}
		}
	}
	return true, nil
}
