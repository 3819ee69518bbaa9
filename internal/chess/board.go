package chess

// Board is a dense 8x8 store of optional occupants. It performs no rule
// validation; every mutation is visible to the next read.
type Board struct {
	cells [8][8]*Piece
}

func NewBoard() *Board { return &Board{} }

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStandardBoard returns the opening placement, White on ranks 1 and 2.
func NewStandardBoard() *Board {
	b := NewBoard()
	for col, k := range backRank {
		b.Place(Square{Row: 0, Col: col}, &Piece{Kind: k, Color: Black})
		b.Place(Square{Row: 1, Col: col}, &Piece{Kind: Pawn, Color: Black})
		b.Place(Square{Row: 6, Col: col}, &Piece{Kind: Pawn, Color: White})
		b.Place(Square{Row: 7, Col: col}, &Piece{Kind: k, Color: White})
	}
	return b
}

// At returns the occupant of sq, or nil.
func (b *Board) At(sq Square) *Piece {
	if !sq.Valid() {
		return nil
	}
	return b.cells[sq.Row][sq.Col]
}

// Place puts p on sq, replacing any occupant, and updates p.Square.
func (b *Board) Place(sq Square, p *Piece) {
	if !sq.Valid() {
		return
	}
	if p != nil {
		p.Square = sq
	}
	b.cells[sq.Row][sq.Col] = p
}

func (b *Board) Clear(sq Square) {
	if !sq.Valid() {
		return
	}
	b.cells[sq.Row][sq.Col] = nil
}

// Move relocates the occupant of from to to, dropping whatever stood on to.
// It returns the removed occupant, if any.
func (b *Board) Move(from, to Square) (captured *Piece) {
	p := b.At(from)
	if p == nil {
		return nil
	}
	captured = b.At(to)
	b.Clear(from)
	b.Place(to, p)
	return captured
}

// Pieces lists every occupant in row-major order.
func (b *Board) Pieces() []*Piece {
	out := make([]*Piece, 0, 32)
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if p := b.cells[r][c]; p != nil {
				out = append(out, p)
			}
		}
	}
	return out
}

// Clone deep-copies the board and its pieces.
func (b *Board) Clone() *Board {
	nb := &Board{}
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if p := b.cells[r][c]; p != nil {
				cp := *p
				nb.cells[r][c] = &cp
			}
		}
	}
	return nb
}

// King returns the first king of color c in row-major order.
func (b *Board) King(c Color) *Piece {
	for _, p := range b.Pieces() {
		if p.Kind == King && p.Color == c {
			return p
		}
	}
	return nil
}

// Rows renders the board top row first, one letter per square: upper case for
// White, lower case for Black, '.' for empty.
func (b *Board) Rows() []string {
	out := make([]string, 8)
	for r := 0; r < 8; r++ {
		row := make([]byte, 8)
		for c := 0; c < 8; c++ {
			row[c] = '.'
			if p := b.cells[r][c]; p != nil {
				row[c] = p.letter()
			}
		}
		out[r] = string(row)
	}
	return out
}
