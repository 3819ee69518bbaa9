package chess

import (
	"fmt"
	"strings"
)

// Square addresses one cell of the board. Row 0 is Black's back rank, row 7 is
// White's; the algebraic rank is 8 - Row and the file letter is 'A' + Col.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

// String returns the algebraic cell name, e.g. "E4".
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("?(%d,%d)", s.Row, s.Col)
	}
	return fmt.Sprintf("%c%d", 'A'+s.Col, 8-s.Row)
}

// ParseSquare parses a cell name such as "e2" or "E2".
func ParseSquare(cell string) (Square, error) {
	c := strings.TrimSpace(cell)
	if len(c) != 2 {
		return Square{}, fmt.Errorf("%w: cell %q", ErrInvalidNotation, cell)
	}
	file := c[0]
	if file >= 'a' && file <= 'h' {
		file -= 'a' - 'A'
	}
	rank := c[1]
	if file < 'A' || file > 'H' || rank < '1' || rank > '8' {
		return Square{}, fmt.Errorf("%w: cell %q", ErrInvalidNotation, cell)
	}
	return Square{Row: 8 - int(rank-'0'), Col: int(file - 'A')}, nil
}

// MustSquare is ParseSquare for literals known to be valid.
func MustSquare(cell string) Square {
	sq, err := ParseSquare(cell)
	if err != nil {
		panic(err)
	}
	return sq
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
