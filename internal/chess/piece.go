package chess

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Color identifies a side.
type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(c.String()))
}

func (c *Color) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts "white"/"w" and "black"/"b" in any case.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	default:
		return White, fmt.Errorf("unknown color %q", s)
	}
}

// Kind is the closed set of piece kinds.
type Kind uint8

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{
	Pawn:   "Pawn",
	Knight: "Knight",
	Bishop: "Bishop",
	Rook:   "Rook",
	Queen:  "Queen",
	King:   "King",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind matches a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := strings.TrimSpace(s)
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(k), nil
		}
	}
	return Pawn, fmt.Errorf("%w: piece kind %q", ErrInvalidNotation, s)
}

// Sliding reports whether the kind is blocked by intervening pieces.
func (k Kind) Sliding() bool {
	return k == Bishop || k == Rook || k == Queen
}

// Piece is a board occupant. Kind and Color never change; Square is kept in
// sync by the Board that owns the piece.
type Piece struct {
	Kind   Kind   `json:"kind"`
	Color  Color  `json:"color"`
	Square Square `json:"square"`
}

func (p *Piece) String() string {
	if p == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s %s@%s", p.Color, p.Kind, p.Square)
}

// startRow is the row a pawn of color c starts on.
func startRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// forward is the row delta of one pawn step for color c.
func forward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func (p *Piece) letter() byte {
	l := "PNBRQK"[p.Kind]
	if p.Color == Black {
		l += 'a' - 'A'
	}
	return l
}
