package chess

import (
	"fmt"
	"strings"
)

// MoveRequest is a parsed "<Kind> <From> <To>" line.
type MoveRequest struct {
	Kind Kind
	From Square
	To   Square
}

func (m MoveRequest) String() string {
	return fmt.Sprintf("%s %s %s", m.Kind, m.From, m.To)
}

// ParseMove parses text such as "Pawn E2 E4". Kind names and cell letters are
// case-insensitive; anything other than exactly three tokens is rejected.
func ParseMove(text string) (MoveRequest, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return MoveRequest{}, fmt.Errorf("%w: want \"<Kind> <From> <To>\", got %q", ErrInvalidNotation, text)
	}
	kind, err := ParseKind(fields[0])
	if err != nil {
		return MoveRequest{}, err
	}
	from, err := ParseSquare(fields[1])
	if err != nil {
		return MoveRequest{}, err
	}
	to, err := ParseSquare(fields[2])
	if err != nil {
		return MoveRequest{}, err
	}
	return MoveRequest{Kind: kind, From: from, To: to}, nil
}
