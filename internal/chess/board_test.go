package chess

import (
	"errors"
	"strings"
	"testing"
)

// dump renders the board as newline-joined rows for equality checks.
func dump(b *Board) string { return strings.Join(b.Rows(), "\n") + "\n" }

// place builds a board from "<color><kind letter>@<cell>" tokens, e.g. "WK@E1".
func place(t *testing.T, tokens ...string) *Board {
	t.Helper()
	b := NewBoard()
	for _, s := range tokens {
		parts := strings.SplitN(s, "@", 2)
		if len(parts) != 2 || len(parts[0]) != 2 {
			t.Fatalf("bad piece token %q", s)
		}
		c := White
		if parts[0][0] == 'B' {
			c = Black
		}
		k := Kind(strings.IndexByte("PNBRQK", parts[0][1]))
		if k > King {
			t.Fatalf("bad kind in %q", s)
		}
		b.Place(MustSquare(parts[1]), &Piece{Kind: k, Color: c})
	}
	return b
}

func TestSquareRoundTrip(t *testing.T) {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			sq := Square{Row: r, Col: c}
			got, err := ParseSquare(sq.String())
			if err != nil || got != sq {
				t.Fatalf("round trip %v: got %v err %v", sq, got, err)
			}
		}
	}
	if sq := MustSquare("e2"); sq != (Square{Row: 6, Col: 4}) {
		t.Fatalf("e2 parsed as %v", sq)
	}
}

func TestParseSquareRejects(t *testing.T) {
	for _, in := range []string{"", "E", "E22", "I1", "A0", "A9", "11", "EE"} {
		if _, err := ParseSquare(in); !errors.Is(err, ErrInvalidNotation) {
			t.Fatalf("ParseSquare(%q) err = %v", in, err)
		}
	}
}

func TestStandardBoard(t *testing.T) {
	b := NewStandardBoard()
	want := "rnbqkbnr\npppppppp\n........\n........\n........\n........\nPPPPPPPP\nRNBQKBNR\n"
	if got := dump(b); got != want {
		t.Fatalf("opening board:\n%s", got)
	}
	if n := len(b.Pieces()); n != 32 {
		t.Fatalf("pieces = %d", n)
	}
	if k := b.King(White); k == nil || k.Square.String() != "E1" {
		t.Fatalf("white king = %v", k)
	}
}

func TestBoardMoveAndClone(t *testing.T) {
	b := place(t, "WR@A1", "BN@A5")
	cl := b.Clone()
	captured := b.Move(MustSquare("A1"), MustSquare("A5"))
	if captured == nil || captured.Kind != Knight {
		t.Fatalf("captured = %v", captured)
	}
	if p := b.At(MustSquare("A5")); p == nil || p.Kind != Rook || p.Square.String() != "A5" {
		t.Fatalf("A5 = %v", p)
	}
	if b.At(MustSquare("A1")) != nil {
		t.Fatalf("origin not cleared")
	}
	if p := cl.At(MustSquare("A1")); p == nil || p.Square.String() != "A1" {
		t.Fatalf("clone changed with original: %v", p)
	}
	if cl.At(MustSquare("A5")).Kind != Knight {
		t.Fatalf("clone lost knight")
	}
}
