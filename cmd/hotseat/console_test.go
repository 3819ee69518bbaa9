package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/park285/chess-session/internal/msgcat"
)

func play(t *testing.T, input string) string {
	t.Helper()
	color.NoColor = true
	cat, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat: %v", err)
	}
	var out bytes.Buffer
	c := newConsole(strings.NewReader(input), &out, cat, time.Hour)
	c.names = [2]string{"Alice", "Bob"}
	c.run()
	return out.String()
}

func TestConsoleFoolsMate(t *testing.T) {
	out := play(t, strings.Join([]string{
		"Pawn F2 F3",
		"Pawn E7 E5",
		"Pawn G2 G4",
		"Queen D8 H4",
	}, "\n"))
	for _, want := range []string{
		"White Pawn moved to F3.",
		"Black Queen moved to H4. Checkmate!",
		"Bob wins by checkmate after 4 moves.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConsoleRejectsAndResigns(t *testing.T) {
	out := play(t, "Rook A1 A8\nhello\nresign\n")
	for _, want := range []string{
		"That piece cannot move from A1 to A8.",
		"Could not read that move.",
		"Alice resigned. Bob wins.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConsoleBoardRendering(t *testing.T) {
	out := play(t, "")
	if !strings.Contains(out, "8 r n b q k b n r") || !strings.Contains(out, "1 R N B Q K B N R") {
		t.Fatalf("board not rendered:\n%s", out)
	}
	if !strings.Contains(out, "  A B C D E F G H") {
		t.Fatalf("file labels missing:\n%s", out)
	}
}
