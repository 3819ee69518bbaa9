package archive

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/park285/chess-session/internal/chess"
	"github.com/park285/chess-session/internal/match"
)

func foolsMate(t *testing.T) match.FinishedGame {
	t.Helper()
	g := chess.NewGame()
	for i, text := range []string{"Pawn F2 F3", "Pawn E7 E5", "Pawn G2 G4", "Queen D8 H4"} {
		c := chess.White
		if i%2 == 1 {
			c = chess.Black
		}
		if _, _, err := g.Play(c, text); err != nil {
			t.Fatalf("%q: %v", text, err)
		}
	}
	res, ok := g.Result()
	if !ok {
		t.Fatalf("game not over")
	}
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return match.FinishedGame{
		ID:        "s1",
		White:     match.Seat{ID: "u1", Name: `Al "the" ice`},
		Black:     match.Seat{ID: "u2", Name: "Bob"},
		Result:    res,
		Moves:     g.MoveLog(),
		Budget:    5 * time.Minute,
		StartedAt: start,
		EndedAt:   start.Add(90 * time.Second),
	}
}

func TestTranscript(t *testing.T) {
	got := Transcript(foolsMate(t))
	for _, want := range []string{
		`[White "Al 'the' ice"]`,
		`[Date "2026.03.01"]`,
		`[TimeControl "300"]`,
		`[Termination "checkmate"]`,
		`[Result "0-1"]`,
		"1. Pawn F2 F3 Pawn E7 E5 2. Pawn G2 G4 Queen D8 H4# 0-1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("transcript missing %q:\n%s", want, got)
		}
	}
}

func TestResultToken(t *testing.T) {
	cases := []struct {
		r    chess.Result
		want string
	}{
		{chess.Result{}, "*"},
		{chess.Result{Winner: chess.White, Method: chess.MethodTimeout}, "1-0"},
		{chess.Result{Winner: chess.Black, Method: chess.MethodResignation}, "0-1"},
	}
	for _, tc := range cases {
		if got := resultToken(tc.r); got != tc.want {
			t.Errorf("resultToken(%+v) = %q, want %q", tc.r, got, tc.want)
		}
	}
}

func TestNilRepositoryIsNoop(t *testing.T) {
	var r *Repository
	if err := r.SaveResult(context.Background(), foolsMate(t)); err != nil {
		t.Fatalf("nil SaveResult: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}
	if _, err := NewRepository("  "); err == nil {
		t.Fatalf("empty DATABASE_URL accepted")
	}
}
