package chess

import (
	"errors"
	"testing"
)

func mustPlay(t *testing.T, g *Game, c Color, text string) Outcome {
	t.Helper()
	out, _, err := g.Play(c, text)
	if err != nil {
		t.Fatalf("%s %q: %v", c, text, err)
	}
	return out
}

func TestOpeningPawnE2E4(t *testing.T) {
	g := NewGame()
	out, rec, err := g.Play(White, "Pawn E2 E4")
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if out != Continue {
		t.Fatalf("outcome = %v", out)
	}
	if p := g.Occupant(MustSquare("E4")); p == nil || p.Kind != Pawn || p.Color != White {
		t.Fatalf("E4 = %v", p)
	}
	if g.Occupant(MustSquare("E2")) != nil {
		t.Fatalf("E2 not cleared")
	}
	if g.CurrentMover() != Black {
		t.Fatalf("mover = %v", g.CurrentMover())
	}
	if n := len(g.MoveLog()); n != 1 {
		t.Fatalf("log len = %d", n)
	}
	if rec.String() != "White Pawn moved to E4" {
		t.Fatalf("record = %q", rec.String())
	}
}

func TestRookBlockedOnOpening(t *testing.T) {
	g := NewGame()
	before := dump(g.Board())
	_, _, err := g.Play(White, "Rook A1 A8")
	if !errors.Is(err, ErrIllegalShape) {
		t.Fatalf("err = %v", err)
	}
	if dump(g.Board()) != before || g.CurrentMover() != White || len(g.MoveLog()) != 0 {
		t.Fatalf("rejected move changed state")
	}
}

func TestRejectionsLeaveStateUntouched(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T) *Game
		color Color
		move  string
		want  error
	}{
		{"out of turn", opening, Black, "Pawn E7 E5", ErrOutOfTurn},
		{"empty origin", opening, White, "Pawn E3 E4", ErrNoPieceAtOrigin},
		{"enemy origin", opening, White, "Pawn E7 E5", ErrNoPieceAtOrigin},
		{"friendly destination", opening, White, "Rook A1 A2", ErrFriendlyOccupied},
		{"knight shape", opening, White, "Knight G1 G3", ErrIllegalShape},
		{"pawn three squares", opening, White, "Pawn E2 E5", ErrIllegalShape},
		{"kind mismatch", opening, White, "Knight E2 E4", ErrKindMismatch},
		{"short notation", opening, White, "Pawn E2", ErrInvalidNotation},
		{"bad cell", opening, White, "Pawn E9 E4", ErrInvalidNotation},
		{"bad file", opening, White, "Pawn I2 I4", ErrInvalidNotation},
		{"unknown kind", opening, White, "Wizard E2 E4", ErrInvalidNotation},
		{"pawn pushes into enemy", func(t *testing.T) *Game {
			g := NewGame()
			mustPlay(t, g, White, "Pawn E2 E4")
			mustPlay(t, g, Black, "Pawn E7 E5")
			return g
		}, White, "Pawn E4 E5", ErrCaptureNotAllowed},
		{"king capture", func(t *testing.T) *Game {
			return NewGameFromBoard(place(t, "WK@A1", "WR@E1", "BK@E8"), White)
		}, White, "Rook E1 E8", ErrCaptureNotAllowed},
		{"non-threatening capture shape", func(t *testing.T) *Game {
			return NewGameFromBoard(place(t, "WK@A1", "WB@C1", "BN@C5", "BK@H8"), White)
		}, White, "Bishop C1 C5", ErrIllegalShape},
		{"pinned rook", func(t *testing.T) *Game {
			return NewGameFromBoard(place(t, "WK@E1", "WR@E2", "BR@E8", "BK@A8"), White)
		}, White, "Rook E2 D2", ErrExposesKingToCheck},
		{"king walks into check", func(t *testing.T) *Game {
			return NewGameFromBoard(place(t, "WK@E1", "BR@D8", "BK@A8"), White)
		}, White, "King E1 D1", ErrExposesKingToCheck},
		{"missing king", func(t *testing.T) *Game {
			return NewGameFromBoard(place(t, "WR@A1", "BK@E8"), White)
		}, White, "Rook A1 A2", ErrMissingKing},
		{"after timeout", func(t *testing.T) *Game {
			g := NewGame()
			if _, err := g.Timeout(White); err != nil {
				t.Fatalf("Timeout: %v", err)
			}
			return g
		}, White, "Pawn E2 E4", ErrGameOver},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := tc.setup(t)
			before, mover, plies := dump(g.Board()), g.CurrentMover(), len(g.MoveLog())
			_, _, err := g.Play(tc.color, tc.move)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if dump(g.Board()) != before || g.CurrentMover() != mover || len(g.MoveLog()) != plies {
				t.Fatalf("state changed after %v", err)
			}
		})
	}
}

func opening(*testing.T) *Game { return NewGame() }

func TestPawnCapturesDiagonally(t *testing.T) {
	g := NewGame()
	mustPlay(t, g, White, "Pawn E2 E4")
	mustPlay(t, g, Black, "Pawn D7 D5")
	_, rec, err := g.Play(White, "Pawn E4 D5")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if rec.Captured == nil || *rec.Captured != Pawn {
		t.Fatalf("captured = %v", rec.Captured)
	}
	if p := g.Occupant(MustSquare("D5")); p == nil || p.Color != White {
		t.Fatalf("D5 = %v", p)
	}
	if n := len(g.Board().Pieces()); n != 31 {
		t.Fatalf("pieces = %d", n)
	}
}

func TestFoolsMate(t *testing.T) {
	g := NewGame()
	mustPlay(t, g, White, "Pawn F2 F3")
	mustPlay(t, g, Black, "Pawn E7 E5")
	mustPlay(t, g, White, "Pawn G2 G4")
	if out := mustPlay(t, g, Black, "queen d8 h4"); out != Checkmate {
		t.Fatalf("outcome = %v", out)
	}
	res, ok := g.Result()
	if !ok || res.Winner != Black || res.Method != MethodCheckmate || res.Plies != 4 {
		t.Fatalf("result = %+v ok=%v", res, ok)
	}
	if _, _, err := g.Play(White, "Pawn A2 A3"); !errors.Is(err, ErrGameOver) {
		t.Fatalf("move after mate err = %v", err)
	}
	if mate, _ := g.IsCheckmate(White); !mate {
		t.Fatalf("IsCheckmate(White) = false")
	}
}

func TestCheckOutcome(t *testing.T) {
	g := NewGameFromBoard(place(t, "WK@A1", "WR@H2", "BK@E8", "BP@D7", "BP@F7"), White)
	out, rec, err := g.Play(White, "Rook H2 E2")
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if out != Check || rec.Outcome != Check {
		t.Fatalf("outcome = %v", out)
	}
	if in, _ := g.InCheck(Black); !in {
		t.Fatalf("black not in check")
	}
	if _, ok := g.Result(); ok {
		t.Fatalf("game ended on plain check")
	}
}

func TestMoveLogOrderAndCopy(t *testing.T) {
	g := NewGame()
	mustPlay(t, g, White, "Pawn E2 E4")
	mustPlay(t, g, Black, "Knight B8 C6")
	mustPlay(t, g, White, "Knight G1 F3")
	log := g.MoveLog()
	want := []string{"White Pawn moved to E4", "Black Knight moved to C6", "White Knight moved to F3"}
	if len(log) != len(want) {
		t.Fatalf("len = %d", len(log))
	}
	for i, w := range want {
		if log[i].String() != w || log[i].Ply != i+1 {
			t.Fatalf("log[%d] = %q ply %d", i, log[i].String(), log[i].Ply)
		}
	}
	log[0].Kind = Queen
	if g.MoveLog()[0].Kind != Pawn {
		t.Fatalf("MoveLog exposed internal slice")
	}
	if log[2].Notation() != "Knight G1 F3" {
		t.Fatalf("notation = %q", log[2].Notation())
	}
}

func TestTimeoutAndResign(t *testing.T) {
	g := NewGame()
	res, err := g.Timeout(White)
	if err != nil || res.Winner != Black || res.Method != MethodTimeout {
		t.Fatalf("timeout = %+v err %v", res, err)
	}
	if _, err := g.Resign(Black); !errors.Is(err, ErrGameOver) {
		t.Fatalf("resign after timeout err = %v", err)
	}

	g = NewGame()
	mustPlay(t, g, White, "Pawn D2 D4")
	res, err = g.Resign(White)
	if err != nil || res.Loser != White || res.Method != MethodResignation || res.Plies != 1 {
		t.Fatalf("resign = %+v err %v", res, err)
	}
}

func TestErrorCode(t *testing.T) {
	g := NewGame()
	_, _, err := g.Play(Black, "Pawn E7 E5")
	if code := ErrorCode(err); code != "out_of_turn" {
		t.Fatalf("code = %q", code)
	}
	if code := ErrorCode(errors.New("other")); code != "" {
		t.Fatalf("foreign code = %q", code)
	}
}
