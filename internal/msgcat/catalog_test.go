package msgcat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/park285/chess-session/internal/chess"
)

func TestEmbeddedCatalogRenders(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := c.Render("outcome.check", map[string]any{"Record": "White Rook moved to E2", "Defender": "Black"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "White Rook moved to E2. Black is in check!" {
		t.Fatalf("got %q", got)
	}
	for _, key := range []string{
		"error.out_of_turn", "error.no_piece_at_origin", "error.illegal_shape", "error.friendly_occupied",
		"error.capture_not_allowed", "error.exposes_king_to_check", "error.invalid_notation",
		"error.missing_king", "error.kind_mismatch", "error.game_over",
		"result.checkmate", "result.timeout", "result.resignation",
	} {
		if !c.Has(key) {
			t.Errorf("missing %s", key)
		}
	}
}

func TestMissingDataIsAnError(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Render("result.timeout", map[string]any{"Winner": "Black"}); err == nil {
		t.Fatalf("expected error for missing Loser")
	}
	if got := c.Text("nope.nothing", nil, "fallback"); got != "fallback" {
		t.Fatalf("Text fallback = %q", got)
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	write("a.yaml", "error:\n  game_over: \"Finished.\"\n")
	write("ignored.txt", "error:\n  game_over: \"no\"\n")
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Text("error.game_over", nil, ""); got != "Finished." {
		t.Fatalf("override = %q", got)
	}

	write("b.yml", "error:\n  game_over: \"Again.\"\n")
	if _, err := New(dir); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("duplicate key err = %v", err)
	}
}

func TestDomainHelpers(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec := chess.MoveRecord{Color: chess.Black, Kind: chess.Queen, From: chess.MustSquare("D8"), To: chess.MustSquare("H4"), Outcome: chess.Checkmate}
	if got := c.MoveText(rec); got != "Black Queen moved to H4. Checkmate!" {
		t.Fatalf("MoveText = %q", got)
	}
	res := chess.Result{Winner: chess.Black, Loser: chess.White, Method: chess.MethodTimeout}
	if got := c.ResultText(res, "Alice", ""); got != "Alice ran out of time. Black wins." {
		t.Fatalf("ResultText = %q", got)
	}
	if got := c.ErrorText("friendly_occupied", map[string]any{"To": "A2"}); got != "A2 is occupied by your own piece." {
		t.Fatalf("ErrorText = %q", got)
	}
	if got := c.ErrorText("illegal_shape", nil); got != "Something went wrong. Please try again." {
		t.Fatalf("ErrorText without data = %q", got)
	}
}

func TestMoveErrorData(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := c.ErrorText("illegal_shape", MoveErrorData("Knight g1 g3", chess.White))
	if got != "That piece cannot move from G1 to G3." {
		t.Fatalf("ErrorText = %q", got)
	}
	got = c.ErrorText("out_of_turn", MoveErrorData("garbage", chess.Black))
	if got != "It is not your turn. Black to move." {
		t.Fatalf("ErrorText = %q", got)
	}
}
