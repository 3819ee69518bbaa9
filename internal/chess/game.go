package chess

import (
	"encoding/json"
	"fmt"
)

// Outcome is the opponent's status after an accepted move.
type Outcome uint8

const (
	Continue Outcome = iota
	Check
	Checkmate
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

func (o Outcome) MarshalJSON() ([]byte, error) { return json.Marshal(o.String()) }

func (o *Outcome) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, v := range []Outcome{Continue, Check, Checkmate} {
		if v.String() == s {
			*o = v
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", s)
}

// Method says how a finished game ended.
type Method string

const (
	MethodCheckmate   Method = "checkmate"
	MethodTimeout     Method = "timeout"
	MethodResignation Method = "resignation"
)

// Result describes a finished game.
type Result struct {
	Winner Color  `json:"winner"`
	Loser  Color  `json:"loser"`
	Method Method `json:"method"`
	Plies  int    `json:"plies"`
}

// Game is a single session: board, mover and history. It is not safe for
// concurrent use; callers serialize access.
type Game struct {
	board  *Board
	mover  Color
	log    MoveLog
	result *Result
}

// NewGame starts from the opening placement with White to move.
func NewGame() *Game {
	return NewGameFromBoard(NewStandardBoard(), White)
}

// NewGameFromBoard takes ownership of b.
func NewGameFromBoard(b *Board, mover Color) *Game {
	return &Game{board: b, mover: mover}
}

func (g *Game) CurrentMover() Color { return g.mover }

// Occupant returns a copy of the piece on sq, or nil.
func (g *Game) Occupant(sq Square) *Piece {
	p := g.board.At(sq)
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// Board returns a deep copy of the current position.
func (g *Game) Board() *Board { return g.board.Clone() }

func (g *Game) MoveLog() []MoveRecord { return g.log.All() }

func (g *Game) InCheck(c Color) (bool, error) { return InCheck(g.board, c) }

func (g *Game) IsCheckmate(c Color) (bool, error) { return IsCheckmate(g.board, c) }

// Result reports the final result once the game is over.
func (g *Game) Result() (Result, bool) {
	if g.result == nil {
		return Result{}, false
	}
	return *g.result, true
}

func (g *Game) Over() bool { return g.result != nil }

func (g *Game) ready(c Color) error {
	if g.result != nil {
		return fmt.Errorf("%w: %s won by %s", ErrGameOver, g.result.Winner, g.result.Method)
	}
	if c != g.mover {
		return fmt.Errorf("%w: %s to move", ErrOutOfTurn, g.mover)
	}
	return nil
}

// Play parses text and applies it for c. The kind named in the text must match
// the piece standing on the origin square.
func (g *Game) Play(c Color, text string) (Outcome, MoveRecord, error) {
	req, err := ParseMove(text)
	if err != nil {
		return Continue, MoveRecord{}, err
	}
	if err := g.ready(c); err != nil {
		return Continue, MoveRecord{}, err
	}
	if p := g.board.At(req.From); p != nil && p.Color == c && p.Kind != req.Kind {
		return Continue, MoveRecord{}, fmt.Errorf("%w: %s stands on %s, not %s", ErrKindMismatch, p.Kind, req.From, req.Kind)
	}
	return g.Apply(c, req.From, req.To)
}

// Apply validates and commits one half-move for c. On any error the board,
// log and mover are left exactly as they were.
func (g *Game) Apply(c Color, from, to Square) (Outcome, MoveRecord, error) {
	if err := g.ready(c); err != nil {
		return Continue, MoveRecord{}, err
	}
	p := g.board.At(from)
	if p == nil || p.Color != c {
		return Continue, MoveRecord{}, fmt.Errorf("%w: %s", ErrNoPieceAtOrigin, from)
	}
	if err := checkShape(g.board, p, to); err != nil {
		return Continue, MoveRecord{}, err
	}

	next := g.board.Clone()
	captured := next.Move(from, to)
	exposed, err := InCheck(next, c)
	if err != nil {
		return Continue, MoveRecord{}, err
	}
	if exposed {
		return Continue, MoveRecord{}, fmt.Errorf("%w: %s %s to %s", ErrExposesKingToCheck, p.Kind, from, to)
	}
	outcome, err := status(next, c.Opponent())
	if err != nil {
		return Continue, MoveRecord{}, err
	}

	rec := MoveRecord{
		Ply:     g.log.Len() + 1,
		Color:   c,
		Kind:    p.Kind,
		From:    from,
		To:      to,
		Outcome: outcome,
	}
	if captured != nil {
		k := captured.Kind
		rec.Captured = &k
	}
	g.board = next
	g.log.Append(rec)
	g.mover = c.Opponent()
	if outcome == Checkmate {
		g.finish(c, MethodCheckmate)
	}
	return outcome, rec, nil
}

// Timeout ends the game with c losing on time.
func (g *Game) Timeout(c Color) (Result, error) {
	return g.forfeit(c, MethodTimeout)
}

// Resign ends the game with c conceding. Either side may resign at any time.
func (g *Game) Resign(c Color) (Result, error) {
	return g.forfeit(c, MethodResignation)
}

func (g *Game) forfeit(loser Color, m Method) (Result, error) {
	if g.result != nil {
		return *g.result, fmt.Errorf("%w: %s won by %s", ErrGameOver, g.result.Winner, g.result.Method)
	}
	g.finish(loser.Opponent(), m)
	return *g.result, nil
}

func (g *Game) finish(winner Color, m Method) {
	g.result = &Result{Winner: winner, Loser: winner.Opponent(), Method: m, Plies: g.log.Len()}
}

func status(b *Board, c Color) (Outcome, error) {
	checked, err := InCheck(b, c)
	if err != nil || !checked {
		return Continue, err
	}
	mated, err := IsCheckmate(b, c)
	if err != nil {
		return Continue, err
	}
	if mated {
		return Checkmate, nil
	}
	return Check, nil
}
