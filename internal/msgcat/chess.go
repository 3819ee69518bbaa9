package msgcat

import (
	"time"

	"github.com/park285/chess-session/internal/chess"
	"github.com/park285/chess-session/internal/clock"
	"github.com/park285/chess-session/internal/match"
)

// MoveText renders an accepted move with its outcome, e.g.
// "White Rook moved to E2. Black is in check!".
func (c *Catalog) MoveText(rec chess.MoveRecord) string {
	data := map[string]any{
		"Record":   rec.String(),
		"Move":     rec.Notation(),
		"Mover":    rec.Color.String(),
		"Defender": rec.Color.Opponent().String(),
	}
	return c.Text("outcome."+rec.Outcome.String(), data, rec.String())
}

// ResultText renders how a game ended. Names default to the color names.
func (c *Catalog) ResultText(res chess.Result, whiteName, blackName string) string {
	names := map[chess.Color]string{chess.White: whiteName, chess.Black: blackName}
	for col, n := range names {
		if n == "" {
			names[col] = col.String()
		}
	}
	data := map[string]any{
		"Winner": names[res.Winner],
		"Loser":  names[res.Loser],
		"Plies":  res.Plies,
		"Method": string(res.Method),
	}
	return c.Text("result."+string(res.Method), data, names[res.Winner]+" wins.")
}

// ErrorText renders the message for an error code. Missing template fields
// fall back to the generic message for the code family.
func (c *Catalog) ErrorText(code string, data map[string]any) string {
	if data == nil {
		data = map[string]any{}
	}
	if s, err := c.Render("error."+code, data); err == nil {
		return s
	}
	return c.Text("error.internal", nil, "error: "+code)
}

// MoveErrorData builds the template fields for a rejected move: From and To
// from the move text when it parses, and the side to move.
func MoveErrorData(text string, mover chess.Color) map[string]any {
	data := map[string]any{"Mover": mover.String(), "From": "?", "To": "?"}
	if req, err := chess.ParseMove(text); err == nil {
		data["From"] = req.From.String()
		data["To"] = req.To.String()
	}
	return data
}

// EventText renders the announcement for a session event, or "" when the event
// carries nothing worth saying.
func (c *Catalog) EventText(ev match.Event) string {
	s := ev.Snapshot
	switch ev.Type {
	case match.EventCreated:
		return c.Text("session.created", map[string]any{
			"ID":     s.ID,
			"White":  s.White.Name,
			"Black":  s.Black.Name,
			"Budget": clock.Format(time.Duration(s.BudgetMS) * time.Millisecond),
		}, "")
	case match.EventMove:
		if ev.Record == nil {
			return ""
		}
		return c.MoveText(*ev.Record)
	case match.EventFinished:
		if s.Result == nil {
			return ""
		}
		return c.ResultText(*s.Result, s.White.Name, s.Black.Name)
	}
	return ""
}

// TurnText renders whose move it is and how much time they have left.
func (c *Catalog) TurnText(s match.Snapshot) string {
	left := s.WhiteLeftMS
	if s.Turn == chess.Black {
		left = s.BlackLeftMS
	}
	name := s.Seat(s.Turn).Name
	if name == "" {
		name = s.Turn.String()
	}
	return c.Text("session.turn", map[string]any{
		"Mover":     name,
		"Remaining": clock.Format(time.Duration(left) * time.Millisecond),
	}, name+" to move.")
}
