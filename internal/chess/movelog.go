package chess

import "fmt"

// MoveRecord is one applied half-move. It is kept for display and is never
// read back by the rules.
type MoveRecord struct {
	Ply      int     `json:"ply"`
	Color    Color   `json:"color"`
	Kind     Kind    `json:"kind"`
	From     Square  `json:"from"`
	To       Square  `json:"to"`
	Captured *Kind   `json:"captured,omitempty"`
	Outcome  Outcome `json:"outcome"`
}

// String renders the history line shown to players, e.g. "White Pawn moved to E4".
func (r MoveRecord) String() string {
	return fmt.Sprintf("%s %s moved to %s", r.Color, r.Kind, r.To)
}

// Notation renders the record in the same form ParseMove accepts.
func (r MoveRecord) Notation() string {
	return fmt.Sprintf("%s %s %s", r.Kind, r.From, r.To)
}

// MoveLog is an append-only, insertion-ordered list of records.
type MoveLog struct {
	records []MoveRecord
}

func (l *MoveLog) Append(r MoveRecord) {
	l.records = append(l.records, r)
}

// All returns a copy of the records in the order they were appended.
func (l *MoveLog) All() []MoveRecord {
	out := make([]MoveRecord, len(l.records))
	copy(out, l.records)
	return out
}

func (l *MoveLog) Len() int { return len(l.records) }
