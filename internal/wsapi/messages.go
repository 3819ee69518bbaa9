package wsapi

import (
	"github.com/park285/chess-session/internal/chess"
	"github.com/park285/chess-session/internal/match"
)

// Inbound is a frame sent by a player.
type Inbound struct {
	Type string `json:"type"` // move | resign
	Move string `json:"move,omitempty"`
}

// Outbound is every frame the server writes.
type Outbound struct {
	Type     string            `json:"type"` // snapshot | result | error | event
	Code     string            `json:"code,omitempty"`
	Message  string            `json:"message,omitempty"`
	Text     string            `json:"text,omitempty"`
	Outcome  string            `json:"outcome,omitempty"`
	Record   *chess.MoveRecord `json:"record,omitempty"`
	Snapshot *match.Snapshot   `json:"snapshot,omitempty"`
	Event    *match.Event      `json:"event,omitempty"`
}

// CreateBody is the POST /sessions payload. Budget is a duration ("5m") or
// seconds ("300").
type CreateBody struct {
	HostID    string `json:"host_id"`
	HostName  string `json:"host_name"`
	GuestID   string `json:"guest_id"`
	GuestName string `json:"guest_name"`
	Color     string `json:"color"`
	Budget    string `json:"budget"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
