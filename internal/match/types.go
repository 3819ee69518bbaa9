package match

import (
	"errors"
	"time"

	"github.com/park285/chess-session/internal/chess"
)

// Status is a session's lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// ColorChoice is the host's color preference when a session is created.
type ColorChoice string

const (
	ColorWhite  ColorChoice = "white"
	ColorBlack  ColorChoice = "black"
	ColorRandom ColorChoice = "random"
)

// Seat is one player of a session.
type Seat struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateRequest opens a session between a host and a guest.
type CreateRequest struct {
	HostID    string        `json:"host_id"`
	HostName  string        `json:"host_name"`
	GuestID   string        `json:"guest_id"`
	GuestName string        `json:"guest_name"`
	Color     ColorChoice   `json:"color"`
	Budget    time.Duration `json:"-"`
}

// Snapshot is a read-only view of a session at one instant.
type Snapshot struct {
	ID          string             `json:"id"`
	White       Seat               `json:"white"`
	Black       Seat               `json:"black"`
	Status      Status             `json:"status"`
	Turn        chess.Color        `json:"turn"`
	InCheck     bool               `json:"in_check"`
	Rows        []string           `json:"rows"`
	Pieces      []chess.Piece      `json:"pieces"`
	Moves       []chess.MoveRecord `json:"moves"`
	Result      *chess.Result      `json:"result,omitempty"`
	BudgetMS    int64              `json:"budget_ms"`
	WhiteLeftMS int64              `json:"white_left_ms"`
	BlackLeftMS int64              `json:"black_left_ms"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Seat returns the player sitting on color c.
func (s Snapshot) Seat(c chess.Color) Seat {
	if c == chess.White {
		return s.White
	}
	return s.Black
}

// MoveResult is returned for an accepted move.
type MoveResult struct {
	Snapshot Snapshot         `json:"snapshot"`
	Outcome  chess.Outcome    `json:"outcome"`
	Record   chess.MoveRecord `json:"record"`
}

// EventType names what happened to a session.
type EventType string

const (
	EventCreated  EventType = "created"
	EventMove     EventType = "move"
	EventFinished EventType = "finished"
)

// Event is pushed to every attached Sink. Events of one session are delivered
// in the order they happened.
type Event struct {
	Type      EventType         `json:"type"`
	SessionID string            `json:"session_id"`
	Snapshot  Snapshot          `json:"snapshot"`
	Record    *chess.MoveRecord `json:"record,omitempty"`
	At        time.Time         `json:"at"`
}

// FinishedGame is what gets archived when a session ends.
type FinishedGame struct {
	ID        string
	White     Seat
	Black     Seat
	Result    chess.Result
	Moves     []chess.MoveRecord
	Budget    time.Duration
	StartedAt time.Time
	EndedAt   time.Time
}

var (
	ErrInvalidArgs     = errf("invalid arguments")
	ErrSessionNotFound = errf("session not found")
	ErrNotParticipant  = errf("user is not a player in this session")
	ErrTooManySessions = errf("too many active sessions")
)

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }

// ErrorCode extends chess.ErrorCode with the session errors. Unknown errors
// map to "internal".
func ErrorCode(err error) string {
	if code := chess.ErrorCode(err); code != "" {
		return code
	}
	switch {
	case errors.Is(err, ErrInvalidArgs):
		return "invalid_args"
	case errors.Is(err, ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, ErrNotParticipant):
		return "not_participant"
	case errors.Is(err, ErrTooManySessions):
		return "too_many_sessions"
	default:
		return "internal"
	}
}
