package match

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/park285/chess-session/internal/chess"
	"github.com/park285/chess-session/internal/clock"
)

// Session is one hosted game. mu serializes every call into game and the
// clock callbacks.
type Session struct {
	mu sync.Mutex

	id           string
	white, black Seat
	game         *chess.Game
	clock        *clock.Clock
	budget       time.Duration
	createdAt    time.Time
	updatedAt    time.Time
	stop         context.CancelFunc
}

func (s *Session) colorOf(userID string) (chess.Color, bool) {
	switch strings.TrimSpace(userID) {
	case "":
		return chess.White, false
	case s.white.ID:
		return chess.White, true
	case s.black.ID:
		return chess.Black, true
	default:
		return chess.White, false
	}
}

func (s *Session) snapshotLocked() Snapshot {
	board := s.game.Board()
	pieces := board.Pieces()
	snap := Snapshot{
		ID:          s.id,
		White:       s.white,
		Black:       s.black,
		Status:      StatusActive,
		Turn:        s.game.CurrentMover(),
		Rows:        board.Rows(),
		Pieces:      make([]chess.Piece, 0, len(pieces)),
		Moves:       s.game.MoveLog(),
		BudgetMS:    s.budget.Milliseconds(),
		WhiteLeftMS: s.clock.Remaining(chess.White).Milliseconds(),
		BlackLeftMS: s.clock.Remaining(chess.Black).Milliseconds(),
		CreatedAt:   s.createdAt,
		UpdatedAt:   s.updatedAt,
	}
	for _, p := range pieces {
		snap.Pieces = append(snap.Pieces, *p)
	}
	if in, err := s.game.InCheck(snap.Turn); err == nil {
		snap.InCheck = in
	}
	if res, ok := s.game.Result(); ok {
		snap.Status = StatusFinished
		snap.Result = &res
	}
	return snap
}
