package chess

import "errors"

var (
	ErrOutOfTurn          = errors.New("out of turn")
	ErrNoPieceAtOrigin    = errors.New("no piece of the mover at origin")
	ErrIllegalShape       = errors.New("piece cannot move that way")
	ErrFriendlyOccupied   = errors.New("destination holds a friendly piece")
	ErrCaptureNotAllowed  = errors.New("capture not allowed")
	ErrExposesKingToCheck = errors.New("move leaves own king in check")
	ErrInvalidNotation    = errors.New("invalid move notation")
	ErrMissingKing        = errors.New("no king on the board")
	ErrKindMismatch       = errors.New("piece kind does not match origin")
	ErrGameOver           = errors.New("game is over")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrOutOfTurn, "out_of_turn"},
	{ErrNoPieceAtOrigin, "no_piece_at_origin"},
	{ErrIllegalShape, "illegal_shape"},
	{ErrFriendlyOccupied, "friendly_occupied"},
	{ErrCaptureNotAllowed, "capture_not_allowed"},
	{ErrExposesKingToCheck, "exposes_king_to_check"},
	{ErrInvalidNotation, "invalid_notation"},
	{ErrMissingKing, "missing_king"},
	{ErrKindMismatch, "kind_mismatch"},
	{ErrGameOver, "game_over"},
}

// ErrorCode maps a rule error to a stable snake_case code, or "" when err is
// not one of this package's errors.
func ErrorCode(err error) string {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return ""
}
