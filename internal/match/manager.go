package match

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/chess-session/internal/chess"
	"github.com/park285/chess-session/internal/clock"
)

// Sink receives session events. Delivery failures are logged, never returned
// to the player.
type Sink interface {
	Deliver(ctx context.Context, ev Event) error
}

// ResultSaver archives finished games.
type ResultSaver interface {
	SaveResult(ctx context.Context, g FinishedGame) error
}

// Options tunes a Manager. Zero values get defaults.
type Options struct {
	MaxSessions    int
	DefaultBudget  time.Duration
	FlagInterval   time.Duration
	DeliverTimeout time.Duration
	Logger         *zap.Logger
}

// Manager hosts sessions in memory. Each session's game is guarded by its own
// mutex; the manager's lock only protects the session map.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	opts  Options
	log   *zap.Logger
	sinks []Sink
	saver ResultSaver
	now   func() time.Time
}

func NewManager(opts Options) *Manager {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 200
	}
	if opts.DefaultBudget <= 0 {
		opts.DefaultBudget = clock.DefaultBudget
	}
	if opts.FlagInterval <= 0 {
		opts.FlagInterval = 200 * time.Millisecond
	}
	if opts.DeliverTimeout <= 0 {
		opts.DeliverTimeout = 5 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		opts:     opts,
		log:      log,
		now:      time.Now,
	}
}

// AttachSink adds an event destination.
func (m *Manager) AttachSink(s Sink) {
	if m != nil && s != nil {
		m.sinks = append(m.sinks, s)
	}
}

// AttachSaver wires the archive for finished games.
func (m *Manager) AttachSaver(r ResultSaver) {
	if m != nil {
		m.saver = r
	}
}

// CreateSession seats host and guest, starts White's clock and announces the
// session.
func (m *Manager) CreateSession(ctx context.Context, req CreateRequest) (Snapshot, error) {
	host, guest := strings.TrimSpace(req.HostID), strings.TrimSpace(req.GuestID)
	if host == "" || guest == "" || host == guest {
		return Snapshot{}, ErrInvalidArgs
	}
	white := Seat{ID: host, Name: displayName(req.HostName, host)}
	black := Seat{ID: guest, Name: displayName(req.GuestName, guest)}
	switch ColorChoice(strings.ToLower(strings.TrimSpace(string(req.Color)))) {
	case ColorWhite, "w":
	case ColorBlack, "b":
		white, black = black, white
	case ColorRandom, "":
		if n, _ := rand.Int(rand.Reader, big.NewInt(2)); n != nil && n.Int64() == 0 {
			white, black = black, white
		}
	default:
		return Snapshot{}, fmt.Errorf("%w: color %q", ErrInvalidArgs, req.Color)
	}
	budget := req.Budget
	if budget <= 0 {
		budget = m.opts.DefaultBudget
	}

	now := m.now()
	watchCtx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:        uuid.NewString(),
		white:     white,
		black:     black,
		game:      chess.NewGame(),
		clock:     clock.New(budget),
		budget:    budget,
		createdAt: now,
		updatedAt: now,
		stop:      cancel,
	}

	m.mu.Lock()
	if m.activeLocked() >= m.opts.MaxSessions {
		m.mu.Unlock()
		cancel()
		return Snapshot{}, ErrTooManySessions
	}
	m.sessions[s.id] = s
	m.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock.Start(chess.White)
	s.clock.Watch(watchCtx, m.opts.FlagInterval, func(c chess.Color) { m.timeout(s, c) })

	snap := s.snapshotLocked()
	m.log.Info("match_create",
		zap.String("session_id", s.id),
		zap.String("white_id", white.ID),
		zap.String("black_id", black.ID),
		zap.Duration("budget", budget),
	)
	m.deliver(ctx, Event{Type: EventCreated, SessionID: s.id, Snapshot: snap, At: now})
	return snap, nil
}

// PlayMove applies text ("Pawn E2 E4") for userID's color. Rule errors come
// back unchanged from the chess package and leave the session untouched.
func (m *Manager) PlayMove(ctx context.Context, sessionID, userID, text string) (MoveResult, error) {
	s, err := m.get(sessionID)
	if err != nil {
		return MoveResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	color, ok := s.colorOf(userID)
	if !ok {
		return MoveResult{}, ErrNotParticipant
	}
	outcome, rec, err := s.game.Play(color, text)
	if err != nil {
		m.log.Debug("match_move_rejected",
			zap.String("session_id", s.id),
			zap.String("user_id", userID),
			zap.String("move", text),
			zap.Error(err),
		)
		return MoveResult{}, err
	}
	s.updatedAt = m.now()
	if s.game.Over() {
		s.clock.Stop()
		s.stop()
	} else {
		s.clock.Switch(color.Opponent())
	}

	snap := s.snapshotLocked()
	m.log.Info("match_move",
		zap.String("session_id", s.id),
		zap.String("user_id", userID),
		zap.String("move", rec.Notation()),
		zap.String("outcome", outcome.String()),
		zap.Int("ply", rec.Ply),
	)
	m.deliver(ctx, Event{Type: EventMove, SessionID: s.id, Snapshot: snap, Record: &rec, At: s.updatedAt})
	if s.game.Over() {
		m.finishLocked(ctx, s, snap)
	}
	return MoveResult{Snapshot: snap, Outcome: outcome, Record: rec}, nil
}

// Resign ends the session with userID losing.
func (m *Manager) Resign(ctx context.Context, sessionID, userID string) (Snapshot, error) {
	s, err := m.get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	color, ok := s.colorOf(userID)
	if !ok {
		return Snapshot{}, ErrNotParticipant
	}
	if _, err := s.game.Resign(color); err != nil {
		return Snapshot{}, err
	}
	s.updatedAt = m.now()
	s.clock.Stop()
	s.stop()
	snap := s.snapshotLocked()
	m.log.Info("match_resign", zap.String("session_id", s.id), zap.String("user_id", userID))
	m.finishLocked(ctx, s, snap)
	return snap, nil
}

// timeout is the clock's flag callback and runs on the watcher goroutine. A
// move that lands before the lock is taken wins over the flag.
func (m *Manager) timeout(s *Session, c chess.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game.Over() || s.game.CurrentMover() != c || s.clock.Remaining(c) > 0 {
		return
	}
	if _, err := s.game.Timeout(c); err != nil {
		return
	}
	s.updatedAt = m.now()
	s.clock.Stop()
	s.stop()
	snap := s.snapshotLocked()
	m.log.Info("match_timeout", zap.String("session_id", s.id), zap.String("flagged", c.String()))
	m.finishLocked(context.Background(), s, snap)
}

func (m *Manager) finishLocked(ctx context.Context, s *Session, snap Snapshot) {
	m.deliver(ctx, Event{Type: EventFinished, SessionID: s.id, Snapshot: snap, At: s.updatedAt})
	if m.saver == nil {
		return
	}
	res, _ := s.game.Result()
	fg := FinishedGame{
		ID:        s.id,
		White:     s.white,
		Black:     s.black,
		Result:    res,
		Moves:     s.game.MoveLog(),
		Budget:    s.budget,
		StartedAt: s.createdAt,
		EndedAt:   s.updatedAt,
	}
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.opts.DeliverTimeout)
	defer cancel()
	if err := m.saver.SaveResult(sctx, fg); err != nil {
		m.log.Error("archive_persist_error", zap.String("session_id", s.id), zap.Error(err))
		return
	}
	m.log.Info("archive_persist", zap.String("session_id", s.id), zap.String("method", string(res.Method)))
}

func (m *Manager) deliver(ctx context.Context, ev Event) {
	for _, sink := range m.sinks {
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.opts.DeliverTimeout)
		if err := sink.Deliver(dctx, ev); err != nil {
			m.log.Warn("match_event_deliver_error",
				zap.String("session_id", ev.SessionID),
				zap.String("type", string(ev.Type)),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Snapshot returns the current view of a session, finished or not.
func (m *Manager) Snapshot(_ context.Context, sessionID string) (Snapshot, error) {
	s, err := m.get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

// ActiveByUser lists the user's active sessions, most recently updated first.
func (m *Manager) ActiveByUser(_ context.Context, userID string) ([]Snapshot, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidArgs
	}
	m.mu.RLock()
	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	m.mu.RUnlock()

	var out []Snapshot
	for _, s := range list {
		s.mu.Lock()
		if _, ok := s.colorOf(userID); ok && !s.game.Over() {
			out = append(out, s.snapshotLocked())
		}
		s.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// Prune drops finished sessions last updated before now-age and returns how
// many were removed.
func (m *Manager) Prune(age time.Duration) int {
	cutoff := m.now().Add(-age)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		stale := s.game.Over() && s.updatedAt.Before(cutoff)
		s.mu.Unlock()
		if stale {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Close stops every clock watcher. Sessions stay readable.
func (m *Manager) Close() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		s.stop()
	}
	return nil
}

func (m *Manager) get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[strings.TrimSpace(id)]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *Manager) activeLocked() int {
	n := 0
	for _, s := range m.sessions {
		s.mu.Lock()
		if !s.game.Over() {
			n++
		}
		s.mu.Unlock()
	}
	return n
}

func displayName(name, id string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return id
}
