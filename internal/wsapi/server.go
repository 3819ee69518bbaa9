package wsapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/park285/chess-session/internal/chess"
	"github.com/park285/chess-session/internal/clock"
	"github.com/park285/chess-session/internal/match"
	"github.com/park285/chess-session/internal/msgcat"
)

// Subscriber streams a session's events to spectators.
type Subscriber interface {
	Subscribe(ctx context.Context, sessionID string) (<-chan match.Event, error)
}

// Server exposes sessions over HTTP and websockets.
type Server struct {
	mgr  *match.Manager
	feed Subscriber
	cat  *msgcat.Catalog
	log  *zap.Logger

	pingInterval time.Duration
}

func NewServer(mgr *match.Manager, feed Subscriber, cat *msgcat.Catalog, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{mgr: mgr, feed: feed, cat: cat, log: log, pingInterval: 30 * time.Second}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", s.handleCreate)
	mux.HandleFunc("GET /sessions/{id}", s.handleSnapshot)
	mux.HandleFunc("GET /sessions/{id}/play", s.handlePlay)
	mux.HandleFunc("GET /sessions/{id}/watch", s.handleWatch)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	return mux
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body CreateBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&body); err != nil {
		s.writeError(w, match.ErrInvalidArgs)
		return
	}
	var budget time.Duration
	if strings.TrimSpace(body.Budget) != "" {
		d, err := clock.ParseBudget(body.Budget)
		if err != nil {
			s.writeError(w, match.ErrInvalidArgs)
			return
		}
		budget = d
	}
	snap, err := s.mgr.CreateSession(r.Context(), match.CreateRequest{
		HostID:    body.HostID,
		HostName:  body.HostName,
		GuestID:   body.GuestID,
		GuestName: body.GuestName,
		Color:     match.ColorChoice(body.Color),
		Budget:    budget,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.mgr.Snapshot(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	id, user := r.PathValue("id"), strings.TrimSpace(r.URL.Query().Get("user"))
	snap, err := s.mgr.Snapshot(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if user == "" || (snap.White.ID != user && snap.Black.ID != user) {
		s.writeError(w, match.ErrNotParticipant)
		return
	}
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Warn("ws_accept_error", zap.String("session_id", id), zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closing")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go s.pingLoop(ctx, conn)

	if err := wsjson.Write(ctx, conn, Outbound{Type: "snapshot", Snapshot: &snap}); err != nil {
		return
	}
	s.log.Info("ws_player_join", zap.String("session_id", id), zap.String("user_id", user))
	for {
		var in Inbound
		if err := wsjson.Read(ctx, conn, &in); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				s.log.Debug("ws_player_read_end", zap.String("session_id", id), zap.Error(err))
			}
			return
		}
		out := s.dispatch(ctx, id, user, in)
		if err := wsjson.Write(ctx, conn, out); err != nil {
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, id, user string, in Inbound) Outbound {
	switch strings.ToLower(strings.TrimSpace(in.Type)) {
	case "move":
		res, err := s.mgr.PlayMove(ctx, id, user, in.Move)
		if err != nil {
			return s.errorFrame(ctx, id, in.Move, err)
		}
		return Outbound{
			Type:     "result",
			Outcome:  res.Outcome.String(),
			Text:     s.cat.MoveText(res.Record),
			Record:   &res.Record,
			Snapshot: &res.Snapshot,
		}
	case "resign":
		snap, err := s.mgr.Resign(ctx, id, user)
		if err != nil {
			return s.errorFrame(ctx, id, "", err)
		}
		out := Outbound{Type: "result", Snapshot: &snap}
		if snap.Result != nil {
			out.Outcome = string(snap.Result.Method)
			out.Text = s.cat.ResultText(*snap.Result, snap.White.Name, snap.Black.Name)
		}
		return out
	default:
		return s.errorFrame(ctx, id, "", match.ErrInvalidArgs)
	}
}

func (s *Server) errorFrame(ctx context.Context, id, move string, err error) Outbound {
	code := match.ErrorCode(err)
	mover := chess.White
	if snap, serr := s.mgr.Snapshot(ctx, id); serr == nil {
		mover = snap.Turn
	}
	return Outbound{Type: "error", Code: code, Message: s.cat.ErrorText(code, msgcat.MoveErrorData(move, mover))}
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.mgr.Snapshot(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Warn("ws_accept_error", zap.String("session_id", id), zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closing")

	// spectators never send; CloseRead cancels ctx when they leave
	ctx := conn.CloseRead(r.Context())
	events, err := s.feed.Subscribe(ctx, id)
	if err != nil {
		s.log.Error("ws_watch_subscribe_error", zap.String("session_id", id), zap.Error(err))
		conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	snap, err := s.mgr.Snapshot(ctx, id)
	if err != nil {
		return
	}
	if err := wsjson.Write(ctx, conn, Outbound{Type: "snapshot", Snapshot: &snap}); err != nil {
		return
	}
	go s.pingLoop(ctx, conn)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := wsjson.Write(ctx, conn, Outbound{Type: "event", Event: &ev}); err != nil {
				return
			}
			if ev.Type == match.EventFinished {
				conn.Close(websocket.StatusNormalClosure, "game over")
				return
			}
		}
	}
}

// pingLoop closes conn after two consecutive failed pings.
func (s *Server) pingLoop(ctx context.Context, conn *websocket.Conn) {
	t := time.NewTicker(s.pingInterval)
	defer t.Stop()
	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := conn.Ping(pctx)
			cancel()
			if err == nil {
				failures = 0
				continue
			}
			if failures++; failures >= 2 {
				conn.Close(websocket.StatusGoingAway, "ping failure")
				return
			}
		}
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := match.ErrorCode(err)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, match.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, match.ErrInvalidArgs):
		status = http.StatusBadRequest
	case errors.Is(err, match.ErrNotParticipant):
		status = http.StatusForbidden
	case errors.Is(err, match.ErrTooManySessions):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.log.Error("http_error", zap.Error(err))
	}
	writeJSON(w, status, errorBody{Error: code, Message: s.cat.ErrorText(code, nil)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
