package notify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/park285/chess-session/internal/match"
	"github.com/park285/chess-session/internal/msgcat"
)

// Sender is the transport a Relay posts through.
type Sender interface {
	SendText(ctx context.Context, room, message string) error
}

// Relay turns session events into chat lines for one room.
type Relay struct {
	send Sender
	cat  *msgcat.Catalog
	room string
	log  *zap.Logger
}

func NewRelay(send Sender, cat *msgcat.Catalog, room string, log *zap.Logger) *Relay {
	if log == nil {
		log = zap.NewNop()
	}
	return &Relay{send: send, cat: cat, room: strings.TrimSpace(room), log: log}
}

// Deliver implements match.Sink.
func (r *Relay) Deliver(ctx context.Context, ev match.Event) error {
	text := r.Describe(ev)
	if text == "" {
		return nil
	}
	if err := r.send.SendText(ctx, r.room, text); err != nil {
		return fmt.Errorf("relay %s event: %w", ev.Type, err)
	}
	r.log.Debug("notify_sent", zap.String("session_id", ev.SessionID), zap.String("type", string(ev.Type)))
	return nil
}

// Describe renders the chat line for ev, or "" when there is nothing to say.
func (r *Relay) Describe(ev match.Event) string { return r.cat.EventText(ev) }
