package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/park285/chess-session/internal/match"
)

const defaultTTL = 24 * time.Hour

// Publisher fans session events out over Redis pub/sub and keeps a snapshot
// mirror for spectators. Nothing here is read back into a running game.
type Publisher struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewPublisher(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Publisher {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{rdb: rdb, ttl: ttl, log: log}
}

func channelKey(id string) string  { return "chess:events:" + strings.TrimSpace(id) }
func mirrorKey(id string) string   { return "chess:session:" + strings.TrimSpace(id) }
func userIdxKey(uid string) string { return "chess:index:user:" + strings.TrimSpace(uid) }

// Deliver implements match.Sink.
func (p *Publisher) Deliver(ctx context.Context, ev match.Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	snap, err := json.Marshal(ev.Snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	seats := []string{ev.Snapshot.White.ID, ev.Snapshot.Black.ID}

	pipe := p.rdb.TxPipeline()
	pipe.Set(ctx, mirrorKey(ev.SessionID), snap, p.ttl)
	for _, uid := range seats {
		if strings.TrimSpace(uid) == "" {
			continue
		}
		if ev.Type == match.EventFinished {
			pipe.SRem(ctx, userIdxKey(uid), ev.SessionID)
			continue
		}
		pipe.SAdd(ctx, userIdxKey(uid), ev.SessionID)
		pipe.Expire(ctx, userIdxKey(uid), p.ttl)
	}
	pipe.Publish(ctx, channelKey(ev.SessionID), raw)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish %s event: %w", ev.Type, err)
	}
	return nil
}

// LoadMirror returns the last published snapshot, or nil when it expired.
func (p *Publisher) LoadMirror(ctx context.Context, sessionID string) (*match.Snapshot, error) {
	raw, err := p.rdb.Get(ctx, mirrorKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s match.Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SessionsByUser lists the active session ids the user sits in.
func (p *Publisher) SessionsByUser(ctx context.Context, userID string) ([]string, error) {
	ids, err := p.rdb.SMembers(ctx, userIdxKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

// Subscribe streams the session's events until ctx is done. The channel is
// closed when the subscription ends.
func (p *Publisher) Subscribe(ctx context.Context, sessionID string) (<-chan match.Event, error) {
	ps := p.rdb.Subscribe(ctx, channelKey(sessionID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	out := make(chan match.Event, 16)
	go func() {
		defer close(out)
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev match.Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					p.log.Warn("feed_decode_error", zap.String("session_id", sessionID), zap.Error(err))
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
