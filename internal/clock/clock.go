package clock

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/park285/chess-session/internal/chess"
)

// Presets are the per-side budgets offered to players.
var Presets = []time.Duration{time.Minute, 5 * time.Minute, 10 * time.Minute}

// DefaultBudget is used when a session does not pick one.
const DefaultBudget = time.Minute

// ParseBudget accepts a Go duration ("5m") or a whole number of seconds ("300").
func ParseBudget(s string) (time.Duration, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return DefaultBudget, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("clock budget must be positive: %q", s)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse clock budget %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("clock budget must be positive: %q", s)
	}
	return d, nil
}

// Clock is a two-sided countdown. Only the running side's budget drains. It
// reports time; it never touches a game.
type Clock struct {
	mu          sync.Mutex
	now         func() time.Time
	left        [2]time.Duration
	running     bool
	side        chess.Color
	lastStarted time.Time
}

// New gives both sides the same budget. The clock starts stopped.
func New(budget time.Duration) *Clock {
	return &Clock{now: time.Now, left: [2]time.Duration{budget, budget}}
}

// Start runs side c's clock. Starting an already running clock switches it.
func (c *Clock) Start(side chess.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
	c.side = side
	c.running = true
	c.lastStarted = c.now()
}

// Switch stops the running side and starts side to.
func (c *Clock) Switch(to chess.Color) { c.Start(to) }

// Stop freezes both budgets.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
}

func (c *Clock) pauseLocked() {
	if !c.running {
		return
	}
	c.left[c.side] -= c.now().Sub(c.lastStarted)
	c.running = false
}

// Remaining is side's budget, never below zero.
func (c *Clock) Remaining(side chess.Color) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remainingLocked(side)
}

func (c *Clock) remainingLocked(side chess.Color) time.Duration {
	left := c.left[side]
	if c.running && c.side == side {
		left -= c.now().Sub(c.lastStarted)
	}
	if left < 0 {
		return 0
	}
	return left
}

// Running reports which side's clock is draining.
func (c *Clock) Running() (chess.Color, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.side, c.running
}

// Flagged reports the running side once its budget is used up.
func (c *Clock) Flagged() (chess.Color, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || c.remainingLocked(c.side) > 0 {
		return c.side, false
	}
	return c.side, true
}

// Watch polls every interval from its own goroutine and calls onFlag while the
// running side is out of time. It returns when ctx is done, so the caller
// cancels ctx once the flag is handled.
func (c *Clock) Watch(ctx context.Context, interval time.Duration, onFlag func(chess.Color)) {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if side, flagged := c.Flagged(); flagged {
					onFlag(side)
				}
			}
		}
	}()
}

// Format renders d as m:ss.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
