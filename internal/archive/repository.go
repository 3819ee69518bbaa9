package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/park285/chess-session/internal/chess"
	"github.com/park285/chess-session/internal/match"
)

const schema = `CREATE TABLE IF NOT EXISTS chess_results (
	session_id    TEXT PRIMARY KEY,
	white_id      TEXT NOT NULL,
	white_name    TEXT NOT NULL,
	black_id      TEXT NOT NULL,
	black_name    TEXT NOT NULL,
	budget_ms     BIGINT NOT NULL,
	result        TEXT NOT NULL,
	result_method TEXT NOT NULL,
	plies         INTEGER NOT NULL,
	moves         JSONB NOT NULL,
	transcript    TEXT NOT NULL,
	started_at    TIMESTAMPTZ NOT NULL,
	ended_at      TIMESTAMPTZ NOT NULL,
	duration_ms   BIGINT NOT NULL
)`

const upsert = `INSERT INTO chess_results (
	session_id, white_id, white_name, black_id, black_name, budget_ms,
	result, result_method, plies, moves, transcript,
	started_at, ended_at, duration_ms
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
ON CONFLICT (session_id) DO UPDATE SET
	result=EXCLUDED.result,
	result_method=EXCLUDED.result_method,
	plies=EXCLUDED.plies,
	moves=EXCLUDED.moves,
	transcript=EXCLUDED.transcript,
	ended_at=EXCLUDED.ended_at,
	duration_ms=EXCLUDED.duration_ms`

// Repository writes finished games to Postgres. It is write-only; sessions
// are never restored from it.
type Repository struct {
	db *sql.DB
}

func NewRepository(databaseURL string) (*Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Migrate creates the results table when it does not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// SaveResult implements match.ResultSaver.
func (r *Repository) SaveResult(ctx context.Context, g match.FinishedGame) error {
	if r == nil || r.db == nil {
		return nil
	}
	moves, err := json.Marshal(g.Moves)
	if err != nil {
		return fmt.Errorf("encode moves: %w", err)
	}
	duration := g.EndedAt.Sub(g.StartedAt).Milliseconds()
	if duration < 0 {
		duration = 0
	}
	_, err = r.db.ExecContext(ctx, upsert,
		g.ID,
		g.White.ID, g.White.Name,
		g.Black.ID, g.Black.Name,
		g.Budget.Milliseconds(),
		resultToken(g.Result), string(g.Result.Method), g.Result.Plies,
		string(moves), Transcript(g),
		g.StartedAt, g.EndedAt, duration,
	)
	return err
}

func resultToken(r chess.Result) string {
	if r.Method == "" {
		return "*"
	}
	if r.Winner == chess.White {
		return "1-0"
	}
	return "0-1"
}

// Transcript renders a finished game as tagged header lines followed by
// numbered move pairs in "<Kind> <From> <To>" form.
func Transcript(g match.FinishedGame) string {
	var b strings.Builder
	date := g.EndedAt
	if date.IsZero() {
		date = time.Now()
	}
	token := resultToken(g.Result)
	fmt.Fprintf(&b, "[Session \"%s\"]\n", sanitize(g.ID))
	fmt.Fprintf(&b, "[Date \"%04d.%02d.%02d\"]\n", date.Year(), int(date.Month()), date.Day())
	fmt.Fprintf(&b, "[White \"%s\"]\n", sanitize(g.White.Name))
	fmt.Fprintf(&b, "[Black \"%s\"]\n", sanitize(g.Black.Name))
	if g.Budget > 0 {
		fmt.Fprintf(&b, "[TimeControl \"%d\"]\n", int(g.Budget.Seconds()))
	}
	if g.Result.Method != "" {
		fmt.Fprintf(&b, "[Termination \"%s\"]\n", g.Result.Method)
	}
	fmt.Fprintf(&b, "[Result \"%s\"]\n\n", token)

	for i := 0; i < len(g.Moves); i += 2 {
		fmt.Fprintf(&b, "%d. %s", i/2+1, moveText(g.Moves[i]))
		if i+1 < len(g.Moves) {
			b.WriteString(" ")
			b.WriteString(moveText(g.Moves[i+1]))
		}
		b.WriteString(" ")
	}
	b.WriteString(token)
	return b.String()
}

func moveText(r chess.MoveRecord) string {
	s := r.Notation()
	switch r.Outcome {
	case chess.Check:
		s += "+"
	case chess.Checkmate:
		s += "#"
	}
	return s
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\\", " ")
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.TrimSpace(s)
}
