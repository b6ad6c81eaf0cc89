package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultLimit caps board queries when the caller passes limit <= 0.
const DefaultLimit = 20

// Result is one finished session.
type Result struct {
	ID          string    `json:"id"`
	Score       int       `json:"score"`
	Rounds      int       `json:"rounds"`
	RoundCounts []int     `json:"roundCounts"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// Store reads and writes finished sessions.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record inserts r. A repeated ID is ignored.
func (s *Store) Record(ctx context.Context, r Result) error {
	counts, err := json.Marshal(r.RoundCounts)
	if err != nil {
		return fmt.Errorf("encode round counts: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions(id, score, rounds, round_counts, started_at, finished_at)
		 VALUES(?,?,?,?,?,?)`,
		r.ID, r.Score, r.Rounds, string(counts),
		r.StartedAt.UTC().Format(time.RFC3339Nano), r.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Best returns the highest-scoring sessions, earliest finisher first on ties.
func (s *Store) Best(ctx context.Context, limit int) ([]Result, error) {
	return s.query(ctx, `ORDER BY score DESC, finished_at ASC`, limit)
}

// Recent returns the most recently finished sessions.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	return s.query(ctx, `ORDER BY finished_at DESC`, limit)
}

func (s *Store) query(ctx context.Context, order string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, score, rounds, round_counts, started_at, finished_at
		 FROM sessions `+order+` LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var (
			r                 Result
			counts            string
			started, finished string
		)
		if err := rows.Scan(&r.ID, &r.Score, &r.Rounds, &counts, &started, &finished); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(counts), &r.RoundCounts); err != nil {
			return nil, fmt.Errorf("decode round counts for %s: %w", r.ID, err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("decode started_at for %s: %w", r.ID, err)
		}
		if r.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("decode finished_at for %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
