package daily

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// Result is one stored session, as listed by the history endpoint.
type Result struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Solved    bool     `json:"solved"`
	Solution  string   `json:"solution,omitempty"`
	Guesses   int      `json:"guesses"`
	Rejected  int      `json:"rejected"`
	ElapsedMs int64    `json:"elapsedMs"`
	Rows      []string `json:"rows"` // "word:pattern" in row order
}

// Store is the SQLite solve history.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record persists res and its rows in one transaction. Recording the same id twice is a no-op.
func (s *Store) Record(ctx context.Context, res solver.SessionResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	r, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO session_results(id, date, solved, solution, guesses, rejected, elapsed_ms)
		 VALUES(?,?,?,?,?,?,?)`,
		res.ID, DateKey(res.StartedAt), res.Solved, res.Solution, len(res.Rows), len(res.Rejected),
		res.FinishedAt.Sub(res.StartedAt).Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	if n, _ := r.RowsAffected(); n == 0 {
		return nil
	}
	for _, row := range res.Rows {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO session_rows(session_id, row, word, pattern) VALUES(?,?,?,?)`,
			res.ID, row.Row, row.Word, row.Feedback.Pattern(),
		); err != nil {
			return fmt.Errorf("insert row %d: %w", row.Row, err)
		}
	}
	return tx.Commit()
}

// AlreadySolved reports whether some session solved a game on date.
func (s *Store) AlreadySolved(ctx context.Context, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM session_results WHERE date=? AND solved=1", date,
	).Scan(&cnt)
	return cnt > 0, err
}

// List returns up to limit sessions of date, fastest solves first.
func (s *Store) List(ctx context.Context, date string, limit int) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, solved, COALESCE(solution, ''), guesses, rejected, elapsed_ms
		 FROM session_results
		 WHERE date=?
		 ORDER BY solved DESC, guesses ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	var out []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ID, &r.Date, &r.Solved, &r.Solution, &r.Guesses, &r.Rejected, &r.ElapsedMs); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Rows, err = s.rows(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Get loads one stored session as a SessionResult. Per-row pool sizes are not stored.
func (s *Store) Get(ctx context.Context, id string) (solver.SessionResult, error) {
	var (
		res      solver.SessionResult
		date     string
		elapsed  int64
		rejected int
		guesses  int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, date, solved, COALESCE(solution, ''), guesses, rejected, elapsed_ms
		 FROM session_results WHERE id=?`, id,
	).Scan(&res.ID, &date, &res.Solved, &res.Solution, &guesses, &rejected, &elapsed)
	if errors.Is(err, sql.ErrNoRows) {
		return res, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return res, err
	}
	res.StartedAt, _ = time.Parse("2006-01-02", date)
	res.FinishedAt = res.StartedAt.Add(time.Duration(elapsed) * time.Millisecond)

	rows, err := s.db.QueryContext(ctx,
		`SELECT row, word, pattern FROM session_rows WHERE session_id=? ORDER BY row`, id)
	if err != nil {
		return res, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			rec     solver.GuessRecord
			pattern string
		)
		if err := rows.Scan(&rec.Row, &rec.Word, &pattern); err != nil {
			return res, err
		}
		if rec.Feedback, err = feedback.Parse(rec.Word, pattern); err != nil {
			return res, fmt.Errorf("row %d: %w", rec.Row, err)
		}
		res.Rows = append(res.Rows, rec)
	}
	return res, rows.Err()
}

// ErrNotFound is returned by Get for unknown ids.
var ErrNotFound = errors.New("not found")

func (s *Store) rows(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word, pattern FROM session_rows WHERE session_id=? ORDER BY row`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var w, p string
		if err := rows.Scan(&w, &p); err != nil {
			return nil, err
		}
		out = append(out, w+":"+p)
	}
	return out, rows.Err()
}
