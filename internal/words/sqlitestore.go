package words

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// SQLiteStore keeps the dictionary in the words table. Removals are single-row
// updates, so concurrent sessions and processes never overwrite each other.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps db (already migrated). When the words table is empty it is
// seeded from seed in one transaction.
func NewSQLiteStore(ctx context.Context, db *sql.DB, seed map[string]int) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM words`).Scan(&n); err != nil {
		return nil, fmt.Errorf("count words: %w", err)
	}
	if n == 0 && len(seed) > 0 {
		if err := s.seed(ctx, seed); err != nil {
			return nil, err
		}
		log.Info().Int("words", len(seed)).Msg("seeded dictionary table")
	}
	return s, nil
}

func (s *SQLiteStore) seed(ctx context.Context, seed map[string]int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words(word, weight) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()
	for w, weight := range seed {
		if !IsValid(w) {
			continue
		}
		if _, err := stmt.ExecContext(ctx, w, weight); err != nil {
			return fmt.Errorf("seed %s: %w", w, err)
		}
	}
	return tx.Commit()
}

// Load returns every word not yet removed.
func (s *SQLiteStore) Load(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word, weight FROM words WHERE removed_at IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var w string
		var weight int
		if err := rows.Scan(&w, &weight); err != nil {
			return nil, err
		}
		out[w] = weight
	}
	return out, rows.Err()
}

// Remove marks word as removed. Removing an unknown or removed word is a no-op.
func (s *SQLiteStore) Remove(ctx context.Context, word string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE words SET removed_at=? WHERE word=? AND removed_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), word,
	)
	return err
}

// Removed lists removed words, most recent first.
func (s *SQLiteStore) Removed(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word FROM words WHERE removed_at IS NOT NULL ORDER BY removed_at DESC, word`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
