package leaderboard

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the leaderboard in a SQLite database.
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path and migrates it.
func OpenSQLite(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open leaderboard db: %w", err)
	}
	// One writer keeps submit's insert and trim atomic with respect to readers.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}

	s := &SQLiteStore{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// migrate creates the scores table if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		score INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_scores_rank ON scores(score DESC, id ASC);
	`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("migrate leaderboard db: %w", err)
	}
	return nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func top(ctx context.Context, q queryer) ([]Entry, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT name, score FROM scores ORDER BY score DESC, id ASC LIMIT ?`, Size)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Score); err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Top(ctx context.Context) ([]Entry, error) {
	return top(ctx, s.conn)
}

func (s *SQLiteStore) Qualifies(ctx context.Context, score int) (bool, error) {
	entries, err := top(ctx, s.conn)
	if err != nil {
		return false, err
	}
	return Qualifies(entries, score), nil
}

func (s *SQLiteStore) Submit(ctx context.Context, name string, score int) ([]Entry, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin submit: %w", err)
	}
	defer tx.Rollback()

	entries, err := top(ctx, tx)
	if err != nil {
		return nil, err
	}
	if !Qualifies(entries, score) {
		name = Anonymous
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO scores (name, score) VALUES (?, ?)`, CleanName(name), score); err != nil {
		return nil, fmt.Errorf("insert score: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM scores WHERE id NOT IN (
			SELECT id FROM scores ORDER BY score DESC, id ASC LIMIT ?
		)`, Size); err != nil {
		return nil, fmt.Errorf("trim scores: %w", err)
	}
	if entries, err = top(ctx, tx); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit submit: %w", err)
	}
	return entries, nil
}

var _ Store = (*SQLiteStore)(nil)
