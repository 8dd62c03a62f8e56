package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/elitedog/backend/internal/model"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS contacts (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);
CREATE INDEX IF NOT EXISTS contacts_created_at_idx ON contacts (created_at DESC);`

// SQLiteSubmissionRepository stores submissions in a single SQLite file.
// Insertion order is tracked by the implicit rowid.
type SQLiteSubmissionRepository struct {
	db *sql.DB
}

var _ SubmissionRepository = (*SQLiteSubmissionRepository)(nil)

// OpenSQLite opens (or creates) the database at path and ensures the contacts table exists.
func OpenSQLite(ctx context.Context, path string) (*SQLiteSubmissionRepository, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// single writer; readers share the same connection
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: schema: %w", err)
	}
	return &SQLiteSubmissionRepository{db: db}, nil
}

// Insert adds a contacts row and reads back the store-assigned created_at.
func (r *SQLiteSubmissionRepository) Insert(ctx context.Context, s *model.Submission) error {
	var createdAt string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO contacts (id, name, email, message)
		 VALUES (?, ?, ?, ?)
		 RETURNING created_at`,
		s.ID, s.Name, s.Email, s.Message,
	).Scan(&createdAt)
	if err != nil {
		return err
	}
	ts, err := parseSQLiteTime(createdAt)
	if err != nil {
		return err
	}
	s.CreatedAt = ts
	return nil
}

// ListAll returns all contacts rows ordered by created_at DESC.
func (r *SQLiteSubmissionRepository) ListAll(ctx context.Context) ([]*model.Submission, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, message, created_at
		 FROM contacts
		 ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []*model.Submission{}
	for rows.Next() {
		var (
			s         model.Submission
			createdAt string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Message, &createdAt); err != nil {
			return nil, err
		}
		if s.CreatedAt, err = parseSQLiteTime(createdAt); err != nil {
			return nil, err
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}

// Ping checks the database file is still usable.
func (r *SQLiteSubmissionRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close releases the underlying database handle.
func (r *SQLiteSubmissionRepository) Close() error {
	return r.db.Close()
}

func parseSQLiteTime(s string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: created_at %q: %w", s, err)
	}
	return ts.UTC(), nil
}
