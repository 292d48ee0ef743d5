package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"

	"moodscribe/internal/mood"
)

// PostgresStore persists entries in a journal_entries table.
type PostgresStore struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *PostgresStore) ensureSchema() error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store is nil")
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS journal_entries (
  id TEXT PRIMARY KEY,
  journal_entry TEXT NOT NULL,
  mood TEXT NOT NULL,
  mood_score INTEGER NOT NULL DEFAULT 0,
  mental_solution TEXT,
  physical_activity TEXT,
  quote TEXT,
  photo_key TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_journal_entries_created_at ON journal_entries (created_at);
`)
	})
	return s.schemaErr
}

func (s *PostgresStore) Append(ctx context.Context, draft Draft) (AppendResult, error) {
	if err := s.ensureSchema(); err != nil {
		return AppendResult{}, &PersistenceError{Op: "append", Err: err}
	}
	res := AppendResult{ID: newEntryID()}
	err := s.db.QueryRowContext(ctx, `
INSERT INTO journal_entries (id, journal_entry, mood, mood_score, photo_key)
VALUES ($1,$2,$3,$4,$5)
RETURNING created_at`,
		res.ID, draft.JournalEntry, draft.Mood, draft.MoodScore, draft.PhotoKey,
	).Scan(&res.CreatedAt)
	if err != nil {
		return AppendResult{}, &PersistenceError{Op: "append", Err: err}
	}
	return res, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) []Entry {
	if err := s.ensureSchema(); err != nil {
		log.Printf("journal: list entries: %v", err)
		return []Entry{}
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, journal_entry, mood, mood_score, mental_solution, physical_activity, quote, photo_key, created_at
FROM journal_entries
ORDER BY created_at ASC, id ASC`)
	if err != nil {
		log.Printf("journal: list entries: %v", err)
		return []Entry{}
	}
	defer rows.Close()

	out := make([]Entry, 0, 32)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.JournalEntry, &e.Mood, &e.MoodScore,
			&e.MentalSolution, &e.PhysicalActivity, &e.Quote,
			&e.PhotoKey, &e.CreatedAt,
		); err != nil {
			log.Printf("journal: scan entry: %v", err)
			return []Entry{}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		log.Printf("journal: list entries: %v", err)
		return []Entry{}
	}
	return out
}

func (s *PostgresStore) Update(ctx context.Context, id string, patch mood.Suggestions) error {
	if err := s.ensureSchema(); err != nil {
		return &PersistenceError{Op: "update", Err: err}
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return &PersistenceError{Op: "update", Err: fmt.Errorf("id is required")}
	}
	res, err := s.db.ExecContext(ctx, `
UPDATE journal_entries
SET mental_solution = COALESCE($2, mental_solution),
    physical_activity = COALESCE($3, physical_activity),
    quote = COALESCE($4, quote)
WHERE id = $1`,
		id, patch.MentalSolution, patch.PhysicalActivity, patch.Quote)
	if err != nil {
		return &PersistenceError{Op: "update", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &PersistenceError{Op: "update", Err: fmt.Errorf("no entry with id %s", id)}
	}
	return nil
}
