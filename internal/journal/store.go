package journal

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"moodscribe/internal/mood"
)

// Store is the entry store adapter: an append-only writer and ordered
// reader over a remote collection. Only the adapter assigns ids.
type Store interface {
	// Append writes a new entry atomically and returns the assigned id and
	// authoritative creation timestamp.
	Append(ctx context.Context, draft Draft) (AppendResult, error)
	// ListAll returns all entries ordered by creation time ascending.
	// On store failure it logs and returns an empty slice so history
	// display degrades gracefully instead of blocking.
	ListAll(ctx context.Context) []Entry
	// Update attaches late-arriving suggestions to a persisted entry.
	// Applying the same patch twice yields the same stored values.
	Update(ctx context.Context, id string, patch mood.Suggestions) error
}

// PersistenceError reports a failed store operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "journal: " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func newEntryID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return "entry-" + hex.EncodeToString(b[:])
}
