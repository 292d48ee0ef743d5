package journal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"moodscribe/internal/mood"
)

// MemoryStore is the in-process store used when no database is configured,
// and by tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Append(_ context.Context, draft Draft) (AppendResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := AppendResult{ID: newEntryID(), CreatedAt: time.Now().UTC()}
	s.entries = append(s.entries, Entry{
		ID:           res.ID,
		CreatedAt:    res.CreatedAt,
		JournalEntry: draft.JournalEntry,
		Mood:         draft.Mood,
		MoodScore:    draft.MoodScore,
		PhotoKey:     draft.PhotoKey,
	})
	return res, nil
}

func (s *MemoryStore) ListAll(_ context.Context) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *MemoryStore) Update(_ context.Context, id string, patch mood.Suggestions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].applySuggestions(patch)
			return nil
		}
	}
	return &PersistenceError{Op: "update", Err: fmt.Errorf("no entry with id %s", id)}
}
