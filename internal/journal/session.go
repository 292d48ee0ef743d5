package journal

import (
	"sync"
	"time"

	"moodscribe/internal/mood"
)

// EntryKey is a stable local key for a session slot. It is independent of
// the entry's eventually-assigned store id, so id substitution and
// suggestion merges address the same slot even while submissions overlap.
type EntryKey uint64

// Session is the in-memory ordered entry list a client observes. It is
// mutated only by the orchestrator.
type Session struct {
	mu      sync.Mutex
	slots   []*slot
	nextKey EntryKey
}

type slot struct {
	key   EntryKey
	entry Entry
}

func NewSession() *Session { return &Session{} }

// Seed replaces the list content with persisted history.
func (s *Session) Seed(entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots = make([]*slot, 0, len(entries))
	for _, e := range entries {
		s.nextKey++
		s.slots = append(s.slots, &slot{key: s.nextKey, entry: e})
	}
}

// Insert appends an optimistic entry and returns its slot key.
func (s *Session) Insert(e Entry) EntryKey {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextKey++
	s.slots = append(s.slots, &slot{key: s.nextKey, entry: e})
	return s.nextKey
}

// Confirm substitutes the store-assigned id and timestamp in place,
// preserving the slot position and any suggestion fields already merged.
func (s *Session) Confirm(key EntryKey, id string, createdAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl := s.findLocked(key)
	if sl == nil {
		return false
	}
	sl.entry.ID = id
	sl.entry.CreatedAt = createdAt
	sl.entry.Pending = false
	return true
}

// Merge layers suggestion fields onto the slot's entry.
func (s *Session) Merge(key EntryKey, sugg mood.Suggestions) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl := s.findLocked(key)
	if sl == nil {
		return false
	}
	sl.entry.applySuggestions(sugg)
	return true
}

// Remove rolls an optimistic entry back out of the list.
func (s *Session) Remove(key EntryKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sl := range s.slots {
		if sl.key == key {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a copy of the slot's entry.
func (s *Session) Get(key EntryKey) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sl := s.findLocked(key); sl != nil {
		return sl.entry, true
	}
	return Entry{}, false
}

// Snapshot returns a copy of the list in display order.
func (s *Session) Snapshot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.slots))
	for _, sl := range s.slots {
		out = append(out, sl.entry)
	}
	return out
}

// Len returns the number of entries in the list.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

func (s *Session) findLocked(key EntryKey) *slot {
	for _, sl := range s.slots {
		if sl.key == key {
			return sl
		}
	}
	return nil
}
