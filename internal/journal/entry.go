// Package journal is the core of the service: the persisted entry model,
// the entry store adapter, the in-session entry list, and the submission
// orchestrator that coordinates classification, optimistic insertion,
// persistence, and suggestion enrichment.
package journal

import (
	"time"

	"moodscribe/internal/mood"
)

// Entry is the persisted unit: a classified journal entry plus optional
// suggestion enrichment.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	// JournalEntry is the original input text, or a synthesized description
	// for image-sourced entries.
	JournalEntry     string  `json:"journalEntry"`
	Mood             string  `json:"mood"`
	MoodScore        int     `json:"moodScore"`
	MentalSolution   *string `json:"mentalSolution,omitempty"`
	PhysicalActivity *string `json:"physicalActivity,omitempty"`
	Quote            *string `json:"quote,omitempty"`
	// PhotoKey references the archived capture in object storage, if any.
	PhotoKey string `json:"photoKey,omitempty"`
	// Pending marks an optimistic entry whose store write has not confirmed.
	Pending bool `json:"pending,omitempty"`
}

// Draft is the field set handed to the store; id and the authoritative
// timestamp are assigned on successful write.
type Draft struct {
	JournalEntry string
	Mood         string
	MoodScore    int
	PhotoKey     string
}

// AppendResult carries the store-assigned identity of a written entry.
type AppendResult struct {
	ID        string
	CreatedAt time.Time
}

// applySuggestions layers non-nil suggestion fields onto the entry.
func (e *Entry) applySuggestions(s mood.Suggestions) {
	if s.MentalSolution != nil {
		e.MentalSolution = s.MentalSolution
	}
	if s.PhysicalActivity != nil {
		e.PhysicalActivity = s.PhysicalActivity
	}
	if s.Quote != nil {
		e.Quote = s.Quote
	}
}
