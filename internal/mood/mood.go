// Package mood holds the mood-classification domain: the closed mood set,
// analysis/suggestion results, and the gateways that obtain them from the
// model client.
package mood

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Sentinel is the no-signal classification: a facial analysis that found
// no clear face. It always pairs with score 0 and suppresses suggestions.
const Sentinel = "No Face Detected"

// defaultNames is the canonical named-emotion set.
var defaultNames = []string{
	"Happy", "Sad", "Angry", "Anxious", "Calm",
	"Grateful", "Stressed", "Tired", "Overwhelmed", "Nervous",
}

// Set is a closed enumeration of mood names. The sentinel is always a member.
type Set struct {
	names []string
	index map[string]struct{}
}

// DefaultSet returns the canonical mood set.
func DefaultSet() *Set { return NewSet(defaultNames) }

// NewSet builds a set from the given names. Blank names are dropped,
// duplicates collapse, and the sentinel is appended if missing.
func NewSet(names []string) *Set {
	s := &Set{index: make(map[string]struct{}, len(names)+1)}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := s.index[name]; ok {
			continue
		}
		s.index[name] = struct{}{}
		s.names = append(s.names, name)
	}
	if _, ok := s.index[Sentinel]; !ok {
		s.index[Sentinel] = struct{}{}
		s.names = append(s.names, Sentinel)
	}
	return s
}

// Contains reports whether name is a member of the set.
func (s *Set) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// Names returns the member names in declaration order (sentinel last
// unless listed explicitly).
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Analysis is the classifier's result.
type Analysis struct {
	Mood      string `json:"mood"`
	MoodScore int    `json:"moodScore"`
}

// IsSentinel reports whether the analysis carries no mood signal.
func (a Analysis) IsSentinel() bool { return a.Mood == Sentinel }

// Suggestions is the optional enrichment obtained independently of the
// classification. Nil fields mean "no suggestion"; they must render as an
// omitted section, never as a placeholder string.
type Suggestions struct {
	MentalSolution   *string `json:"mentalSolution,omitempty"`
	PhysicalActivity *string `json:"physicalActivity,omitempty"`
	Quote            *string `json:"quote,omitempty"`
}

// Empty reports whether no suggestion field is present.
func (s Suggestions) Empty() bool {
	return s.MentalSolution == nil && s.PhysicalActivity == nil && s.Quote == nil
}

// DecodeAnalysis parses and validates a raw model response against the set.
// A sentinel mood has its score normalized to 0.
func DecodeAnalysis(raw json.RawMessage, set *Set) (Analysis, error) {
	var a Analysis
	if err := json.Unmarshal(raw, &a); err != nil {
		return Analysis{}, err
	}
	a.Mood = strings.TrimSpace(a.Mood)
	if !set.Contains(a.Mood) {
		return Analysis{}, fmt.Errorf("mood: %q is not in the mood set", a.Mood)
	}
	if a.MoodScore < 0 || a.MoodScore > 100 {
		return Analysis{}, fmt.Errorf("mood: score %d out of range [0,100]", a.MoodScore)
	}
	if a.IsSentinel() {
		a.MoodScore = 0
	}
	return a, nil
}

// DecodeSuggestions parses a raw model response. Blank fields become nil.
func DecodeSuggestions(raw json.RawMessage) (Suggestions, error) {
	var s Suggestions
	if err := json.Unmarshal(raw, &s); err != nil {
		return Suggestions{}, err
	}
	s.MentalSolution = trimField(s.MentalSolution)
	s.PhysicalActivity = trimField(s.PhysicalActivity)
	s.Quote = trimField(s.Quote)
	return s, nil
}

func trimField(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
