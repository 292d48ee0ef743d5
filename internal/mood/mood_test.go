package mood

import (
	"encoding/json"
	"testing"
)

func TestNewSetAppendsSentinel(t *testing.T) {
	s := NewSet([]string{"Happy", "Sad"})
	if !s.Contains(Sentinel) {
		t.Fatalf("sentinel missing from custom set")
	}
	names := s.Names()
	if names[len(names)-1] != Sentinel {
		t.Fatalf("sentinel not appended last: %v", names)
	}
}

func TestNewSetDropsBlanksAndDuplicates(t *testing.T) {
	s := NewSet([]string{" Happy ", "", "Happy", "Sad"})
	names := s.Names()
	want := []string{"Happy", "Sad", Sentinel}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestDefaultSetMembership(t *testing.T) {
	s := DefaultSet()
	for _, name := range []string{"Happy", "Overwhelmed", "Nervous", Sentinel} {
		if !s.Contains(name) {
			t.Fatalf("default set missing %q", name)
		}
	}
	if s.Contains("Euphoric") {
		t.Fatalf("unexpected member")
	}
	if s.Contains("happy") {
		t.Fatalf("membership must be case-sensitive")
	}
}

func TestDecodeAnalysis(t *testing.T) {
	set := DefaultSet()

	a, err := DecodeAnalysis(json.RawMessage(`{"mood":"Anxious","moodScore":80}`), set)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.Mood != "Anxious" || a.MoodScore != 80 {
		t.Fatalf("unexpected analysis: %+v", a)
	}

	if _, err := DecodeAnalysis(json.RawMessage(`{"mood":"Ecstatic","moodScore":50}`), set); err == nil {
		t.Fatalf("expected rejection of unknown mood")
	}
	if _, err := DecodeAnalysis(json.RawMessage(`{"mood":"Happy","moodScore":150}`), set); err == nil {
		t.Fatalf("expected rejection of out-of-range score")
	}
	if _, err := DecodeAnalysis(json.RawMessage(`{"mood":"Happy","moodScore":-1}`), set); err == nil {
		t.Fatalf("expected rejection of negative score")
	}
	if _, err := DecodeAnalysis(json.RawMessage(`not json`), set); err == nil {
		t.Fatalf("expected rejection of malformed payload")
	}
}

func TestDecodeAnalysisNormalizesSentinelScore(t *testing.T) {
	a, err := DecodeAnalysis(json.RawMessage(`{"mood":"No Face Detected","moodScore":42}`), DefaultSet())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !a.IsSentinel() {
		t.Fatalf("expected sentinel analysis: %+v", a)
	}
	if a.MoodScore != 0 {
		t.Fatalf("sentinel score not normalized: %d", a.MoodScore)
	}
}

func TestDecodeSuggestionsBlanksBecomeNil(t *testing.T) {
	s, err := DecodeSuggestions(json.RawMessage(`{"mentalSolution":"  breathe  ","physicalActivity":"   ","quote":""}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.MentalSolution == nil || *s.MentalSolution != "breathe" {
		t.Fatalf("mental solution not trimmed: %+v", s)
	}
	if s.PhysicalActivity != nil || s.Quote != nil {
		t.Fatalf("blank fields must become nil: %+v", s)
	}
	if s.Empty() {
		t.Fatalf("one present field must not be empty")
	}
}

func TestSuggestionsEmpty(t *testing.T) {
	if !(Suggestions{}).Empty() {
		t.Fatalf("zero value must be empty")
	}
	q := "quote"
	if (Suggestions{Quote: &q}).Empty() {
		t.Fatalf("present quote must not be empty")
	}
}
