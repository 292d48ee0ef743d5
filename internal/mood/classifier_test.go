package mood

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"moodscribe/internal/llm"
)

// stubClient returns a canned payload and records the last request.
type stubClient struct {
	raw   json.RawMessage
	err   error
	calls int
	last  llm.Request
}

func (c *stubClient) Name() string { return "stub" }

func (c *stubClient) GenerateJSON(_ context.Context, req llm.Request) (json.RawMessage, error) {
	c.calls++
	c.last = req
	return c.raw, c.err
}

func (c *stubClient) Close() error { return nil }

func TestAnalyzeTextShortEntryRejectedLocally(t *testing.T) {
	cli := &stubClient{}
	c := NewClassifier(cli, nil)

	for _, entry := range []string{"", "hi", "   padded   "} {
		_, err := c.AnalyzeText(context.Background(), entry)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("entry %q: expected validation error, got %v", entry, err)
		}
		if verr.Msg != "Please write a bit more in your journal entry." {
			t.Fatalf("unexpected message %q", verr.Msg)
		}
	}
	if cli.calls != 0 {
		t.Fatalf("short entries must not reach the model, got %d calls", cli.calls)
	}
}

func TestAnalyzeTextHappyPath(t *testing.T) {
	cli := &stubClient{raw: json.RawMessage(`{"mood":"Stressed","moodScore":65}`)}
	c := NewClassifier(cli, nil)

	a, err := c.AnalyzeText(context.Background(), "Deadlines are piling up and I can't keep track.")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if a.Mood != "Stressed" || a.MoodScore != 65 {
		t.Fatalf("unexpected analysis: %+v", a)
	}
	if cli.last.Phase != "classify_text" {
		t.Fatalf("unexpected phase %q", cli.last.Phase)
	}
	if cli.last.Schema == nil || cli.last.Schema.Type != llm.TypeObject {
		t.Fatalf("missing response schema")
	}
	if len(cli.last.Safety) == 0 {
		t.Fatalf("missing safety settings")
	}
	if !strings.Contains(cli.last.Prompt, "journalEntry") {
		t.Fatalf("prompt lacks input reference:\n%s", cli.last.Prompt)
	}
}

func TestAnalyzeTextWrapsFailures(t *testing.T) {
	cases := map[string]*stubClient{
		"transport":      {err: errors.New("connection reset")},
		"malformed json": {raw: json.RawMessage(`{"mood":`)},
		"unknown mood":   {raw: json.RawMessage(`{"mood":"Jubilant","moodScore":50}`)},
		"score range":    {raw: json.RawMessage(`{"mood":"Happy","moodScore":101}`)},
	}
	for name, cli := range cases {
		_, err := NewClassifier(cli, nil).AnalyzeText(context.Background(), "A long enough entry for analysis.")
		var cerr *ClassificationError
		if !errors.As(err, &cerr) {
			t.Fatalf("%s: expected classification error, got %v", name, err)
		}
	}
}

func TestAnalyzeFaceSendsImagePart(t *testing.T) {
	cli := &stubClient{raw: json.RawMessage(`{"mood":"Tired","moodScore":55}`)}
	c := NewClassifier(cli, nil)

	data := []byte{0xff, 0xd8, 0xff}
	a, err := c.AnalyzeFace(context.Background(), "image/png", data)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if a.Mood != "Tired" {
		t.Fatalf("unexpected analysis: %+v", a)
	}
	if cli.last.Phase != "classify_face" {
		t.Fatalf("unexpected phase %q", cli.last.Phase)
	}
	if cli.last.Image == nil || cli.last.Image.MIMEType != "image/png" {
		t.Fatalf("image part missing or wrong type: %+v", cli.last.Image)
	}
}

func TestAnalyzeFaceDefaultsMIMEType(t *testing.T) {
	cli := &stubClient{raw: json.RawMessage(`{"mood":"Calm","moodScore":20}`)}
	c := NewClassifier(cli, nil)

	if _, err := c.AnalyzeFace(context.Background(), "  ", []byte{1}); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if cli.last.Image.MIMEType != "image/jpeg" {
		t.Fatalf("expected jpeg default, got %q", cli.last.Image.MIMEType)
	}
}

func TestAnalyzeFaceEmptyPayloadRejectedLocally(t *testing.T) {
	cli := &stubClient{}
	_, err := NewClassifier(cli, nil).AnalyzeFace(context.Background(), "image/jpeg", nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Msg != "No photo provided for analysis." {
		t.Fatalf("unexpected message %q", verr.Msg)
	}
	if cli.calls != 0 {
		t.Fatalf("empty payload must not reach the model")
	}
}

func TestAnalyzeFaceAcceptsSentinel(t *testing.T) {
	cli := &stubClient{raw: json.RawMessage(`{"mood":"No Face Detected","moodScore":0}`)}
	a, err := NewClassifier(cli, nil).AnalyzeFace(context.Background(), "image/jpeg", []byte{1})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !a.IsSentinel() || a.MoodScore != 0 {
		t.Fatalf("unexpected analysis: %+v", a)
	}
}

func TestSuggestRequiresMood(t *testing.T) {
	cli := &stubClient{}
	_, err := NewSuggester(cli).Suggest(context.Background(), "  ", "some entry")
	var serr *SuggestionError
	if !errors.As(err, &serr) {
		t.Fatalf("expected suggestion error, got %v", err)
	}
	if cli.calls != 0 {
		t.Fatalf("missing mood must not reach the model")
	}
}

func TestSuggestHappyPath(t *testing.T) {
	cli := &stubClient{raw: json.RawMessage(`{"mentalSolution":"Name three things you can see.","physicalActivity":"Walk around the block.","quote":"Storms pass."}`)}
	s := NewSuggester(cli)

	out, err := s.Suggest(context.Background(), "Anxious", "My heart races before every meeting.")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if out.Empty() {
		t.Fatalf("expected populated suggestions")
	}
	if cli.last.Phase != "suggest" {
		t.Fatalf("unexpected phase %q", cli.last.Phase)
	}
	input, ok := cli.last.Input.(map[string]any)
	if !ok {
		t.Fatalf("unexpected input type %T", cli.last.Input)
	}
	if input["mood"] != "Anxious" {
		t.Fatalf("mood not forwarded: %v", input)
	}
	if input["journalEntry"] != "My heart races before every meeting." {
		t.Fatalf("entry context not forwarded: %v", input)
	}
}

func TestSuggestPartialResponse(t *testing.T) {
	cli := &stubClient{raw: json.RawMessage(`{"quote":"Breathe."}`)}
	out, err := NewSuggester(cli).Suggest(context.Background(), "Calm", "")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if out.MentalSolution != nil || out.PhysicalActivity != nil {
		t.Fatalf("absent fields must stay nil: %+v", out)
	}
	if out.Quote == nil || *out.Quote != "Breathe." {
		t.Fatalf("quote lost: %+v", out)
	}
}
