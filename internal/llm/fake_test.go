package llm

import (
	"context"
	"encoding/json"
	"testing"
)

func TestFakeClientPhases(t *testing.T) {
	f := NewFakeClient()
	ctx := context.Background()

	raw, err := f.GenerateJSON(ctx, Request{Phase: "classify_text"})
	if err != nil {
		t.Fatalf("classify_text: %v", err)
	}
	var analysis struct {
		Mood      string `json:"mood"`
		MoodScore int    `json:"moodScore"`
	}
	if err := json.Unmarshal(raw, &analysis); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if analysis.Mood == "" {
		t.Fatalf("empty mood in %s", raw)
	}

	raw, err = f.GenerateJSON(ctx, Request{Phase: "classify_face"})
	if err != nil {
		t.Fatalf("classify_face: %v", err)
	}
	if err := json.Unmarshal(raw, &analysis); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if analysis.Mood != "No Face Detected" || analysis.MoodScore != 0 {
		t.Fatalf("unexpected face payload: %s", raw)
	}

	raw, err = f.GenerateJSON(ctx, Request{Phase: "suggest"})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	var sugg map[string]string
	if err := json.Unmarshal(raw, &sugg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"mentalSolution", "physicalActivity", "quote"} {
		if sugg[key] == "" {
			t.Fatalf("missing %s in %s", key, raw)
		}
	}
}

func TestFakeClientUnknownPhase(t *testing.T) {
	raw, err := NewFakeClient().GenerateJSON(context.Background(), Request{Phase: "unknown"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(raw) != "{}" {
		t.Fatalf("expected empty object, got %s", raw)
	}
}

type recordingHook struct {
	before []string
	after  []string
}

func (h *recordingHook) Before(_ context.Context, phase, _ string, _ any) {
	h.before = append(h.before, phase)
}

func (h *recordingHook) After(_ context.Context, phase string, _ json.RawMessage, _ error) {
	h.after = append(h.after, phase)
}

func TestFakeClientInvokesHook(t *testing.T) {
	hook := &recordingHook{}
	cli := WithHook(NewFakeClient(), hook)

	if _, err := cli.GenerateJSON(context.Background(), Request{Phase: "suggest"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(hook.before) != 1 || hook.before[0] != "suggest" {
		t.Fatalf("before hook not invoked: %v", hook.before)
	}
	if len(hook.after) != 1 || hook.after[0] != "suggest" {
		t.Fatalf("after hook not invoked: %v", hook.after)
	}
}
