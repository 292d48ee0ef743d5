package llm

import (
	"context"
	"encoding/json"
)

// FakeClient returns deterministic, minimal JSON payloads per phase for offline/testing.
type FakeClient struct{}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateJSON(ctx context.Context, req Request) (json.RawMessage, error) {
	if hook := HookFrom(ctx); hook != nil {
		hook.Before(ctx, req.Phase, req.Prompt, req.Input)
	}
	var obj any
	switch req.Phase {
	case "classify_text":
		obj = map[string]any{
			"mood":      "Calm",
			"moodScore": 30,
		}
	case "classify_face":
		obj = map[string]any{
			"mood":      "No Face Detected",
			"moodScore": 0,
		}
	case "suggest":
		obj = map[string]any{
			"mentalSolution":   "Take three slow breaths and name one thing you are grateful for.",
			"physicalActivity": "Step outside for a five-minute walk.",
			"quote":            "The quieter you become, the more you can hear.",
		}
	default:
		// generic empty JSON object
		obj = map[string]any{}
	}
	b, _ := json.Marshal(obj)
	raw := json.RawMessage(b)
	if hook := HookFrom(ctx); hook != nil {
		hook.After(ctx, req.Phase, raw, nil)
	}
	return raw, nil
}

// GenerateSpeech returns a short silent PCM clip.
func (f *FakeClient) GenerateSpeech(_ context.Context, _, _ string) ([]byte, error) {
	return make([]byte, 4800), nil
}
