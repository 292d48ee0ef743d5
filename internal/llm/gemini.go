package llm

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	genai "google.golang.org/genai"
)

var ErrInvalidJSON = errors.New("llm: invalid JSON from model")

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli         *genai.Client
	model       string
	speechModel string
	rl          *rpsLimiter
}

func NewGeminiClient(ctx context.Context, model, speechModel string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	// Optional RPS limiter via env: LLM_RPS/GEMINI_RPS and LLM_BURST/GEMINI_BURST
	var rps float64
	var burst int
	if v := os.Getenv("LLM_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			rps = f
		}
	}
	if rps == 0 {
		if v := os.Getenv("GEMINI_RPS"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				rps = f
			}
		}
	}
	if v := os.Getenv("LLM_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			burst = n
		}
	}
	if burst == 0 {
		if v := os.Getenv("GEMINI_BURST"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				burst = n
			}
		}
	}
	rl := newRPSLimiter(rps, burst)
	return &GeminiClient{cli: cli, model: model, speechModel: speechModel, rl: rl}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error {
	if g.rl != nil {
		g.rl.Stop()
	}
	return nil
}

// GenerateJSON sends the prompt (plus optional input payload and image)
// and requests application/json constrained by the request schema.
func (g *GeminiClient) GenerateJSON(ctx context.Context, req Request) (json.RawMessage, error) {
	if hook := HookFrom(ctx); hook != nil {
		hook.Before(ctx, req.Phase, req.Prompt, req.Input)
	}

	full := req.Prompt
	if req.Input != nil {
		in, _ := json.MarshalIndent(req.Input, "", "  ")
		full = full + "\n\n[INPUT JSON]\n" + string(in)
	}
	parts := []*genai.Part{{Text: full}}
	if req.Image != nil {
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{
			MIMEType: req.Image.MIMEType,
			Data:     req.Image.Data,
		}})
	}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toGenaiSchema(req.Schema),
		SafetySettings:   toGenaiSafety(req.Safety),
	}
	log.Printf("LLM request (%s): %d bytes", req.Phase, len(full))

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		// Respect RPS limiter per attempt (each API call consumes a token).
		if err := g.rl.Acquire(ctx); err != nil {
			lastErr = err
			break
		}
		resp, err := g.cli.Models.GenerateContent(ctx, g.model,
			[]*genai.Content{{Parts: parts}}, cfg)
		if err != nil {
			lastErr = err
		} else if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = ErrInvalidJSON
		} else {
			txt := resp.Candidates[0].Content.Parts[0].Text
			raw := json.RawMessage(txt)
			if hook := HookFrom(ctx); hook != nil {
				hook.After(ctx, req.Phase, raw, nil)
			}
			return raw, nil
		}
		time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
	}
	if hook := HookFrom(ctx); hook != nil {
		hook.After(ctx, req.Phase, nil, lastErr)
	}
	return nil, lastErr
}

// GenerateSpeech synthesizes text into raw PCM audio via the TTS model.
func (g *GeminiClient) GenerateSpeech(ctx context.Context, text, voice string) ([]byte, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if err := g.rl.Acquire(ctx); err != nil {
			lastErr = err
			break
		}
		resp, err := g.cli.Models.GenerateContent(ctx, g.speechModel,
			[]*genai.Content{{Parts: []*genai.Part{{Text: text}}}}, cfg)
		if err != nil {
			lastErr = err
		} else if pcm := inlineAudio(resp); len(pcm) > 0 {
			return pcm, nil
		} else {
			lastErr = errors.New("llm: no audio in response")
		}
		time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
	}
	return nil, lastErr
}

func inlineAudio(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data
		}
	}
	return nil
}

func toGenaiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genai.Type(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
		Items:       toGenaiSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}

func toGenaiSafety(settings []SafetySetting) []*genai.SafetySetting {
	if len(settings) == 0 {
		return nil
	}
	out := make([]*genai.SafetySetting, 0, len(settings))
	for _, s := range settings {
		out = append(out, &genai.SafetySetting{
			Category:  genai.HarmCategory(s.Category),
			Threshold: genai.HarmBlockThreshold(s.Threshold),
		})
	}
	return out
}
