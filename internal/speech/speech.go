// Package speech converts result text to synthesized audio on demand.
// Audio is never persisted; a per-process LRU keeps repeated reads of the
// same text from hitting the model twice within a session.
package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"moodscribe/internal/llm"
)

const defaultVoice = "Algenib"

// SpeechError reports a failed synthesis call. It never affects entry state.
type SpeechError struct {
	Err error
}

func (e *SpeechError) Error() string { return "speech: synthesis failed: " + e.Err.Error() }
func (e *SpeechError) Unwrap() error { return e.Err }

// Audio is an in-memory audio payload.
type Audio struct {
	MIMEType string
	Data     []byte
}

// DataURI renders the payload as a data URI for direct playback.
func (a Audio) DataURI() string {
	return "data:" + a.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}

// Service synthesizes speech through the model client.
type Service struct {
	cli   llm.SpeechClient
	voice string
	cache *lru.Cache[string, Audio]
}

func New(cli llm.SpeechClient, voice string) (*Service, error) {
	if strings.TrimSpace(voice) == "" {
		voice = defaultVoice
	}
	cache, err := lru.New[string, Audio](128)
	if err != nil {
		return nil, err
	}
	return &Service{cli: cli, voice: voice, cache: cache}, nil
}

// Synthesize returns WAV audio for the given text. Identical texts within
// the process lifetime are served from the cache.
func (s *Service) Synthesize(ctx context.Context, text string) (Audio, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Audio{}, &SpeechError{Err: errors.New("text is required")}
	}
	if cached, ok := s.cache.Get(text); ok {
		return cached, nil
	}

	pcm, err := s.cli.GenerateSpeech(ctx, text, s.voice)
	if err != nil {
		return Audio{}, &SpeechError{Err: err}
	}
	if len(pcm) == 0 {
		return Audio{}, &SpeechError{Err: errors.New("empty audio payload")}
	}

	audio := Audio{MIMEType: "audio/wav", Data: wrapWAV(pcm)}
	s.cache.Add(text, audio)
	return audio, nil
}
