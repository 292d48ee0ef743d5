package llm

import (
	"context"
	"encoding/json"
)

// Client generates structured JSON from a prompt and input payload.
type Client interface {
	Name() string
	GenerateJSON(ctx context.Context, req Request) (json.RawMessage, error)
	Close() error
}

// SpeechClient synthesizes speech audio for plain text.
// The returned bytes are raw PCM frames (24kHz, 16-bit, mono).
type SpeechClient interface {
	GenerateSpeech(ctx context.Context, text, voice string) ([]byte, error)
}

// Request describes a single structured-output generation call.
type Request struct {
	// Phase labels the call for hooks and logging (e.g. "classify_text").
	Phase string
	// Prompt is the instruction text.
	Prompt string
	// Input is an optional JSON payload appended to the prompt.
	Input any
	// Image is an optional inline image part.
	Image *Blob
	// Schema constrains the model output when the backend supports it.
	Schema *Schema
	// Safety settings applied to the call.
	Safety []SafetySetting
}

// Blob is an inline binary part.
type Blob struct {
	MIMEType string
	Data     []byte
}

// Schema is a minimal response-schema description, backend-agnostic.
type Schema struct {
	Type        string
	Description string
	Enum        []string
	Properties  map[string]*Schema
	Required    []string
	Items       *Schema
}

// Schema type names (wire values of the Gemini API).
const (
	TypeObject  = "OBJECT"
	TypeString  = "STRING"
	TypeInteger = "INTEGER"
	TypeArray   = "ARRAY"
)

// SafetySetting pairs a harm category with a block threshold,
// using the wire names of the Gemini API.
type SafetySetting struct {
	Category  string
	Threshold string
}

const (
	HarmCategoryHateSpeech       = "HARM_CATEGORY_HATE_SPEECH"
	HarmCategoryDangerousContent = "HARM_CATEGORY_DANGEROUS_CONTENT"
	HarmCategoryHarassment       = "HARM_CATEGORY_HARASSMENT"
	HarmCategorySexuallyExplicit = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmCategoryCivicIntegrity   = "HARM_CATEGORY_CIVIC_INTEGRITY"

	BlockOnlyHigh       = "BLOCK_ONLY_HIGH"
	BlockMediumAndAbove = "BLOCK_MEDIUM_AND_ABOVE"
)
