package mood

import (
	"context"
	"strings"

	"moodscribe/internal/llm"
	"moodscribe/internal/prompt"
)

// MinEntryLength is the minimum trimmed length of a text entry.
const MinEntryLength = 10

// Classifier obtains a mood classification from the model client.
// It never persists anything; the only side effect is the network call.
type Classifier struct {
	cli llm.Client
	set *Set
}

func NewClassifier(cli llm.Client, set *Set) *Classifier {
	if set == nil {
		set = DefaultSet()
	}
	return &Classifier{cli: cli, set: set}
}

// Set returns the mood set the classifier validates against.
func (c *Classifier) Set() *Set { return c.set }

// AnalyzeText classifies a free-text journal entry. Entries shorter than
// MinEntryLength after trimming are rejected locally with a ValidationError.
func (c *Classifier) AnalyzeText(ctx context.Context, entry string) (Analysis, error) {
	trimmed := strings.TrimSpace(entry)
	if len(trimmed) < MinEntryLength {
		return Analysis{}, &ValidationError{Msg: "Please write a bit more in your journal entry."}
	}

	p, err := prompt.Build(textPromptSpec(c.set), map[string]any{"journalEntry": trimmed})
	if err != nil {
		return Analysis{}, &ClassificationError{Err: err}
	}
	raw, err := c.cli.GenerateJSON(ctx, llm.Request{
		Phase:  "classify_text",
		Prompt: p,
		Schema: analysisSchema(c.set),
		Safety: classifySafety,
	})
	if err != nil {
		return Analysis{}, &ClassificationError{Err: err}
	}
	a, err := DecodeAnalysis(raw, c.set)
	if err != nil {
		return Analysis{}, &ClassificationError{Err: err}
	}
	return a, nil
}

// AnalyzeFace classifies a captured facial image. A missing payload is
// rejected locally with a ValidationError. When no clear face is visible
// the model answers with the sentinel mood and score 0.
func (c *Classifier) AnalyzeFace(ctx context.Context, mimeType string, data []byte) (Analysis, error) {
	if len(data) == 0 {
		return Analysis{}, &ValidationError{Msg: "No photo provided for analysis."}
	}
	if strings.TrimSpace(mimeType) == "" {
		mimeType = "image/jpeg"
	}

	p, err := prompt.Build(facePromptSpec(c.set), nil)
	if err != nil {
		return Analysis{}, &ClassificationError{Err: err}
	}
	raw, err := c.cli.GenerateJSON(ctx, llm.Request{
		Phase:  "classify_face",
		Prompt: p,
		Image:  &llm.Blob{MIMEType: mimeType, Data: data},
		Schema: analysisSchema(c.set),
		Safety: classifySafety,
	})
	if err != nil {
		return Analysis{}, &ClassificationError{Err: err}
	}
	a, err := DecodeAnalysis(raw, c.set)
	if err != nil {
		return Analysis{}, &ClassificationError{Err: err}
	}
	return a, nil
}

var classifySafety = []llm.SafetySetting{
	{Category: llm.HarmCategoryHateSpeech, Threshold: llm.BlockOnlyHigh},
	{Category: llm.HarmCategoryDangerousContent, Threshold: llm.BlockOnlyHigh},
	{Category: llm.HarmCategoryHarassment, Threshold: llm.BlockMediumAndAbove},
	{Category: llm.HarmCategorySexuallyExplicit, Threshold: llm.BlockMediumAndAbove},
	{Category: llm.HarmCategoryCivicIntegrity, Threshold: llm.BlockMediumAndAbove},
}

func analysisFields(set *Set) []prompt.Field {
	return []prompt.Field{
		{
			Name: "mood", Type: "string", Required: true,
			Description: "The detected mood. Must be one of: " + strings.Join(set.Names(), ", ") + ".",
		},
		{
			Name: "moodScore", Type: "integer", Required: true,
			Description: "A score from 0 to 100 for the intensity of the mood. Higher means more intense or severe.",
		},
	}
}

func textPromptSpec(set *Set) prompt.Spec {
	return prompt.Spec{
		Purpose:      "Analyze the user's journal entry to detect their mood.",
		Background:   "The journal entry is in the INPUT payload under journalEntry.",
		OutputFields: analysisFields(set),
		Rules: []string{
			"Categorize the mood strictly from the allowed list.",
			"Score the intensity of the detected mood from 0 to 100.",
		},
		OutputFormat: "Respond in a direct JSON format.",
		Language:     "English",
	}
}

func facePromptSpec(set *Set) prompt.Spec {
	return prompt.Spec{
		Purpose:      "Analyze the facial expression in the attached image for a deep analysis of the user's mood.",
		Background:   "Look for subtle cues in the expression (tension in the brow, the shape of the mouth, the look in the eyes).",
		OutputFields: analysisFields(set),
		Rules: []string{
			"First determine if a clear human face is visible.",
			"If no clear face is detected, respond with \"" + Sentinel + "\" as the mood and a moodScore of 0.",
			"If a face is detected, categorize the mood strictly from the allowed list and score its intensity from 0 to 100.",
		},
		OutputFormat: "Respond in a direct JSON format.",
		Language:     "English",
	}
}

func analysisSchema(set *Set) *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"mood": {
				Type:        llm.TypeString,
				Enum:        set.Names(),
				Description: "The detected mood of the user.",
			},
			"moodScore": {
				Type:        llm.TypeInteger,
				Description: "A score from 0 to 100 representing the intensity of the mood.",
			},
		},
		Required: []string{"mood", "moodScore"},
	}
}
