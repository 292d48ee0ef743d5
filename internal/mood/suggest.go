package mood

import (
	"context"
	"errors"
	"strings"

	"moodscribe/internal/llm"
	"moodscribe/internal/prompt"
)

// Suggester fetches coping suggestions for an already-detected mood.
// It can be called independently of the classification's persistence.
type Suggester struct {
	cli llm.Client
}

func NewSuggester(cli llm.Client) *Suggester {
	return &Suggester{cli: cli}
}

// Suggest returns coping content for the given mood. The journal entry text
// is optional context. Blank fields in the model output stay absent.
func (s *Suggester) Suggest(ctx context.Context, moodName, entryText string) (Suggestions, error) {
	moodName = strings.TrimSpace(moodName)
	if moodName == "" {
		return Suggestions{}, &SuggestionError{Err: errors.New("mood is required")}
	}

	input := map[string]any{"mood": moodName}
	if t := strings.TrimSpace(entryText); t != "" {
		input["journalEntry"] = t
	}
	p, err := prompt.Build(suggestPromptSpec(), input)
	if err != nil {
		return Suggestions{}, &SuggestionError{Err: err}
	}
	raw, err := s.cli.GenerateJSON(ctx, llm.Request{
		Phase:  "suggest",
		Prompt: p,
		Input:  input,
		Schema: suggestionsSchema(),
		Safety: suggestSafety,
	})
	if err != nil {
		return Suggestions{}, &SuggestionError{Err: err}
	}
	out, err := DecodeSuggestions(raw)
	if err != nil {
		return Suggestions{}, &SuggestionError{Err: err}
	}
	return out, nil
}

var suggestSafety = []llm.SafetySetting{
	{Category: llm.HarmCategoryHateSpeech, Threshold: llm.BlockMediumAndAbove},
	{Category: llm.HarmCategoryDangerousContent, Threshold: llm.BlockMediumAndAbove},
	{Category: llm.HarmCategoryHarassment, Threshold: llm.BlockMediumAndAbove},
	{Category: llm.HarmCategorySexuallyExplicit, Threshold: llm.BlockMediumAndAbove},
	{Category: llm.HarmCategoryCivicIntegrity, Threshold: llm.BlockMediumAndAbove},
}

func suggestPromptSpec() prompt.Spec {
	return prompt.Spec{
		Purpose:    "Provide tailored coping content for the user's detected mood.",
		Background: "The detected mood (and optionally the journal entry for context) is in the INPUT payload.",
		OutputFields: []prompt.Field{
			{
				Name: "mentalSolution", Type: "string", Required: false,
				Description: "A short, actionable mental solution (like a mindfulness exercise or a coping strategy).",
			},
			{
				Name: "physicalActivity", Type: "string", Required: false,
				Description: "A simple, accessible physical activity suggestion (e.g., a 5-minute walk, stretching).",
			},
			{
				Name: "quote", Type: "string", Required: false,
				Description: "An inspiring or reflective quote relevant to the user's mood.",
			},
		},
		OutputFormat: "Respond in a direct JSON format.",
		Language:     "English",
	}
}

func suggestionsSchema() *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"mentalSolution":   {Type: llm.TypeString, Description: "A short, relevant mental solution or coping tip."},
			"physicalActivity": {Type: llm.TypeString, Description: "A simple physical activity suggestion."},
			"quote":            {Type: llm.TypeString, Description: "An inspiring or reflective quote."},
		},
	}
}
