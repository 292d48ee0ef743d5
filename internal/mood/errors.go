package mood

// ValidationError reports input rejected locally, before any remote call.
// The message is safe to surface to the user.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ClassificationError reports a failed classification call. Transport
// failures and malformed model output are not distinguished.
type ClassificationError struct {
	Err error
}

func (e *ClassificationError) Error() string {
	return "mood: classification failed: " + e.Err.Error()
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// SuggestionError reports a failed suggestion call.
type SuggestionError struct {
	Err error
}

func (e *SuggestionError) Error() string {
	return "mood: suggestion fetch failed: " + e.Err.Error()
}

func (e *SuggestionError) Unwrap() error { return e.Err }
