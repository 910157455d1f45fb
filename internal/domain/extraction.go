package domain

// ExtractedIdea is one idea as returned by the extraction call, before
// it is persisted and assigned an entry.
type ExtractedIdea struct {
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Category      IdeaCategory `json:"category"`
	Confidence    float64      `json:"confidence"`
	ActionItems   []string     `json:"action_items"`
	Tags          []string     `json:"tags"`
	AISuggestions []string     `json:"ai_suggestions"`
}

// ExtractionResult is the typed contract of the idea-extraction call.
type ExtractionResult struct {
	Title   string          `json:"title"`
	Summary string          `json:"summary"`
	Mood    Mood            `json:"mood"`
	Tags    []string        `json:"tags"`
	Ideas   []ExtractedIdea `json:"ideas"`
}

// IdeaContext is the slice of an idea that accompanies feedback, plan,
// and chat prompts.
type IdeaContext struct {
	Title         string
	Description   string
	Category      IdeaCategory
	ActionItems   []string
	Tags          []string
	AISuggestions []string
}
