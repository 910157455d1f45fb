package domain

// Mood is the overall mood detected for a journal entry.
type Mood string

const (
	MoodEnergized  Mood = "energized"
	MoodReflective Mood = "reflective"
	MoodAnxious    Mood = "anxious"
	MoodExcited    Mood = "excited"
	MoodCalm       Mood = "calm"
	MoodFrustrated Mood = "frustrated"
	MoodHopeful    Mood = "hopeful"
	MoodScattered  Mood = "scattered"
)

func (m Mood) String() string { return string(m) }

func (m Mood) IsValid() bool {
	switch m {
	case MoodEnergized, MoodReflective, MoodAnxious, MoodExcited,
		MoodCalm, MoodFrustrated, MoodHopeful, MoodScattered:
		return true
	}
	return false
}

// ClampMood maps an arbitrary model-returned string onto the mood set.
// The database enforces the same set via a check constraint, so an
// out-of-set value is substituted with the default instead of failing
// the insert.
func ClampMood(s string) Mood {
	m := Mood(s)
	if m.IsValid() {
		return m
	}
	return MoodReflective
}

// IdeaCategory classifies an extracted idea.
type IdeaCategory string

const (
	CategoryProduct   IdeaCategory = "product"
	CategoryContent   IdeaCategory = "content"
	CategoryBusiness  IdeaCategory = "business"
	CategoryPersonal  IdeaCategory = "personal"
	CategoryTechnical IdeaCategory = "technical"
	CategoryCreative  IdeaCategory = "creative"
)

func (c IdeaCategory) String() string { return string(c) }

func (c IdeaCategory) IsValid() bool {
	switch c {
	case CategoryProduct, CategoryContent, CategoryBusiness,
		CategoryPersonal, CategoryTechnical, CategoryCreative:
		return true
	}
	return false
}

// IsSoftware reports whether plan generation should use the technical
// planner prompt for this category.
func (c IdeaCategory) IsSoftware() bool {
	return c == CategoryProduct || c == CategoryTechnical
}

// ClampCategory maps an arbitrary model-returned string onto the
// category set, defaulting to personal.
func ClampCategory(s string) IdeaCategory {
	c := IdeaCategory(s)
	if c.IsValid() {
		return c
	}
	return CategoryPersonal
}

// IdeaStatus is the user-driven lifecycle state of an idea.
type IdeaStatus string

const (
	StatusRaw        IdeaStatus = "raw"
	StatusDeveloping IdeaStatus = "developing"
	StatusReady      IdeaStatus = "ready"
	StatusShipped    IdeaStatus = "shipped"
	StatusArchived   IdeaStatus = "archived"
)

func (s IdeaStatus) String() string { return string(s) }

func (s IdeaStatus) IsValid() bool {
	switch s {
	case StatusRaw, StatusDeveloping, StatusReady, StatusShipped, StatusArchived:
		return true
	}
	return false
}

// PageKey names one of the three writing surfaces of an idea.
type PageKey string

const (
	PageSummary   PageKey = "summary"
	PageDevelop   PageKey = "develop"
	PageReference PageKey = "reference"
)

// PageKeys lists all page keys in display order.
var PageKeys = []PageKey{PageSummary, PageDevelop, PageReference}

func (k PageKey) String() string { return string(k) }

func (k PageKey) IsValid() bool {
	switch k {
	case PageSummary, PageDevelop, PageReference:
		return true
	}
	return false
}

// HighlightType classifies an inline feedback annotation.
type HighlightType string

const (
	HighlightQuestion   HighlightType = "question"
	HighlightSuggestion HighlightType = "suggestion"
	HighlightEdit       HighlightType = "edit"
	HighlightVoice      HighlightType = "voice"
	HighlightWeakness   HighlightType = "weakness"
	HighlightEvidence   HighlightType = "evidence"
	HighlightWordiness  HighlightType = "wordiness"
	HighlightFactcheck  HighlightType = "factcheck"
)

func (t HighlightType) String() string { return string(t) }

func (t HighlightType) IsValid() bool {
	switch t {
	case HighlightQuestion, HighlightSuggestion, HighlightEdit, HighlightVoice,
		HighlightWeakness, HighlightEvidence, HighlightWordiness, HighlightFactcheck:
		return true
	}
	return false
}
