package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Pages holds the markdown content of the three writing surfaces.
type Pages struct {
	Summary   string `json:"summary"`
	Develop   string `json:"develop"`
	Reference string `json:"reference"`
}

// Get returns the content of the named page.
func (p Pages) Get(key PageKey) string {
	switch key {
	case PageDevelop:
		return p.Develop
	case PageReference:
		return p.Reference
	default:
		return p.Summary
	}
}

// Combined joins all non-blank pages, used when sampling prior writing.
func (p Pages) Combined() string {
	var parts []string
	for _, s := range []string{p.Summary, p.Develop, p.Reference} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// IsBlank reports whether every page is empty or whitespace.
func (p Pages) IsBlank() bool {
	return strings.TrimSpace(p.Summary) == "" &&
		strings.TrimSpace(p.Develop) == "" &&
		strings.TrimSpace(p.Reference) == ""
}

// Highlight is an AI-generated inline annotation on a writing draft.
// It is anchored by exact substring match over the flattened page text;
// an edit that removes the substring leaves the highlight unplaceable.
type Highlight struct {
	ID            string        `json:"id"`
	Type          HighlightType `json:"type"`
	MatchText     string        `json:"matchText"`
	Comment       string        `json:"comment"`
	SuggestedEdit string        `json:"suggestedEdit,omitempty"`
	PageKey       PageKey       `json:"pageKey"`
}

// IdeaWriting is the writing workspace of an idea: three markdown pages,
// the active page, and the current highlight batch. At most one exists
// per idea, created lazily on first access.
type IdeaWriting struct {
	ID               uuid.UUID   `db:"id"`
	IdeaID           uuid.UUID   `db:"idea_id"`
	Pages            Pages       `db:"pages"`
	ActivePage       PageKey     `db:"active_page"`
	Highlights       []Highlight `db:"highlights"`
	WordCount        int         `db:"word_count"`
	LastAIFeedbackAt *time.Time  `db:"last_ai_feedback_at"`
	CreatedAt        time.Time   `db:"created_at"`
	UpdatedAt        time.Time   `db:"updated_at"`
}
