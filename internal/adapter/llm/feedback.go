package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	anthropic "github.com/anthropics/anthropic-sdk-go"

	"github.com/ideagarden/backend/internal/domain"
)

const (
	summaryExcerptLimit = 2000
	priorSampleLimit    = 500
)

var analyzeTool = anthropic.ToolParam{
	Name:        "analyze_writing",
	Description: anthropic.String("Return inline writing feedback as highlights"),
	InputSchema: anthropic.ToolInputSchemaParam{
		Properties: map[string]any{
			"highlights": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type": "string",
							"enum": []string{"question", "suggestion", "edit", "voice", "weakness", "evidence", "wordiness", "factcheck"},
						},
						"matchText": map[string]any{
							"type":        "string",
							"description": "Exact substring from the draft to highlight",
						},
						"comment": map[string]any{
							"type":        "string",
							"description": "Feedback comment for this highlight",
						},
						"suggestedEdit": map[string]any{
							"type":        "string",
							"description": "Replacement text (required for edit and wordiness types)",
						},
					},
					"required": []string{"type", "matchText", "comment"},
				},
			},
		},
		Required: []string{"highlights"},
	},
}

// RawHighlight is one feedback item as the model returned it, before
// substring verification and page tagging.
type RawHighlight struct {
	Type          string `json:"type"`
	MatchText     string `json:"matchText"`
	Comment       string `json:"comment"`
	SuggestedEdit string `json:"suggestedEdit,omitempty"`
}

type feedbackPayload struct {
	Highlights []RawHighlight `json:"highlights"`
}

// WritingFeedback analyzes flat draft text and returns the model's raw
// highlight list. flatText must already have markdown stripped so the
// returned matchText substrings line up with what the editor renders.
func (c *Client) WritingFeedback(ctx context.Context, flatText string, idea domain.IdeaContext, priorSamples []string, summary string) ([]RawHighlight, error) {
	system := feedbackSystemPrompt(idea, priorSamples, summary)
	user := "Here is the draft text to analyze:\n\n" + flatText

	var payload feedbackPayload
	err := c.callTool(ctx, c.cfg.WritingModel, c.cfg.FeedbackMaxTokens,
		system, user, analyzeTool, &payload)
	if err != nil {
		return nil, err
	}
	return payload.Highlights, nil
}

func feedbackSystemPrompt(idea domain.IdeaContext, priorSamples []string, summary string) string {
	parts := []string{
		"You are a writing coach providing inline feedback on a draft.",
		"",
		"## Idea Context",
		fmt.Sprintf("Title: %s", idea.Title),
		fmt.Sprintf("Description: %s", idea.Description),
	}
	if len(idea.ActionItems) > 0 {
		parts = append(parts, fmt.Sprintf("Action Items: %s", strings.Join(idea.ActionItems, "; ")))
	}
	if len(idea.AISuggestions) > 0 {
		parts = append(parts, fmt.Sprintf("AI Suggestions: %s", strings.Join(idea.AISuggestions, "; ")))
	}

	if strings.TrimSpace(summary) != "" {
		parts = append(parts,
			"",
			"## Summary Notes (from the writer's summary page — use this as context)",
			truncate(summary, summaryExcerptLimit),
		)
	}

	if len(priorSamples) > 0 {
		parts = append(parts, "", "## Prior Writing Samples (for voice consistency)")
		for i, sample := range priorSamples {
			parts = append(parts, fmt.Sprintf("\nSample %d:\n%s", i+1, truncate(sample, priorSampleLimit)))
		}
	}

	parts = append(parts,
		"",
		"## Instructions",
		"Analyze the draft and return 3-8 inline highlights.",
		"Each highlight must reference an EXACT substring from the draft text below.",
		"The matchText must be an exact, verbatim substring that appears in the flat text.",
		"",
		"Highlight types: question, suggestion, edit, voice, weakness, evidence, wordiness, factcheck",
		"- question: asks the writer to think deeper about a claim or idea",
		"- suggestion: proposes adding content or restructuring",
		"- edit: offers a specific text replacement",
		"- voice: flags tone inconsistency with prior writing (only use if prior samples provided)",
		"- weakness: identifies weak arguments or unsupported claims",
		"- evidence: suggests where evidence or examples would strengthen the point",
		"- wordiness: flags verbose phrases with a concise alternative",
		"- factcheck: flags claims that may need verification",
		"",
		"For edit and wordiness types, always include suggestedEdit.",
	)
	return strings.Join(parts, "\n")
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
