package llm

import (
	"context"

	anthropic "github.com/anthropics/anthropic-sdk-go"

	"github.com/ideagarden/backend/internal/domain"
)

const extractSystemPrompt = `You are an idea extraction assistant for a personal journal. You will receive a raw voice memo transcription from a morning journal session.

Your job is to:
1. Generate a short, punchy title for the entry (5-8 words)
2. Write a 2-3 sentence summary of the key themes
3. Detect the overall mood (one word: energized, reflective, anxious, excited, calm, frustrated, hopeful, scattered)
4. Extract relevant tags (lowercase, no spaces, use hyphens)
5. Extract every distinct idea mentioned, no matter how small

Always use the extract_ideas tool to return your response.`

var extractTool = anthropic.ToolParam{
	Name:        "extract_ideas",
	Description: anthropic.String("Extract structured ideas from a voice memo transcription"),
	InputSchema: anthropic.ToolInputSchemaParam{
		Properties: map[string]any{
			"title":   map[string]any{"type": "string", "description": "Short punchy title, 5-8 words"},
			"summary": map[string]any{"type": "string", "description": "2-3 sentence summary of key themes"},
			"mood": map[string]any{
				"type": "string",
				"enum": []string{"energized", "reflective", "anxious", "excited", "calm", "frustrated", "hopeful", "scattered"},
			},
			"tags": map[string]any{
				"type": "array", "items": map[string]any{"type": "string"},
				"description": "Relevant tags, lowercase with hyphens",
			},
			"ideas": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":       map[string]any{"type": "string", "description": "Clear actionable name, 3-7 words"},
						"description": map[string]any{"type": "string", "description": "1-2 sentences explaining the idea"},
						"category": map[string]any{
							"type": "string",
							"enum": []string{"product", "content", "business", "personal", "technical", "creative"},
						},
						"confidence":   map[string]any{"type": "number", "description": "0.0-1.0 how fully formed the idea is"},
						"action_items": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Concrete next steps"},
						"tags":         map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Tags for this idea"},
						"ai_suggestions": map[string]any{
							"type": "array", "items": map[string]any{"type": "string"},
							"description": "Suggestions for developing this idea",
						},
					},
					"required": []string{"title", "description", "category", "confidence", "action_items", "tags", "ai_suggestions"},
				},
			},
		},
		Required: []string{"title", "summary", "mood", "tags", "ideas"},
	},
}

// extractionPayload mirrors the tool schema before enum clamping.
type extractionPayload struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Mood    string   `json:"mood"`
	Tags    []string `json:"tags"`
	Ideas   []struct {
		Title         string   `json:"title"`
		Description   string   `json:"description"`
		Category      string   `json:"category"`
		Confidence    float64  `json:"confidence"`
		ActionItems   []string `json:"action_items"`
		Tags          []string `json:"tags"`
		AISuggestions []string `json:"ai_suggestions"`
	} `json:"ideas"`
}

// ExtractIdeas runs the structured extraction call over a transcription.
func (c *Client) ExtractIdeas(ctx context.Context, transcription string) (*domain.ExtractionResult, error) {
	var payload extractionPayload
	err := c.callTool(ctx, c.cfg.ExtractModel, c.cfg.ExtractMaxTokens,
		extractSystemPrompt, transcription, extractTool, &payload)
	if err != nil {
		return nil, err
	}
	return clampExtraction(payload), nil
}

// clampExtraction forces mood and categories into their enumerations.
// The schema already constrains them, but the storage layer enforces
// the same sets with check constraints, so out-of-set values are
// substituted rather than allowed to fail the insert.
func clampExtraction(p extractionPayload) *domain.ExtractionResult {
	res := &domain.ExtractionResult{
		Title:   p.Title,
		Summary: p.Summary,
		Mood:    domain.ClampMood(p.Mood),
		Tags:    p.Tags,
		Ideas:   make([]domain.ExtractedIdea, 0, len(p.Ideas)),
	}
	for _, i := range p.Ideas {
		conf := i.Confidence
		if conf < 0 {
			conf = 0
		}
		if conf > 1 {
			conf = 1
		}
		res.Ideas = append(res.Ideas, domain.ExtractedIdea{
			Title:         i.Title,
			Description:   i.Description,
			Category:      domain.ClampCategory(i.Category),
			Confidence:    conf,
			ActionItems:   i.ActionItems,
			Tags:          i.Tags,
			AISuggestions: i.AISuggestions,
		})
	}
	return res
}
