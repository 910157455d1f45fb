package llm

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"

	"github.com/ideagarden/backend/internal/domain"
)

const softwarePlanSystem = `You are a technical project planner. Given an idea, generate a Claude Code-ready prompt that someone can paste directly into Claude Code to build it.

Include:
- Project name and one-line description
- Suggested tech stack
- File structure overview
- Step-by-step build instructions (numbered)
- Key implementation details and gotchas

Format as clean markdown. Be specific and actionable — this should be paste-and-go.`

const generalPlanSystem = `You are a creative project planner. Given an idea, generate a structured action plan to bring it to life.

Include:
- Project overview and goal
- Phases broken into concrete tasks
- Timeline suggestions (rough estimates)
- Resources or tools needed
- First three things to do today

Format as clean markdown. Be specific, practical, and motivating.`

var planTool = anthropic.ToolParam{
	Name:        "generate_plan",
	Description: anthropic.String("Generate an actionable plan for an idea"),
	InputSchema: anthropic.ToolInputSchemaParam{
		Properties: map[string]any{
			"plan": map[string]any{
				"type":        "string",
				"description": "The full plan in markdown format",
			},
		},
		Required: []string{"plan"},
	},
}

// GeneratePlan produces a markdown action plan for an idea. Software
// categories get a build-prompt style plan, everything else a general
// project plan.
func (c *Client) GeneratePlan(ctx context.Context, idea domain.IdeaContext) (string, error) {
	system := generalPlanSystem
	if idea.Category.IsSoftware() {
		system = softwarePlanSystem
	}

	var payload struct {
		Plan string `json:"plan"`
	}
	err := c.callTool(ctx, c.cfg.ExtractModel, c.cfg.ExtractMaxTokens,
		system, planUserMessage(idea), planTool, &payload)
	if err != nil {
		return "", err
	}
	return payload.Plan, nil
}

func planUserMessage(idea domain.IdeaContext) string {
	lines := []string{
		fmt.Sprintf("**Idea:** %s", idea.Title),
		fmt.Sprintf("**Description:** %s", idea.Description),
		fmt.Sprintf("**Category:** %s", idea.Category),
	}
	if len(idea.ActionItems) > 0 {
		lines = append(lines, fmt.Sprintf("**Action Items:** %s", strings.Join(idea.ActionItems, ", ")))
	}
	if len(idea.Tags) > 0 {
		lines = append(lines, fmt.Sprintf("**Tags:** %s", strings.Join(idea.Tags, ", ")))
	}
	return strings.Join(lines, "\n")
}
