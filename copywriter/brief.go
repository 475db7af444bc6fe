package copywriter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// generateBrief issues the single week-brief call. Schema and policy
// failures are fatal for the run: the brief has no retry.
func (g *Generator) generateBrief(ctx context.Context, req RunRequest, brandFacts string) (*WeekBrief, error) {
	hint, err := ctaHint(req.CTAMode)
	if err != nil {
		return nil, err
	}
	weekID := req.StartDate
	if weekID == "" {
		weekID = time.Now().Format("2006-01-02")
	}

	prompt := Prompt{
		System:          buildSystemMessage(req.RequiredHashtags),
		User:            briefPrompt(req, weekID, hint, brandFacts),
		Temperature:     temperature,
		MaxOutputTokens: maxOutputTokensBrief,
		Schema:          &SchemaSpec{Name: "week_brief", Definition: weekBriefSchema()},
	}

	raw, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	var brief WeekBrief
	if err := json.Unmarshal([]byte(raw), &brief); err != nil {
		return nil, fmt.Errorf("%w: week brief is not valid JSON: %v", ErrSchemaViolation, err)
	}
	if err := ValidateWeekBrief(&brief); err != nil {
		return nil, err
	}
	return &brief, nil
}
