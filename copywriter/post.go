package copywriter

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// slotParams gathers everything one per-slot call depends on.
type slotParams struct {
	Slot                ScheduleSlot
	SlotIndex           int
	Subject             string
	ImagePath           string
	Brief               *WeekBrief
	BrandFacts          string
	Specs               map[TemplateID]TemplateSpec
	RequiredHashtags    []string
	BaseHashtags        []string
	AvailabilityPolicy  string
	Angle               string
	PrevAngle           string
	CustomBannedPhrases []string
}

// generatePost runs the draft call for one slot and, on a policy
// rejection, at most repairBudget corrective calls. The repair prompt
// restates only the violated rule to keep cost bounded.
func (g *Generator) generatePost(ctx context.Context, sp slotParams) (*Post, error) {
	spec, ok := sp.Specs[sp.Slot.TemplateID]
	if !ok {
		return nil, fmt.Errorf("%w: unknown template %s", ErrInvalidArgument, sp.Slot.TemplateID)
	}
	imageURL, err := imageDataURL(sp.ImagePath)
	if err != nil {
		return nil, err
	}
	doNotUse := DefaultDoNotUse(sp.AvailabilityPolicy, sp.Slot.CTAEnabled, sp.CustomBannedPhrases)

	prompt := Prompt{
		System:          buildSystemMessage(sp.RequiredHashtags),
		User:            postPrompt(sp, spec, doNotUse),
		ImageURL:        imageURL,
		Temperature:     temperature,
		MaxOutputTokens: maxOutputTokensPost,
		Schema:          &SchemaSpec{Name: "post", Definition: postSchema()},
	}

	post, err := g.callPost(ctx, prompt)
	if err != nil {
		return nil, err
	}
	verr := ValidatePost(post, sp.Slot.TemplateID, sp.Slot.DayName, sp.Brief, sp.Slot.CTAEnabled, spec, sp.RequiredHashtags)
	if verr == nil {
		return post, nil
	}

	for attempt := 1; attempt <= g.repairBudget; attempt++ {
		g.logger.Info("repairing rejected post",
			zap.Int("slot", sp.SlotIndex),
			zap.String("day", sp.Slot.DayName),
			zap.String("reason", verr.Error()))
		repair := prompt
		repair.Followup = fmt.Sprintf("Fix ONLY this validation issue: %s. Return only the corrected JSON.", verr.Error())
		post, err = g.callPost(ctx, repair)
		if err != nil {
			return nil, err
		}
		verr = ValidatePost(post, sp.Slot.TemplateID, sp.Slot.DayName, sp.Brief, sp.Slot.CTAEnabled, spec, sp.RequiredHashtags)
		if verr == nil {
			return post, nil
		}
	}
	return nil, verr
}

func (g *Generator) callPost(ctx context.Context, prompt Prompt) (*Post, error) {
	raw, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	var post Post
	if err := json.Unmarshal([]byte(raw), &post); err != nil {
		return nil, fmt.Errorf("%w: post is not valid JSON: %v", ErrSchemaViolation, err)
	}
	return &post, nil
}
