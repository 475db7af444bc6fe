package copywriter

import (
	"context"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

func applyDefaults(req *RunRequest) {
	if req.NPosts == 0 {
		req.NPosts = 6
	}
	if req.CTAMode == "" {
		req.CTAMode = CTAModeDM
	}
	if req.Voice == "" {
		req.Voice = "minimal"
	}
	if req.FeaturedCategory == "" {
		req.FeaturedCategory = "mix"
	}
	if req.AvailabilityPolicy == "" {
		req.AvailabilityPolicy = AvailabilityNone
	}
	if len(req.RequiredHashtags) == 0 {
		req.RequiredHashtags = []string{"#handmade"}
	}
}

// Run executes one full campaign: schedule, image routing, week brief,
// then one post per slot in schedule order (the angle rotation carries
// state across slots). Any fatal error aborts the whole run; no partial
// post list is returned.
func (g *Generator) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	applyDefaults(&req)

	runID, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	log := g.logger.With(zap.String("run_id", runID))

	brandFacts := BuildBrandFacts(req.BrandName, req.BrandDescription, req.BrandTagline, req.BrandHistory)
	specs := BuildTemplateSpecs(req.BrandName, req.BrandTagline)

	schedule, err := BuildSchedule(req.NPosts)
	if err != nil {
		return nil, err
	}
	buckets, err := BucketImagesByPrefix(req.Images)
	if err != nil {
		return nil, err
	}
	chosen, err := SelectImagesForSchedule(schedule, buckets, TemplateObject, req.StrictRouting)
	if err != nil {
		return nil, err
	}

	brief, err := g.generateBrief(ctx, req, brandFacts)
	if err != nil {
		return nil, err
	}
	log.Info("week brief generated", zap.String("week_id", brief.WeekID), zap.Int("keywords", len(brief.Keywords)))

	posts := make([]Post, 0, len(schedule))
	prevAngle := ""
	for i, slot := range schedule {
		angle := ChooseAngle(prevAngle)
		post, err := g.generatePost(ctx, slotParams{
			Slot:                slot,
			SlotIndex:           i,
			Subject:             subjectFromFilename(chosen[i], req.Theme),
			ImagePath:           chosen[i],
			Brief:               brief,
			BrandFacts:          brandFacts,
			Specs:               specs,
			RequiredHashtags:    req.RequiredHashtags,
			BaseHashtags:        req.BaseHashtags,
			AvailabilityPolicy:  req.AvailabilityPolicy,
			Angle:               angle,
			PrevAngle:           prevAngle,
			CustomBannedPhrases: req.CustomBannedPhrases,
		})
		if err != nil {
			return nil, err
		}

		// Hashtags and the full caption are rebuilt here, not trusted
		// from the model's own composition.
		tags := AutoHashtags(post.PostRole, req.RequiredHashtags, req.BaseHashtags, nil, 10)
		post.Content.Hashtags = tags
		post.IGCaptionFull = strings.TrimRight(post.Caption, " \t\n") + "\n" + strings.Join(tags, " ")

		posts = append(posts, *post)
		prevAngle = angle
		log.Info("post validated", zap.Int("slot", i), zap.String("day", slot.DayName), zap.String("template", string(slot.TemplateID)))
	}

	return &RunResult{
		RunID:        runID,
		WeekBrief:    *brief,
		Schedule:     schedule,
		ChosenImages: chosen,
		Posts:        posts,
	}, nil
}
