package copywriter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Default anti-repetition blacklist, unioned into do_not_use whenever the
// caller supplies no custom banned phrases.
var defaultBannedPhrases = []string{
	"Every piece tells a story",
	"unique story",
	"great attention to detail",
	"premium material",
	"natural beauty",
	"made with care and passion",
	"Discover the beauty",
	"a symbol of beauty",
	"born from our passion",
	"making every piece special",
	"unique",
	"special",
}

// Pictographs, dingbats and regional flag indicators.
var emojiRE = regexp.MustCompile(`[\x{1F300}-\x{1FAFF}\x{2700}-\x{27BF}\x{1F1E6}-\x{1F1FF}]`)

var ctaForbiddenRE = regexp.MustCompile(`(?i)\b(dm|message|write to me|link in bio|buy|order|available|shop|etsy)\b`)

var sentenceEndRE = regexp.MustCompile(`[.!?]+`)

func countSentences(s string) int {
	n := 0
	for _, part := range sentenceEndRE.Split(s, -1) {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}

// DefaultDoNotUse builds the banned-term list for one slot. The result is
// deduplicated and sorted, so equal inputs always yield the same set.
func DefaultDoNotUse(availabilityPolicy string, ctaEnabled bool, customBannedPhrases []string) []string {
	terms := []string{"price", "discount", "shipping", "offer", "promo"}
	if !ctaEnabled {
		terms = append(terms, "dm", "message", "write to me", "link", "bio", "buy", "order", "etsy", "shop", "available")
	}
	if availabilityPolicy == AvailabilityNone {
		terms = append(terms, "available", "availability")
	}
	banned := customBannedPhrases
	if len(banned) == 0 {
		banned = defaultBannedPhrases
	}
	terms = append(terms, banned...)

	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// ValidateWeekBrief checks the brief's CTA contract. Any failure is fatal
// for the run; the brief generator has no retry.
func ValidateWeekBrief(brief *WeekBrief) error {
	if brief.CTA.Day != "sun" {
		return fmt.Errorf("%w: cta.day must be \"sun\"", ErrPolicyViolation)
	}
	if emojiRE.MatchString(brief.CTA.Text) {
		return fmt.Errorf("%w: cta text must not contain emoji", ErrPolicyViolation)
	}
	if strings.TrimSpace(brief.CTA.Text) == "" {
		return fmt.Errorf("%w: cta text must be non-empty", ErrPolicyViolation)
	}
	return nil
}

// ValidatePost runs the ordered, fail-fast content checks over a parsed
// post. The first violated rule wins; its reason string becomes the
// repair instruction for the single corrective call.
func ValidatePost(post *Post, templateID TemplateID, dayName string, brief *WeekBrief, ctaEnabled bool, spec TemplateSpec, requiredHashtags []string) error {
	if post.TemplateID != templateID {
		return fmt.Errorf("%w: template_id mismatch", ErrPolicyViolation)
	}
	if post.DayName != dayName {
		return fmt.Errorf("%w: day_name mismatch", ErrPolicyViolation)
	}
	title := ""
	if post.Title != nil {
		title = *post.Title
	}
	if emojiRE.MatchString(post.Caption) || emojiRE.MatchString(title) {
		return fmt.Errorf("%w: emoji detected", ErrPolicyViolation)
	}
	if countSentences(post.Caption) > 3 {
		return fmt.Errorf("%w: caption longer than 3 sentences", ErrPolicyViolation)
	}

	tags := post.Content.Hashtags
	if tags == nil {
		return fmt.Errorf("%w: hashtags must be a list of strings", ErrPolicyViolation)
	}
	tagset := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		tagset[t] = struct{}{}
	}
	var missing []string
	for _, r := range requiredHashtags {
		if _, ok := tagset[r]; !ok {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing required hashtags: %s", ErrPolicyViolation, strings.Join(missing, " "))
	}
	if len(tagset) != len(tags) {
		return fmt.Errorf("%w: hashtags contain duplicates", ErrPolicyViolation)
	}

	if !spec.NeedsTitle && post.Title != nil {
		return fmt.Errorf("%w: title must be null for this template", ErrPolicyViolation)
	}
	if spec.NeedsTitle {
		if post.Title == nil || strings.TrimSpace(*post.Title) == "" {
			return fmt.Errorf("%w: title required for this template", ErrPolicyViolation)
		}
		if len(strings.Fields(*post.Title)) > 3 {
			return fmt.Errorf("%w: title longer than 3 words", ErrPolicyViolation)
		}
	}

	if len(post.KeywordsUsed) < 1 || len(post.KeywordsUsed) > 2 {
		return fmt.Errorf("%w: keywords_used must have 1-2 items", ErrPolicyViolation)
	}
	weekKW := make(map[string]struct{}, len(brief.Keywords))
	for _, k := range brief.Keywords {
		weekKW[k] = struct{}{}
	}
	for _, k := range post.KeywordsUsed {
		if _, ok := weekKW[k]; !ok {
			return fmt.Errorf("%w: keywords_used must come from the week brief keywords", ErrPolicyViolation)
		}
	}

	if !strings.Contains(post.IGCaptionFull, strings.TrimSpace(post.Caption)) {
		return fmt.Errorf("%w: ig_caption_full must include the caption", ErrPolicyViolation)
	}
	if !strings.Contains(post.IGCaptionFull, strings.Join(tags, " ")) {
		return fmt.Errorf("%w: ig_caption_full must include the hashtag line", ErrPolicyViolation)
	}

	ctaText := strings.TrimSpace(brief.CTA.Text)
	if !ctaEnabled {
		if ctaForbiddenRE.MatchString(post.Caption) {
			return fmt.Errorf("%w: cta-like wording on a cta-disabled slot", ErrPolicyViolation)
		}
		if strings.Contains(post.Caption, ctaText) {
			return fmt.Errorf("%w: cta text appears on a cta-disabled slot", ErrPolicyViolation)
		}
		return nil
	}
	if !strings.Contains(post.Caption, ctaText) {
		return fmt.Errorf("%w: cta slot must include the exact cta text", ErrPolicyViolation)
	}
	lines := strings.Split(strings.TrimSpace(post.Caption), "\n")
	if strings.TrimSpace(lines[len(lines)-1]) != ctaText {
		return fmt.Errorf("%w: cta slot caption must end with the cta line", ErrPolicyViolation)
	}
	return nil
}
