package copywriter

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
)

func buildSystemMessage(requiredHashtags []string) string {
	return "Write Instagram copy for a handmade-goods brand.\n" +
		"HARD CONSTRAINTS:\n" +
		"- Return ONLY JSON conforming to the schema (no extra text, no markdown).\n" +
		"- No emoji.\n" +
		"- Caption: at most 3 sentences (a sentence ends with . or ! or ?).\n" +
		"- Sober, descriptive, non-aggressive tone.\n" +
		"- Do not invent facts beyond the supplied brand facts or what the image shows.\n" +
		fmt.Sprintf("- Hashtags MUST include at least: %s\n", strings.Join(requiredHashtags, " "))
}

// BuildBrandFacts flattens the brand fields into the fact sheet the model
// is allowed to draw from.
func BuildBrandFacts(name, description, tagline, history string) string {
	facts := fmt.Sprintf("Brand: %s.", name)
	if description != "" {
		facts += " " + description
	}
	if tagline != "" {
		facts += fmt.Sprintf(" Tagline: %s.", tagline)
	}
	if history != "" {
		facts += " " + history
	}
	return facts
}

func ctaHint(mode string) (string, error) {
	switch mode {
	case CTAModeDM:
		return "Sunday CTA: one line inviting readers to reach out in DM.", nil
	case CTAModeLinkInBio:
		return "Sunday CTA: one line inviting readers to check the link in bio (no hype).", nil
	case CTAModeTradeFair:
		return "Sunday CTA: one line inviting readers to ask about the next trade fair.", nil
	default:
		return "", fmt.Errorf("%w: cta_mode must be dm, link_in_bio or trade_fair, got %q", ErrInvalidArgument, mode)
	}
}

func briefPrompt(req RunRequest, weekID, hint, brandFacts string) string {
	var sb strings.Builder
	sb.WriteString(brandFacts)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "week_id: %s\n", weekID)
	fmt.Fprintf(&sb, "theme: %s\n", req.Theme)
	fmt.Fprintf(&sb, "goal: %s\n", req.Goal)
	fmt.Fprintf(&sb, "voice: %s\n", req.Voice)
	fmt.Fprintf(&sb, "featured_category: %s\n", req.FeaturedCategory)
	fmt.Fprintf(&sb, "availability_policy: %s\n", req.AvailabilityPolicy)
	sb.WriteString(hint)
	sb.WriteString("\n\n")
	sb.WriteString("Generate a WEEK_BRIEF JSON.\n")
	sb.WriteString("Constraints:\n")
	sb.WriteString("- keywords: 3-6 short, reusable keywords.\n")
	sb.WriteString("- continuity_rules: 1-3 sentences.\n")
	sb.WriteString("- No emoji.\n")
	return sb.String()
}

func buildWritingRules(angle, prevAngle string) string {
	var sb strings.Builder
	sb.WriteString("WRITING (mandatory):\n")
	sb.WriteString("- Caption: at most 3 sentences in total.\n")
	sb.WriteString("- Tone: descriptive, concrete, artisanal. No marketing speak.\n")
	sb.WriteString("- Generic or abstract phrasing is forbidden (see do_not_use).\n")
	sb.WriteString("- Use observable descriptions: shape, surface, grain, manual gesture, light.\n\n")
	sb.WriteString("STRUCTURE (mandatory):\n")
	sb.WriteString("- Sentence 1: concrete description of what the image shows.\n")
	sb.WriteString("- Sentence 2: one specific material or manual aspect consistent with the image.\n")
	sb.WriteString("- Sentence 3: fixed brand closing (when the template requires it).\n\n")
	sb.WriteString("VARIATION (anti-repetition):\n")
	fmt.Fprintf(&sb, "- Descriptive angle for this post: '%s'. Use ONLY this angle.\n", angle)
	if prevAngle != "" {
		fmt.Fprintf(&sb, "- Angle of the previous post: '%s'. Do not repeat it.\n", prevAngle)
	}
	sb.WriteString("\nCONTENT:\n")
	sb.WriteString("- Use EXACTLY 1 or 2 keywords from WEEK_BRIEF.keywords.\n")
	sb.WriteString("- Report the chosen keywords in the keywords_used field as well.\n")
	sb.WriteString("- Do not use a CTA.\n")
	return sb.String()
}

func postPrompt(sp slotParams, spec TemplateSpec, doNotUse []string) string {
	briefJSON, _ := json.Marshal(sp.Brief)
	ctaText := strings.TrimSpace(sp.Brief.CTA.Text)
	fixedHashtags := append(append([]string(nil), sp.RequiredHashtags...), sp.BaseHashtags...)

	var sb strings.Builder
	sb.WriteString(sp.BrandFacts)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "WEEK_BRIEF: %s\n", briefJSON)
	fmt.Fprintf(&sb, "TEMPLATE: %s\n", sp.Slot.TemplateID)
	fmt.Fprintf(&sb, "SLOT_INDEX: %d\n", sp.SlotIndex)
	fmt.Fprintf(&sb, "DAY_NAME: %s\n", sp.Slot.DayName)
	fmt.Fprintf(&sb, "POST_ROLE: %s\n", sp.Slot.PostRole)
	fmt.Fprintf(&sb, "CTA_ENABLED: %t\n", sp.Slot.CTAEnabled)
	fmt.Fprintf(&sb, "SUBJECT (hint): %s\n\n", sp.Subject)
	fmt.Fprintf(&sb, "do_not_use (exactly this list): %s\n\n", strings.Join(doNotUse, ", "))
	sb.WriteString("TEMPLATE CONSTRAINTS:\n")
	fmt.Fprintf(&sb, "- %s\n", spec.TitleRule)
	fmt.Fprintf(&sb, "- %s\n", spec.CaptionRule)
	fmt.Fprintf(&sb, "- %s\n\n", spec.AltRule)
	sb.WriteString(buildWritingRules(sp.Angle, sp.PrevAngle))
	sb.WriteString("\nOUTPUT:\n")
	sb.WriteString("- Return ONLY JSON conforming to the schema.\n")
	sb.WriteString("- ig_caption_full = caption + newline + hashtags on a single line.\n")
	fmt.Fprintf(&sb, "- hashtags must include at least: %s\n", strings.Join(fixedHashtags, " "))
	if sp.Slot.CTAEnabled {
		fmt.Fprintf(&sb, "- Because CTA_ENABLED=true: the caption MUST end with this identical line (last line): %s\n", ctaText)
	} else {
		sb.WriteString("- Because CTA_ENABLED=false: do NOT insert a CTA (DM/link/purchase/availability).\n")
	}
	return sb.String()
}

// imageDataURL reads the image and encodes it as a base64 data URL,
// sniffing the MIME type from the bytes (extension-agnostic).
func imageDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: image %s", ErrNotFound, path)
	}
	mime := "image/jpeg"
	if kind, err := filetype.Match(data); err == nil && kind != types.Unknown && kind.MIME.Value != "" {
		mime = kind.MIME.Value
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// subjectFromFilename derives a short subject hint from the filename
// stem after the category prefix, skipping numeric tokens.
func subjectFromFilename(path, fallback string) string {
	base := filepath.Base(path)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	parts := strings.Split(stem, "_")
	if len(parts) <= 1 {
		return fallback
	}
	var core []string
	for _, t := range parts[1:] {
		if t == "" || isDigits(t) {
			continue
		}
		core = append(core, t)
	}
	if len(core) == 0 {
		return fallback
	}
	if len(core) > 3 {
		core = core[:3]
	}
	subject := strings.TrimSpace(strings.ReplaceAll(strings.Join(core, " "), "-", " "))
	if subject == "" {
		return fallback
	}
	return subject
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
