package copywriter

import "fmt"

// BuildTemplateSpecs bakes the brand closing lines into the four caption
// templates. Object, detail and process posts close on the brand name
// joined with the tagline, story posts on the bare brand name.
func BuildTemplateSpecs(brandName, brandTagline string) map[TemplateID]TemplateSpec {
	closingFull := brandName
	if brandTagline != "" {
		closingFull = brandName + " — " + brandTagline
	}
	closingShort := brandName

	return map[TemplateID]TemplateSpec{
		TemplateObject: {
			NeedsTitle: false,
			TitleRule:  "Return title as null.",
			CaptionRule: fmt.Sprintf(
				"Caption: at most 3 sentences. Describe the visible product. The last sentence must be exactly: '%s.'",
				closingFull),
			AltRule: "Alt text: one neutral sentence describing what is visible (no marketing).",
		},
		TemplateDetail: {
			NeedsTitle: false,
			TitleRule:  "Return title as null.",
			CaptionRule: fmt.Sprintf(
				"Caption: at most 3 sentences. Focus on material, grain and texture. No prices, shipping or discounts. The last sentence must be exactly: '%s.'",
				closingFull),
			AltRule: "Alt text: one neutral sentence describing the visible close-up detail.",
		},
		TemplateProcess: {
			NeedsTitle: true,
			TitleRule:  "Title: at most 3 words (no emoji).",
			CaptionRule: fmt.Sprintf(
				"Caption: at most 3 sentences. Describe the visible making process. The last sentence must be exactly: '%s.'",
				closingFull),
			AltRule: "Alt text: one neutral sentence about the visible hands, tools or process.",
		},
		TemplateStory: {
			NeedsTitle: true,
			TitleRule:  "Title: at most 3 evocative words about the brand's history.",
			CaptionRule: fmt.Sprintf(
				"Caption: at most 3 sentences, sober. Tell the brand's story or values. The last sentence must be exactly: '%s.'",
				closingShort),
			AltRule: "Alt text: one neutral sentence describing the visible context.",
		},
	}
}
