package copywriter

// Closed JSON schemas handed to the provider's structured-output mode.
// Both forbid additional properties so the typed parse step stays the
// single source of truth for shape errors.

func weekBriefSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"week_id":             map[string]any{"type": "string"},
			"theme":               map[string]any{"type": "string"},
			"goal":                map[string]any{"type": "string"},
			"voice":               map[string]any{"type": "string"},
			"featured_category":   map[string]any{"type": "string"},
			"availability_policy": map[string]any{"type": "string"},
			"keywords": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 3,
				"maxItems": 6,
			},
			"cta": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"day":  map[string]any{"type": "string", "enum": []string{"sun"}},
					"text": map[string]any{"type": "string"},
				},
				"required":             []string{"day", "text"},
				"additionalProperties": false,
			},
			"continuity_rules": map[string]any{"type": "string"},
		},
		"required": []string{
			"week_id", "theme", "goal", "voice", "featured_category",
			"availability_policy", "keywords", "cta", "continuity_rules",
		},
		"additionalProperties": false,
	}
}

func postSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"template_id": map[string]any{"type": "string"},
			"subject":     map[string]any{"type": "string"},
			"slot_index":  map[string]any{"type": "integer"},
			"day_name":    map[string]any{"type": "string"},
			"post_role": map[string]any{
				"type": "string",
				"enum": []string{RoleValue, RoleMaterial, RoleProcess, RoleStory, RoleCTA},
			},
			"title": map[string]any{
				"anyOf": []any{
					map[string]any{"type": "string"},
					map[string]any{"type": "null"},
				},
			},
			"caption": map[string]any{"type": "string"},
			"keywords_used": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 1,
				"maxItems": 2,
			},
			"do_not_use": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"ig_caption_full": map[string]any{"type": "string"},
			"content": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"hashtags": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"alt_text":           map[string]any{"type": "string"},
					"visual_description": map[string]any{"type": "string"},
				},
				"required":             []string{"hashtags", "alt_text", "visual_description"},
				"additionalProperties": false,
			},
		},
		"required": []string{
			"template_id", "subject", "slot_index", "day_name", "post_role",
			"title", "caption", "keywords_used", "do_not_use", "ig_caption_full", "content",
		},
		"additionalProperties": false,
	}
}
