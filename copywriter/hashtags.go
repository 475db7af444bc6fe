package copywriter

var defaultHashtagsByRole = map[string][]string{
	RoleValue:    {"#handcrafted", "#artisanmade", "#woodwork"},
	RoleMaterial: {"#woodgrain", "#woodtexture", "#naturalmaterials"},
	RoleProcess:  {"#craftsmanship", "#workshoplife", "#handcraftedprocess"},
	RoleStory:    {"#artisanstory", "#tradition", "#madebyhand"},
	RoleCTA:      {"#handcrafted"},
}

// AutoHashtags assembles the final hashtag list deterministically:
// required first, then brand base tags, then role defaults, deduplicated
// in order and truncated to nTotal.
func AutoHashtags(role string, required, base []string, byRole map[string][]string, nTotal int) []string {
	if byRole == nil {
		byRole = defaultHashtagsByRole
	}
	if nTotal <= 0 {
		nTotal = 10
	}

	var tags []string
	tags = append(tags, required...)
	tags = append(tags, base...)
	tags = append(tags, byRole[role]...)

	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) > nTotal {
		out = out[:nTotal]
	}
	return out
}
