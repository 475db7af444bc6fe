package copywriter

// TemplateID names one of the four structural caption patterns.
type TemplateID string

const (
	TemplateObject  TemplateID = "OBJECT"
	TemplateDetail  TemplateID = "DETAIL"
	TemplateProcess TemplateID = "PROCESS"
	TemplateStory   TemplateID = "STORY"
)

// Post roles across the weekly cycle.
const (
	RoleValue    = "value"
	RoleMaterial = "material"
	RoleProcess  = "process"
	RoleStory    = "story"
	RoleCTA      = "cta"
)

// CTA mode accepted in a RunRequest.
const (
	CTAModeDM        = "dm"
	CTAModeLinkInBio = "link_in_bio"
	CTAModeTradeFair = "trade_fair"
	AvailabilityNone = "no_availability"
)

// CTA is the single weekly call-to-action line. Day is always "sun".
type CTA struct {
	Day  string `json:"day"`
	Text string `json:"text"`
}

// WeekBrief is the week-level creative brief produced once per run.
// Read-only after validation; every post call consumes it.
type WeekBrief struct {
	WeekID             string   `json:"week_id"`
	Theme              string   `json:"theme"`
	Goal               string   `json:"goal"`
	Voice              string   `json:"voice"`
	FeaturedCategory   string   `json:"featured_category"`
	AvailabilityPolicy string   `json:"availability_policy"`
	Keywords           []string `json:"keywords"`
	CTA                CTA      `json:"cta"`
	ContinuityRules    string   `json:"continuity_rules"`
}

// TemplateSpec holds the structural rules for one template, with the
// brand closing line already baked into the caption rule.
type TemplateSpec struct {
	NeedsTitle  bool
	TitleRule   string
	CaptionRule string
	AltRule     string
}

// ScheduleSlot is one posting opportunity in the weekly plan.
type ScheduleSlot struct {
	DayName    string     `json:"day_name"`
	TemplateID TemplateID `json:"template_id"`
	PostRole   string     `json:"post_role"`
	CTAEnabled bool       `json:"cta_enabled"`
}

// PostContent carries the publishing extras next to the caption.
type PostContent struct {
	Hashtags          []string `json:"hashtags"`
	AltText           string   `json:"alt_text"`
	VisualDescription string   `json:"visual_description"`
}

// Post is one validated per-slot result. Title is nil for templates
// that forbid it. Hashtags and IGCaptionFull are rebuilt by the
// orchestrator after validation; the model's own composition is not
// trusted.
type Post struct {
	TemplateID    TemplateID  `json:"template_id"`
	Subject       string      `json:"subject"`
	SlotIndex     int         `json:"slot_index"`
	DayName       string      `json:"day_name"`
	PostRole      string      `json:"post_role"`
	Title         *string     `json:"title"`
	Caption       string      `json:"caption"`
	KeywordsUsed  []string    `json:"keywords_used"`
	DoNotUse      []string    `json:"do_not_use"`
	IGCaptionFull string      `json:"ig_caption_full"`
	Content       PostContent `json:"content"`
}

// RunRequest is one campaign request, as received from the HTTP shell
// or a CLI request file.
type RunRequest struct {
	Goal               string   `json:"goal"`
	Theme              string   `json:"theme"`
	Images             []string `json:"images"`
	NPosts             int      `json:"n_posts"`
	CTAMode            string   `json:"cta_mode"`
	Voice              string   `json:"voice"`
	FeaturedCategory   string   `json:"featured_category"`
	AvailabilityPolicy string   `json:"availability_policy"`
	StrictRouting      bool     `json:"strict_routing"`
	StartDate          string   `json:"start_date,omitempty"`

	BrandName        string `json:"brand_name"`
	BrandDescription string `json:"brand_description"`
	BrandTagline     string `json:"brand_tagline"`
	BrandHistory     string `json:"brand_history"`

	RequiredHashtags    []string `json:"required_hashtags"`
	BaseHashtags        []string `json:"base_hashtags"`
	CustomBannedPhrases []string `json:"custom_banned_phrases,omitempty"`
}

// RunResult is the full outcome of one campaign run. ChosenImages is
// slot-aligned with Schedule and Posts.
type RunResult struct {
	RunID        string         `json:"run_id"`
	WeekBrief    WeekBrief      `json:"week_brief"`
	Schedule     []ScheduleSlot `json:"schedule"`
	ChosenImages []string       `json:"chosen_images"`
	Posts        []Post         `json:"posts"`
}
