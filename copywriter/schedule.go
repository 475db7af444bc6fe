package copywriter

import "fmt"

// Fixed 6-day non-CTA cycle. The CTA slot is appended once, as the last
// element, only when the campaign reaches 7 posts.
var baseCycle = []ScheduleSlot{
	{DayName: "mon", TemplateID: TemplateObject, PostRole: RoleValue},
	{DayName: "tue", TemplateID: TemplateDetail, PostRole: RoleMaterial},
	{DayName: "wed", TemplateID: TemplateObject, PostRole: RoleValue},
	{DayName: "thu", TemplateID: TemplateProcess, PostRole: RoleProcess},
	{DayName: "fri", TemplateID: TemplateObject, PostRole: RoleValue},
	{DayName: "sat", TemplateID: TemplateDetail, PostRole: RoleMaterial},
}

var ctaSlot = ScheduleSlot{DayName: "sun", TemplateID: TemplateStory, PostRole: RoleCTA, CTAEnabled: true}

// BuildSchedule produces the ordered slot sequence for nPosts. Campaigns
// longer than 7 keep cycling the base 6; the trailing CTA slot is still
// appended exactly once.
func BuildSchedule(nPosts int) ([]ScheduleSlot, error) {
	if nPosts < 1 {
		return nil, fmt.Errorf("%w: n_posts must be >= 1", ErrInvalidArgument)
	}
	var sched []ScheduleSlot
	i := 0
	for len(sched) < min(nPosts, len(baseCycle)) {
		sched = append(sched, baseCycle[i%len(baseCycle)])
		i++
	}
	if nPosts >= 7 {
		for len(sched) < nPosts-1 {
			sched = append(sched, baseCycle[i%len(baseCycle)])
			i++
		}
		sched = append(sched, ctaSlot)
	}
	return sched, nil
}
