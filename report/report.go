// Package report renders a finished campaign run as a Markdown plan and
// as preview HTML.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"instagram_copywriter/copywriter"
)

var dayTitles = map[string]string{
	"mon": "Monday",
	"tue": "Tuesday",
	"wed": "Wednesday",
	"thu": "Thursday",
	"fri": "Friday",
	"sat": "Saturday",
	"sun": "Sunday",
}

// DayTitle expands a schedule day code to its display name.
func DayTitle(code string) string {
	if t, ok := dayTitles[code]; ok {
		return t
	}
	return code
}

// Markdown assembles the week plan document: the brief summary followed
// by one section per scheduled post.
func Markdown(res *copywriter.RunResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Week plan %s\n\n", res.WeekBrief.WeekID)
	fmt.Fprintf(&sb, "**Theme:** %s\n\n", res.WeekBrief.Theme)
	fmt.Fprintf(&sb, "**Goal:** %s\n\n", res.WeekBrief.Goal)
	fmt.Fprintf(&sb, "**Voice:** %s\n\n", res.WeekBrief.Voice)
	fmt.Fprintf(&sb, "**Keywords:** %s\n\n", strings.Join(res.WeekBrief.Keywords, ", "))
	fmt.Fprintf(&sb, "**Sunday CTA:** %s\n", res.WeekBrief.CTA.Text)

	for i, post := range res.Posts {
		fmt.Fprintf(&sb, "\n## %d. %s — %s (%s)\n\n", i+1, DayTitle(post.DayName), post.TemplateID, post.PostRole)
		if i < len(res.ChosenImages) {
			fmt.Fprintf(&sb, "Image: `%s`\n\n", res.ChosenImages[i])
		}
		if post.Title != nil && *post.Title != "" {
			fmt.Fprintf(&sb, "**%s**\n\n", *post.Title)
		}
		sb.WriteString(post.Caption)
		sb.WriteString("\n\n")
		fmt.Fprintf(&sb, "%s\n\n", strings.Join(post.Content.Hashtags, " "))
		fmt.Fprintf(&sb, "*Alt text:* %s\n", post.Content.AltText)
	}
	return sb.String()
}

// HTML renders the Markdown plan for in-browser preview.
func HTML(res *copywriter.RunResult) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(res)), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
