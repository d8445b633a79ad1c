package tiktok

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// BuildCaption assembles the post caption from the verse reference, the theme
// name, and the configured hashtag list capped at maxTags.
func BuildCaption(verseRef, themeSlug string, hashtags []string, maxTags int) string {
	if maxTags < 0 {
		maxTags = 0
	}
	if maxTags > len(hashtags) {
		maxTags = len(hashtags)
	}
	tags := strings.Join(hashtags[:maxTags], " ")

	caption := verseRef + " | " + ThemeTitle(themeSlug)
	if tags != "" {
		caption += "\n\n" + tags
	}
	return caption
}

// ThemeTitle renders a theme slug as a display name ("money-worry" becomes
// "Money Worry").
func ThemeTitle(slug string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(slug, "-", " "))
	if cleaned == "" {
		return "Faith"
	}
	return titleCaser.String(cleaned)
}
