package overlay

// DefaultCTA is the fallback call-to-action for themes without an entry.
const DefaultCTA = "Share your prayer in the comments"

// themeCTAs maps theme slugs to their canonical call-to-action line.
var themeCTAs = map[string]string{
	"grief":            "Share who you're remembering today",
	"retirement":       "What's your new purpose? Tell us below",
	"health":           "Drop a prayer request if you need healing",
	"faith-doubts":     "What question is on your heart today?",
	"adult-children":   "Share a prayer for your children below",
	"marriage-renewal": "Tag your spouse and share this blessing",
	"legacy":           "What legacy are you building? Share below",
	"grandparenting":   "Tell us about your grandchildren",
}

// CTAFor resolves the call-to-action for a theme. Overrides win over the
// built-in table; a missing key always falls back to DefaultCTA.
func CTAFor(themeSlug string, overrides map[string]string) string {
	if cta, ok := overrides[themeSlug]; ok && cta != "" {
		return cta
	}
	if cta, ok := themeCTAs[themeSlug]; ok {
		return cta
	}
	return DefaultCTA
}
