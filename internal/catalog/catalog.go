package catalog

import "strings"

// Difficulty describes how advanced a template is.
type Difficulty string

// Difficulty levels for templates.
const (
	// DifficultyBeginner marks entry-level templates.
	DifficultyBeginner Difficulty = "Beginner"
	// DifficultyIntermediate marks mid-level templates.
	DifficultyIntermediate Difficulty = "Intermediate"
	// DifficultyAdvanced marks advanced templates.
	DifficultyAdvanced Difficulty = "Advanced"
)

// Template is a curated catalog entry describing a pre-built spreadsheet.
// The catalog is static and read-only at runtime.
type Template struct {
	Slug            string     // Unique key.
	Name            string     // Display name.
	Category        string     // Catalog category.
	Difficulty      Difficulty // Difficulty level.
	MinPlan         Tier       // Minimum tier required to see the template.
	AdminOnly       bool       // When true only admins see the template.
	CanonicalPrompt string     // Base generation prompt.
	PreviewURL      string     // Presentation field, passed through unchanged.
	SpreadsheetID   string     // Backing spreadsheet for the copy redirect.
}

// IsVisible decides whether a viewer may see a template.
//
// Admins see everything, including admin-only templates. For everyone else
// admin-only templates are hidden regardless of plan, and otherwise the
// viewer's tier ordinal must be at least the template's. Unknown tiers on
// either side deny access.
func IsVisible(t Template, viewerPlan Tier, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	if t.AdminOnly {
		return false
	}
	viewerRank := Rank(viewerPlan)
	minRank := Rank(t.MinPlan)
	if viewerRank < 0 || minRank < 0 {
		return false
	}
	return viewerRank >= minRank
}

// Visible returns the builtin templates the viewer may see, in catalog order.
func Visible(viewerPlan Tier, isAdmin bool) []Template {
	out := make([]Template, 0, len(builtin))
	for _, t := range builtin {
		if IsVisible(t, viewerPlan, isAdmin) {
			out = append(out, t)
		}
	}
	return out
}

// BySlug looks up a builtin template by slug.
func BySlug(slug string) (Template, bool) {
	normalized := strings.ToLower(strings.TrimSpace(slug))
	for _, t := range builtin {
		if t.Slug == normalized {
			return t, true
		}
	}
	return Template{}, false
}

// All returns every builtin template regardless of visibility.
func All() []Template {
	out := make([]Template, len(builtin))
	copy(out, builtin)
	return out
}
