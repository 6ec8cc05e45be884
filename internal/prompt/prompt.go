// Package prompt assembles generation prompts from a template and the
// customization form. Assembly is deterministic: the assembled prompt is
// shown to the user as a preview and sent to the model verbatim, so the
// same inputs must always produce the same bytes.
package prompt

import (
	"strings"

	"github.com/sheetsmith/sheetsmith/internal/catalog"
)

// Fields holds the optional customization form values. Blank fields are
// omitted from the assembled prompt entirely.
type Fields struct {
	Tracking    string `json:"tracking"`     // What the sheet should track.
	TimeHorizon string `json:"time_horizon"` // Planning horizon.
	Views       string `json:"views"`        // Desired views or tabs.
	Palette     string `json:"palette"`      // Color palette preference.
	Notes       string `json:"notes"`        // Free-form extra notes.
}

// closingInstruction is always appended, regardless of which optional
// fields were present.
const closingInstruction = "Use clear tab names, freeze header rows, and keep formulas readable."

// Build composes the generation prompt for a template and form values.
func Build(t catalog.Template, f Fields) string {
	var b strings.Builder

	base := strings.TrimSpace(t.CanonicalPrompt)
	if base == "" {
		base = "Build a spreadsheet based on the \"" + t.Name + "\" template."
	}
	b.WriteString(base)

	appendSentence(&b, "It should track: ", f.Tracking)
	appendSentence(&b, "Time horizon: ", f.TimeHorizon)
	appendSentence(&b, "Include these views or tabs: ", f.Views)
	appendSentence(&b, "Color palette preference: ", f.Palette)
	appendSentence(&b, "Additional notes: ", f.Notes)

	b.WriteString(" ")
	b.WriteString(closingInstruction)
	return b.String()
}

// appendSentence writes one optional sentence, skipping blank values so the
// prompt never contains a dangling label.
func appendSentence(b *strings.Builder, label, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(label)
	b.WriteString(trimmed)
	if !strings.HasSuffix(trimmed, ".") {
		b.WriteString(".")
	}
}
