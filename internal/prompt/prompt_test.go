package prompt

import (
	"strings"
	"testing"

	"github.com/sheetsmith/sheetsmith/internal/catalog"
)

func TestBuild_Deterministic(t *testing.T) {
	tmpl := catalog.Template{Name: "Sales CRM", CanonicalPrompt: "Build a CRM."}
	fields := Fields{Tracking: "deals", TimeHorizon: "12 months", Palette: "blue"}

	first := Build(tmpl, fields)
	second := Build(tmpl, fields)
	if first != second {
		t.Fatalf("expected identical output, got\n%q\n%q", first, second)
	}
}

func TestBuild_OmitsBlankFields(t *testing.T) {
	tmpl := catalog.Template{Name: "Sales CRM", CanonicalPrompt: "Build a CRM."}

	out := Build(tmpl, Fields{Tracking: "   ", TimeHorizon: "12 months"})
	if strings.Contains(out, "track:") {
		t.Fatalf("blank tracking field leaked into prompt: %q", out)
	}
	if !strings.Contains(out, "Time horizon: 12 months.") {
		t.Fatalf("time horizon sentence missing from prompt: %q", out)
	}
	if !strings.Contains(out, "freeze header rows") {
		t.Fatalf("closing instruction missing from prompt: %q", out)
	}
}

func TestBuild_OmittingOneFieldRemovesOnlyItsSentence(t *testing.T) {
	tmpl := catalog.Template{Name: "Budget", CanonicalPrompt: "Build a budget."}
	full := Fields{Tracking: "spend", TimeHorizon: "1 year", Views: "summary", Palette: "green", Notes: "keep it simple"}
	partial := full
	partial.Views = ""

	withViews := Build(tmpl, full)
	withoutViews := Build(tmpl, partial)

	if !strings.Contains(withViews, "Include these views or tabs: summary.") {
		t.Fatalf("views sentence missing: %q", withViews)
	}
	if strings.Contains(withoutViews, "views or tabs") {
		t.Fatalf("views sentence present after omission: %q", withoutViews)
	}

	removed := strings.Replace(withViews, " Include these views or tabs: summary.", "", 1)
	if removed != withoutViews {
		t.Fatalf("omitting views changed other sentences:\n%q\n%q", removed, withoutViews)
	}
}

func TestBuild_FallbackWhenCanonicalPromptEmpty(t *testing.T) {
	tmpl := catalog.Template{Name: "Mystery"}
	out := Build(tmpl, Fields{})
	if !strings.Contains(out, "\"Mystery\" template") {
		t.Fatalf("expected fallback sentence naming the template, got %q", out)
	}
}

func TestBuild_SentenceOrderFixed(t *testing.T) {
	tmpl := catalog.Template{Name: "Budget", CanonicalPrompt: "Build a budget."}
	out := Build(tmpl, Fields{Notes: "n", Tracking: "t", Palette: "p"})

	trackIdx := strings.Index(out, "It should track:")
	paletteIdx := strings.Index(out, "Color palette preference:")
	notesIdx := strings.Index(out, "Additional notes:")
	if trackIdx < 0 || paletteIdx < 0 || notesIdx < 0 {
		t.Fatalf("expected all sentences present: %q", out)
	}
	if !(trackIdx < paletteIdx && paletteIdx < notesIdx) {
		t.Fatalf("sentence order not fixed: %q", out)
	}
}
