package catalog

import "testing"

func TestIsVisible_FailClosedOnUnknownMinPlan(t *testing.T) {
	tmpl := Template{Slug: "x", MinPlan: Tier("platinum")}
	for _, plan := range Tiers() {
		if IsVisible(tmpl, plan, false) {
			t.Fatalf("expected unknown min plan to deny for viewer plan %q", plan)
		}
	}
}

func TestIsVisible_FailClosedOnUnknownViewerPlan(t *testing.T) {
	tmpl := Template{Slug: "x", MinPlan: TierFree}
	if IsVisible(tmpl, Tier("gold"), false) {
		t.Fatalf("expected unknown viewer plan to deny")
	}
}

func TestIsVisible_AdminOverride(t *testing.T) {
	templates := []Template{
		{Slug: "a", MinPlan: TierEnterprise},
		{Slug: "b", MinPlan: TierFree, AdminOnly: true},
		{Slug: "c", MinPlan: Tier("bogus")},
	}
	for _, tmpl := range templates {
		if !IsVisible(tmpl, TierFree, true) {
			t.Fatalf("expected admin to see template %q", tmpl.Slug)
		}
	}
}

func TestIsVisible_AdminOnlyHiddenFromNonAdmins(t *testing.T) {
	tmpl := Template{Slug: "x", MinPlan: TierFree, AdminOnly: true}
	if IsVisible(tmpl, TierEnterprise, false) {
		t.Fatalf("expected admin-only template hidden from enterprise non-admin")
	}
}

func TestIsVisible_TierMonotonicity(t *testing.T) {
	tmpl := Template{Slug: "x", MinPlan: TierStarter}

	if IsVisible(tmpl, TierFree, false) {
		t.Fatalf("expected free viewer denied for starter template")
	}
	for _, plan := range []Tier{TierStarter, TierPro, TierEnterprise} {
		if !IsVisible(tmpl, plan, false) {
			t.Fatalf("expected %q viewer allowed for starter template", plan)
		}
	}
}

func TestIsVisible_ProTemplateScenario(t *testing.T) {
	tmpl := Template{Slug: "x", MinPlan: TierPro, AdminOnly: false}

	if IsVisible(tmpl, TierStarter, false) {
		t.Fatalf("expected starter viewer denied for pro template")
	}
	if !IsVisible(tmpl, TierPro, false) {
		t.Fatalf("expected pro viewer allowed for pro template")
	}
}

func TestParseTier_DefaultsToFree(t *testing.T) {
	cases := []string{"", "  ", "platinum", "FREE "}
	expected := []Tier{TierFree, TierFree, TierFree, TierFree}
	for i, raw := range cases {
		if got := ParseTier(raw); got != expected[i] {
			t.Fatalf("ParseTier(%q) = %q, expected %q", raw, got, expected[i])
		}
	}
	if got := ParseTier("Pro"); got != TierPro {
		t.Fatalf("ParseTier(Pro) = %q, expected pro", got)
	}
}

func TestVisible_FiltersBuiltinCatalog(t *testing.T) {
	for _, tmpl := range Visible(TierFree, false) {
		if tmpl.AdminOnly {
			t.Fatalf("admin-only template %q leaked to free viewer", tmpl.Slug)
		}
		if Rank(tmpl.MinPlan) > Rank(TierFree) {
			t.Fatalf("template %q above free tier leaked to free viewer", tmpl.Slug)
		}
	}

	adminCount := len(Visible(TierFree, true))
	if adminCount != len(All()) {
		t.Fatalf("expected admin to see all %d templates, got %d", len(All()), adminCount)
	}
}

func TestBySlug(t *testing.T) {
	tmpl, ok := BySlug(" Personal-Budget ")
	if !ok {
		t.Fatalf("expected personal-budget to resolve")
	}
	if tmpl.Slug != "personal-budget" {
		t.Fatalf("unexpected slug %q", tmpl.Slug)
	}
	if _, ok = BySlug("no-such-template"); ok {
		t.Fatalf("expected unknown slug to miss")
	}
}
