package catalog

// builtin is the static template catalog. Slugs are stable identifiers and
// must never be reused for a different template.
var builtin = []Template{
	{
		Slug:            "personal-budget",
		Name:            "Personal Budget",
		Category:        "Finance",
		Difficulty:      DifficultyBeginner,
		MinPlan:         TierFree,
		CanonicalPrompt: "Build a personal budget tracker with monthly income, expense categories, and a savings summary.",
		PreviewURL:      "https://cdn.sheetsmith.app/previews/personal-budget.png",
		SpreadsheetID:   "1kPbudget0000000000000000000000000000000000A",
	},
	{
		Slug:            "habit-tracker",
		Name:            "Habit Tracker",
		Category:        "Productivity",
		Difficulty:      DifficultyBeginner,
		MinPlan:         TierFree,
		CanonicalPrompt: "Build a daily habit tracker with streak counts and a weekly completion dashboard.",
		PreviewURL:      "https://cdn.sheetsmith.app/previews/habit-tracker.png",
		SpreadsheetID:   "1kPhabit00000000000000000000000000000000000A",
	},
	{
		Slug:            "content-calendar",
		Name:            "Content Calendar",
		Category:        "Marketing",
		Difficulty:      DifficultyIntermediate,
		MinPlan:         TierStarter,
		CanonicalPrompt: "Build a content calendar with publish dates, channels, owners, status, and a monthly overview tab.",
		PreviewURL:      "https://cdn.sheetsmith.app/previews/content-calendar.png",
		SpreadsheetID:   "1kPcontent000000000000000000000000000000000A",
	},
	{
		Slug:            "sales-crm",
		Name:            "Sales CRM",
		Category:        "Sales",
		Difficulty:      DifficultyIntermediate,
		MinPlan:         TierStarter,
		CanonicalPrompt: "Build a lightweight CRM with contacts, deal stages, pipeline value formulas, and a win-rate summary.",
		PreviewURL:      "https://cdn.sheetsmith.app/previews/sales-crm.png",
		SpreadsheetID:   "1kPcrm0000000000000000000000000000000000000A",
	},
	{
		Slug:            "inventory-manager",
		Name:            "Inventory Manager",
		Category:        "Operations",
		Difficulty:      DifficultyAdvanced,
		MinPlan:         TierPro,
		CanonicalPrompt: "Build an inventory manager with SKUs, reorder thresholds, supplier lookups, and a low-stock dashboard.",
		PreviewURL:      "https://cdn.sheetsmith.app/previews/inventory-manager.png",
		SpreadsheetID:   "1kPinv0000000000000000000000000000000000000A",
	},
	{
		Slug:            "financial-model",
		Name:            "SaaS Financial Model",
		Category:        "Finance",
		Difficulty:      DifficultyAdvanced,
		MinPlan:         TierPro,
		CanonicalPrompt: "Build a SaaS financial model with MRR, churn, CAC payback formulas, and a three-year projection dashboard.",
		PreviewURL:      "https://cdn.sheetsmith.app/previews/financial-model.png",
		SpreadsheetID:   "1kPfin0000000000000000000000000000000000000A",
	},
	{
		Slug:            "headcount-planner",
		Name:            "Headcount Planner",
		Category:        "Operations",
		Difficulty:      DifficultyAdvanced,
		MinPlan:         TierEnterprise,
		CanonicalPrompt: "Build a headcount planner with departments, open roles, fully loaded cost formulas, and a hiring dashboard.",
		PreviewURL:      "https://cdn.sheetsmith.app/previews/headcount-planner.png",
		SpreadsheetID:   "1kPhead000000000000000000000000000000000000A",
	},
	{
		Slug:            "internal-metrics",
		Name:            "Internal Metrics Board",
		Category:        "Internal",
		Difficulty:      DifficultyAdvanced,
		MinPlan:         TierFree,
		AdminOnly:       true,
		CanonicalPrompt: "Build an internal metrics board with signup funnels, activation rates, and cohort retention tabs.",
		PreviewURL:      "https://cdn.sheetsmith.app/previews/internal-metrics.png",
		SpreadsheetID:   "1kPmetrics0000000000000000000000000000000000A",
	},
}
