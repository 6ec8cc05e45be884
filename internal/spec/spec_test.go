package spec

import "testing"

func TestParse_RejectsMissingTitle(t *testing.T) {
	if _, err := Parse([]byte(`{"sheets": []}`)); err == nil {
		t.Fatalf("expected error for missing title")
	}
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestParse_ToleratesNonListSheets(t *testing.T) {
	parsed, err := Parse([]byte(`{"title": "Budget", "sheets": "oops"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Sheets != nil {
		t.Fatalf("expected nil sheets for non-list value, got %v", parsed.Sheets)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	parsed, err := Parse([]byte(`{"title": "Budget", "sheets": "oops"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	normalized := Normalize(parsed, "Finance")
	if normalized.Category != "Finance" {
		t.Fatalf("expected backfilled category, got %q", normalized.Category)
	}
	if normalized.Tags == nil || len(normalized.Tags) != 0 {
		t.Fatalf("expected empty tags list, got %v", normalized.Tags)
	}
	if normalized.Sheets == nil || len(normalized.Sheets) != 0 {
		t.Fatalf("expected empty sheets list, got %v", normalized.Sheets)
	}
}

func TestNormalize_KeepsModelCategory(t *testing.T) {
	normalized := Normalize(Spec{Title: "Budget", Category: "Ops"}, "Finance")
	if normalized.Category != "Ops" {
		t.Fatalf("expected model category preserved, got %q", normalized.Category)
	}
}

func TestNormalize_EmptySheetsIsValid(t *testing.T) {
	parsed, err := Parse([]byte(`{"title": "Budget", "sheets": []}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	normalized := Normalize(parsed, "")
	if len(normalized.Sheets) != 0 {
		t.Fatalf("expected empty sheets preserved, got %v", normalized.Sheets)
	}
}

func TestIsValidColumnType(t *testing.T) {
	for _, columnType := range ColumnTypes {
		if !IsValidColumnType(columnType) {
			t.Fatalf("expected %q to be valid", columnType)
		}
	}
	if IsValidColumnType("percentage") {
		t.Fatalf("expected unknown column type rejected")
	}
}
