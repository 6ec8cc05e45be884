package sheets

import (
	"context"
	"testing"

	"github.com/sheetsmith/sheetsmith/internal/spec"
)

func TestBuildTabRequestsDefaultsToSingleTab(t *testing.T) {
	tabs := buildTabRequests(nil)
	if len(tabs) != 1 {
		t.Fatalf("tabs = %d, want 1 default tab", len(tabs))
	}
	if tabs[0].Properties.Title != "Sheet1" {
		t.Fatalf("title = %q", tabs[0].Properties.Title)
	}
}

func TestBuildTabRequestsNamesTabs(t *testing.T) {
	tabs := buildTabRequests([]spec.Sheet{
		{Name: "Log"},
		{Name: "  "},
		{Name: "Summary"},
	})
	if len(tabs) != 3 {
		t.Fatalf("tabs = %d, want 3", len(tabs))
	}
	if tabs[0].Properties.Title != "Log" {
		t.Fatalf("tab 0 = %q", tabs[0].Properties.Title)
	}
	if tabs[1].Properties.Title != "Sheet2" {
		t.Fatalf("blank name should fall back to position, got %q", tabs[1].Properties.Title)
	}
	if tabs[2].Properties.Title != "Summary" {
		t.Fatalf("tab 2 = %q", tabs[2].Properties.Title)
	}
}

func TestNewMaterializerWithoutCredentials(t *testing.T) {
	m, errNew := NewMaterializer(context.Background(), nil)
	if errNew != nil {
		t.Fatalf("empty credentials should not error: %v", errNew)
	}
	if m.Available() {
		t.Fatal("nil materializer should report unavailable")
	}
	if _, errMaterialize := m.Materialize(context.Background(), spec.Spec{Title: "X"}); errMaterialize == nil {
		t.Fatal("materialize without configuration should fail")
	}
}
