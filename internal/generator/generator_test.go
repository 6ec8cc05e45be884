package generator

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sheetsmith/sheetsmith/internal/db"
	"github.com/sheetsmith/sheetsmith/internal/events"
	"github.com/sheetsmith/sheetsmith/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type stubModel struct {
	output []byte
	err    error

	gotPrompt   string
	gotExamples []string
}

func (m *stubModel) GenerateSpec(_ context.Context, prompt string, examples []string) ([]byte, error) {
	m.gotPrompt = prompt
	m.gotExamples = examples
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "generator_test.db")
	conn, errOpen := db.Open(dsn)
	if errOpen != nil {
		t.Fatalf("open test db: %v", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate test db: %v", errMigrate)
	}
	return conn
}

func TestGenerateAuditRowSurvivesModelFailure(t *testing.T) {
	conn := openTestDB(t)
	model := &stubModel{err: errors.New("model unavailable")}
	pipeline := NewPipeline(conn, model, events.NewRecorder(conn))

	_, errGenerate := pipeline.Generate(context.Background(), Input{
		Prompt:   "Build a spreadsheet for tracking weekly workouts",
		Category: "fitness",
	})
	if errGenerate == nil {
		t.Fatal("expected model failure to surface")
	}

	var count int64
	if errCount := conn.Model(&models.SpecRequest{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count requests: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("request count = %d, want 1 audit row despite failure", count)
	}
	var specCount int64
	if errCount := conn.Model(&models.SheetSpec{}).Count(&specCount).Error; errCount != nil {
		t.Fatalf("count specs: %v", errCount)
	}
	if specCount != 0 {
		t.Fatalf("spec count = %d, want 0 after failure", specCount)
	}
}

func TestGeneratePersistsNormalizedSpec(t *testing.T) {
	conn := openTestDB(t)
	model := &stubModel{output: []byte(`{"title":"Workout Log","sheets":[{"name":"Log","columns":[{"name":"Date","type":"date"}]}]}`)}
	pipeline := NewPipeline(conn, model, events.NewRecorder(conn))

	result, errGenerate := pipeline.Generate(context.Background(), Input{
		Prompt:   "Build a spreadsheet for tracking weekly workouts",
		Category: "fitness",
	})
	if errGenerate != nil {
		t.Fatalf("generate: %v", errGenerate)
	}
	if result.RequestID == "" || result.SpecID == "" {
		t.Fatal("expected request and spec identifiers")
	}
	if result.Spec.Category != "fitness" {
		t.Fatalf("category = %q, want requested category backfilled", result.Spec.Category)
	}
	if result.Spec.Tags == nil {
		t.Fatal("tags should normalize to an empty list")
	}

	var row models.SheetSpec
	if errFind := conn.Where("uuid = ?", result.SpecID).First(&row).Error; errFind != nil {
		t.Fatalf("load persisted spec: %v", errFind)
	}
	if row.Title != "Workout Log" {
		t.Fatalf("title = %q", row.Title)
	}
	if string(row.Tags) != "[]" {
		t.Fatalf("persisted tags = %q, want []", string(row.Tags))
	}

	var eventCount int64
	if errCount := conn.Model(&models.Event{}).Where("event_type = ?", events.TypeSpecCreated).Count(&eventCount).Error; errCount != nil {
		t.Fatalf("count events: %v", errCount)
	}
	if eventCount != 1 {
		t.Fatalf("event count = %d, want 1", eventCount)
	}
}

func TestGenerateStoresEmptySheetsResult(t *testing.T) {
	conn := openTestDB(t)
	model := &stubModel{output: []byte(`{"title":"Sparse Plan","sheets":[]}`)}
	pipeline := NewPipeline(conn, model, events.NewRecorder(conn))

	result, errGenerate := pipeline.Generate(context.Background(), Input{
		Prompt: "Build a spreadsheet with nothing in it yet",
	})
	if errGenerate != nil {
		t.Fatalf("generate: %v", errGenerate)
	}
	if len(result.Spec.Sheets) != 0 {
		t.Fatalf("sheets = %v, want empty", result.Spec.Sheets)
	}

	var row models.SheetSpec
	if errFind := conn.Where("uuid = ?", result.SpecID).First(&row).Error; errFind != nil {
		t.Fatalf("load persisted spec: %v", errFind)
	}
	if string(row.Sheets) != "[]" {
		t.Fatalf("persisted sheets = %q, want []", string(row.Sheets))
	}
}

func TestGenerateFeedsCategoryExamples(t *testing.T) {
	conn := openTestDB(t)

	seedRequest := models.SpecRequest{UUID: "req-seed", RawPrompt: "seed"}
	if errCreate := conn.Create(&seedRequest).Error; errCreate != nil {
		t.Fatalf("seed request: %v", errCreate)
	}
	for i := 0; i < 5; i++ {
		row := models.SheetSpec{
			UUID:      "seed-" + string(rune('a'+i)),
			RequestID: seedRequest.ID,
			Title:     "Budget",
			Category:  "finance",
			Tags:      datatypes.JSON(`["money"]`),
			Sheets:    datatypes.JSON(`[{"name":"Main"}]`),
		}
		if errCreate := conn.Create(&row).Error; errCreate != nil {
			t.Fatalf("seed spec %d: %v", i, errCreate)
		}
	}

	model := &stubModel{output: []byte(`{"title":"Budget Plan","sheets":[]}`)}
	pipeline := NewPipeline(conn, model, events.NewRecorder(conn))
	if _, errGenerate := pipeline.Generate(context.Background(), Input{
		Prompt:   "Build a budget spreadsheet",
		Category: "finance",
	}); errGenerate != nil {
		t.Fatalf("generate: %v", errGenerate)
	}

	if len(model.gotExamples) != 3 {
		t.Fatalf("examples = %d, want capped at 3", len(model.gotExamples))
	}
	var decoded map[string]any
	if errUnmarshal := json.Unmarshal([]byte(model.gotExamples[0]), &decoded); errUnmarshal != nil {
		t.Fatalf("example is not JSON: %v", errUnmarshal)
	}
	if decoded["category"] != "finance" {
		t.Fatalf("example category = %v", decoded["category"])
	}
}
