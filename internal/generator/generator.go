// Package generator runs the spec generation pipeline: audit, model call,
// normalization, persistence.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sheetsmith/sheetsmith/internal/events"
	"github.com/sheetsmith/sheetsmith/internal/models"
	"github.com/sheetsmith/sheetsmith/internal/spec"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxFewShotExamples = 3

// Model produces raw spec JSON for a prompt.
type Model interface {
	GenerateSpec(ctx context.Context, prompt string, examples []string) ([]byte, error)
}

// Input carries one generation request through the pipeline.
type Input struct {
	Prompt       string
	Category     string
	UserID       *uint64
	UserUUID     string
	TemplateSlug string
}

// Result is the outcome of a successful generation.
type Result struct {
	RequestID string
	SpecID    string
	Spec      spec.Spec
}

// Pipeline generates and persists sheet specs. The audit row is written
// before the model call, so a failed call still leaves a trace.
type Pipeline struct {
	db       *gorm.DB
	model    Model
	recorder *events.Recorder
}

// NewPipeline constructs a Pipeline.
func NewPipeline(db *gorm.DB, model Model, recorder *events.Recorder) *Pipeline {
	return &Pipeline{db: db, model: model, recorder: recorder}
}

// Generate runs the pipeline for one request.
func (p *Pipeline) Generate(ctx context.Context, in Input) (Result, error) {
	prompt := strings.TrimSpace(in.Prompt)
	if prompt == "" {
		return Result{}, fmt.Errorf("generator: empty prompt")
	}
	if p.model == nil {
		return Result{}, fmt.Errorf("generator: no model configured")
	}

	request := models.SpecRequest{
		UUID:              uuid.NewString(),
		UserID:            in.UserID,
		RawPrompt:         prompt,
		RequestedCategory: strings.TrimSpace(in.Category),
		TemplateSlug:      strings.TrimSpace(in.TemplateSlug),
	}
	if errCreate := p.db.Create(&request).Error; errCreate != nil {
		return Result{}, fmt.Errorf("generator: record request: %w", errCreate)
	}

	examples := p.fewShotExamples(request.RequestedCategory)

	raw, errGenerate := p.model.GenerateSpec(ctx, prompt, examples)
	if errGenerate != nil {
		log.WithError(errGenerate).WithField("request_id", request.UUID).Warn("generator: model call failed")
		return Result{}, fmt.Errorf("generator: model call: %w", errGenerate)
	}

	parsed, errParse := spec.Parse(raw)
	if errParse != nil {
		log.WithError(errParse).WithField("request_id", request.UUID).Warn("generator: unusable model output")
		return Result{}, errParse
	}
	normalized := spec.Normalize(parsed, request.RequestedCategory)

	row, errPersist := p.persist(request, normalized)
	if errPersist != nil {
		return Result{}, errPersist
	}

	metadata, _ := json.Marshal(map[string]string{"category": normalized.Category})
	p.recorder.Record(events.Entry{
		EventType:    events.TypeSpecCreated,
		UserUUID:     in.UserUUID,
		SpecUUID:     row.UUID,
		TemplateSlug: request.TemplateSlug,
		Metadata:     metadata,
	})

	return Result{
		RequestID: request.UUID,
		SpecID:    row.UUID,
		Spec:      normalized,
	}, nil
}

// fewShotExamples loads up to three recent specs in the requested category
// to steer the model. Lookup failures are logged and skipped; examples are
// an aid, not a requirement.
func (p *Pipeline) fewShotExamples(category string) []string {
	if category == "" {
		return nil
	}
	var rows []models.SheetSpec
	errFind := p.db.
		Where("category = ?", category).
		Order("created_at DESC").
		Limit(maxFewShotExamples).
		Find(&rows).Error
	if errFind != nil {
		log.WithError(errFind).WithField("category", category).Warn("generator: example lookup failed")
		return nil
	}

	examples := make([]string, 0, len(rows))
	for _, row := range rows {
		payload, errMarshal := json.Marshal(map[string]any{
			"title":    row.Title,
			"category": row.Category,
			"tags":     json.RawMessage(row.Tags),
			"sheets":   json.RawMessage(row.Sheets),
		})
		if errMarshal != nil {
			continue
		}
		examples = append(examples, string(payload))
	}
	return examples
}

func (p *Pipeline) persist(request models.SpecRequest, normalized spec.Spec) (models.SheetSpec, error) {
	tags, errTags := json.Marshal(normalized.Tags)
	if errTags != nil {
		return models.SheetSpec{}, fmt.Errorf("generator: encode tags: %w", errTags)
	}
	sheets, errSheets := json.Marshal(normalized.Sheets)
	if errSheets != nil {
		return models.SheetSpec{}, fmt.Errorf("generator: encode sheets: %w", errSheets)
	}

	row := models.SheetSpec{
		UUID:      uuid.NewString(),
		RequestID: request.ID,
		UserID:    request.UserID,
		Title:     normalized.Title,
		Category:  normalized.Category,
		Tags:      datatypes.JSON(tags),
		Notes:     normalized.Notes,
		Sheets:    datatypes.JSON(sheets),
	}
	if errCreate := p.db.Create(&row).Error; errCreate != nil {
		return models.SheetSpec{}, fmt.Errorf("generator: persist spec: %w", errCreate)
	}
	return row, nil
}
