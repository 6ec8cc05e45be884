package events

import (
	"strings"

	"github.com/sheetsmith/sheetsmith/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Well-known event types emitted by the product flows.
const (
	TypeSpecCreated            = "spec_created"
	TypeSheetOpened            = "sheet_opened"
	TypeCustomizationCompleted = "customization_completed"
	TypeTemplateCopied         = "template_copied"
	TypeCheckoutStarted        = "checkout_started"
)

// Entry is one analytics event to record.
type Entry struct {
	EventType    string
	UserUUID     string
	SpecUUID     string
	TemplateSlug string
	Metadata     []byte
}

// Recorder appends analytics events. Recording is strictly best effort:
// failures are logged and never surface to the caller.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder constructs a Recorder.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record inserts an event row. A blank event type drops the entry.
func (r *Recorder) Record(entry Entry) {
	if r == nil || r.db == nil {
		return
	}
	eventType := strings.TrimSpace(entry.EventType)
	if eventType == "" {
		return
	}

	metadata := datatypes.JSON("{}")
	if len(entry.Metadata) > 0 {
		metadata = datatypes.JSON(entry.Metadata)
	}
	row := models.Event{
		EventType:    eventType,
		UserUUID:     strings.TrimSpace(entry.UserUUID),
		SpecUUID:     strings.TrimSpace(entry.SpecUUID),
		TemplateSlug: strings.TrimSpace(entry.TemplateSlug),
		Metadata:     metadata,
	}
	if errCreate := r.db.Create(&row).Error; errCreate != nil {
		log.WithError(errCreate).WithField("event_type", eventType).Warn("events: record failed")
	}
}
