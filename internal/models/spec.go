package models

import (
	"time"

	"gorm.io/datatypes"
)

// SpecRequest is the audit row written before every model call. It exists
// even when generation fails afterwards, so every model call stays
// attributable.
type SpecRequest struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UUID string `gorm:"type:varchar(36);not null;uniqueIndex"` // Public identifier.

	UserID *uint64 `gorm:"index"`             // Requesting user, nil for anonymous.
	User   *User   `gorm:"foreignKey:UserID"` // Requesting user record.

	RawPrompt         string `gorm:"type:text;not null"` // Prompt as sent to the model.
	RequestedCategory string `gorm:"type:varchar(255)"`  // Category filter requested by the caller.
	TemplateSlug      string `gorm:"type:varchar(255)"`  // Originating template, if any.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
}

// SheetSpec is a persisted, normalized sheet specification. Rows are
// immutable after creation; customizing an existing spec creates a new row.
type SheetSpec struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UUID string `gorm:"type:varchar(36);not null;uniqueIndex"` // Public identifier.

	RequestID uint64      `gorm:"not null;index"`       // Originating audit request.
	Request   SpecRequest `gorm:"foreignKey:RequestID"` // Originating audit request record.

	UserID *uint64 `gorm:"index"`             // Owning user, nil for anonymous generations.
	User   *User   `gorm:"foreignKey:UserID"` // Owning user record.

	Title    string         `gorm:"type:varchar(255);not null"`       // Spec title.
	Category string         `gorm:"type:varchar(255);index"`          // Spec category.
	Tags     datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"` // Ordered tag list.
	Notes    string         `gorm:"type:text"`                        // Free-form notes.
	Sheets   datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"` // Ordered tab descriptors.

	SpreadsheetID string `gorm:"type:varchar(255)"` // Materialized spreadsheet, when created.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
}
