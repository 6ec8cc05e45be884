package models

import (
	"time"

	"gorm.io/datatypes"
)

// Event is an append-only lifecycle event. Rows are write-only from the
// application's perspective, read only by the admin listing.
type Event struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	EventType string `gorm:"type:varchar(64);not null;index"` // Event type tag (spec_created, sheet_opened, ...).

	UserUUID     string `gorm:"type:varchar(36);index"` // Acting user, empty for anonymous.
	SpecUUID     string `gorm:"type:varchar(36);index"` // Related spec, when applicable.
	TemplateSlug string `gorm:"type:varchar(255)"`      // Related template, when applicable.

	Metadata datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"` // Free-form metadata.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
}
