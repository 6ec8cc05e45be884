package models

import (
	"time"

	"gorm.io/datatypes"
)

// Plan represents a subscription plan configuration. The tier column keys
// into the fixed ordering used by the template visibility filter.
type Plan struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Tier string `gorm:"type:varchar(32);not null;uniqueIndex"` // Tier key (free/starter/pro/enterprise).
	Rank int    `gorm:"not null;default:0"`                    // Ordinal position within the tier sequence.

	Name        string  `gorm:"type:varchar(255);not null"`            // Display name.
	MonthPrice  float64 `gorm:"type:decimal(10,2);not null;default:0"` // Monthly price.
	Description string  `gorm:"type:text"`                             // Plan description.

	PriceID string `gorm:"type:varchar(255)"` // Checkout provider price identifier.

	Features datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"` // Feature bullet list.

	SortOrder int `gorm:"not null;default:0"` // Display ordering weight.

	IsEnabled bool `gorm:"not null;default:true"` // Whether the plan is active.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
