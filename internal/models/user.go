package models

import "time"

// User represents an end-user account stored in the database.
type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UUID  string `gorm:"type:varchar(36);not null;uniqueIndex"` // Public identifier.
	Email string `gorm:"type:text;not null;uniqueIndex"`        // Login email.
	Name  string `gorm:"type:text"`                             // Display name.

	Password string `gorm:"type:text;not null"` // Hashed password.

	PlanTier string `gorm:"type:varchar(32);not null;default:'free'"` // Active subscription tier.

	IsAdmin bool `gorm:"not null;default:false"` // Role claim, resolved at login.

	Active   bool `gorm:"not null;default:true"`  // Whether the user can sign in.
	Disabled bool `gorm:"not null;default:false"` // Explicit disable flag.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
