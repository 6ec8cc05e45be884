package models

import "time"

// CheckoutSession records a hosted checkout session created for a viewer.
type CheckoutSession struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID *uint64 `gorm:"index"`             // Purchasing user, nil for anonymous checkout.
	User   *User   `gorm:"foreignKey:UserID"` // Purchasing user record.

	PriceID  string `gorm:"type:varchar(255);not null"` // Provider price identifier.
	PlanTier string `gorm:"type:varchar(32)"`           // Target plan tier, when known.

	URL    string `gorm:"type:text;not null"`                          // Hosted checkout redirect URL.
	Status string `gorm:"type:varchar(32);not null;default:'created'"` // Session status.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
