package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sheetsmith/sheetsmith/internal/catalog"
	"github.com/sheetsmith/sheetsmith/internal/models"
	"github.com/sheetsmith/sheetsmith/internal/security"
	internalsettings "github.com/sheetsmith/sheetsmith/internal/settings"
	"gorm.io/gorm"
)

// HasAdminInitialized reports whether any admin account exists.
func HasAdminInitialized(conn *gorm.DB) (bool, error) {
	if conn == nil {
		return false, fmt.Errorf("app: nil connection")
	}
	var count int64
	if errCount := conn.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; errCount != nil {
		return false, fmt.Errorf("app: count admins: %w", errCount)
	}
	return count > 0, nil
}

// CreateAdminUser creates the first admin account and seeds the site name.
// The admin role is a stored claim on the user row, not an email comparison.
func CreateAdminUser(conn *gorm.DB, email, password, siteName string) error {
	if conn == nil {
		return fmt.Errorf("app: nil connection")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("app: admin email is required")
	}
	if len(password) < 8 {
		return fmt.Errorf("app: admin password must be at least 8 characters")
	}

	hashedPassword, errHash := security.HashPassword(password)
	if errHash != nil {
		return fmt.Errorf("app: hash password: %w", errHash)
	}

	now := time.Now().UTC()
	admin := models.User{
		UUID:      uuid.NewString(),
		Email:     email,
		Name:      "Admin",
		Password:  hashedPassword,
		PlanTier:  string(catalog.TierEnterprise),
		IsAdmin:   true,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if errCreate := conn.Create(&admin).Error; errCreate != nil {
		return fmt.Errorf("app: create admin: %w", errCreate)
	}

	return upsertSiteNameSetting(conn, siteName)
}

// EnsureAdminUser bootstraps the configured admin account when no admin
// exists yet. Missing configuration is not an error; the deployment may
// create its admin some other way.
func EnsureAdminUser(conn *gorm.DB, email, password string) error {
	initialized, errInit := HasAdminInitialized(conn)
	if errInit != nil {
		return errInit
	}
	if initialized {
		return nil
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return nil
	}
	return CreateAdminUser(conn, email, password, "")
}

// upsertSiteNameSetting stores the SITE_NAME setting in the database.
func upsertSiteNameSetting(conn *gorm.DB, siteName string) error {
	normalized := strings.TrimSpace(siteName)
	if normalized == "" {
		normalized = internalsettings.DefaultSiteName
	}
	payload, errMarshal := json.Marshal(normalized)
	if errMarshal != nil {
		return fmt.Errorf("app: marshal SITE_NAME setting: %w", errMarshal)
	}

	now := time.Now().UTC()
	res := conn.Model(&models.Setting{}).Where("key = ?", internalsettings.SiteNameKey).
		Updates(map[string]any{
			"value":      payload,
			"updated_at": now,
		})
	if res.Error != nil {
		return fmt.Errorf("app: update SITE_NAME setting: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	setting := models.Setting{
		Key:       internalsettings.SiteNameKey,
		Value:     payload,
		UpdatedAt: now,
	}
	if errCreate := conn.Create(&setting).Error; errCreate != nil {
		return fmt.Errorf("app: create SITE_NAME setting: %w", errCreate)
	}
	return nil
}
