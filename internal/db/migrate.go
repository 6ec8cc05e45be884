package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sheetsmith/sheetsmith/internal/catalog"
	"github.com/sheetsmith/sheetsmith/internal/models"
	internalsettings "github.com/sheetsmith/sheetsmith/internal/settings"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Migrate runs database migrations and seeds default rows.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}

	if errAutoMigrate := conn.AutoMigrate(
		&models.User{},
		&models.Plan{},
		&models.SpecRequest{},
		&models.SheetSpec{},
		&models.Event{},
		&models.CheckoutSession{},
		&models.Setting{},
	); errAutoMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errAutoMigrate)
	}

	if errSeed := ensureDefaultPlans(conn); errSeed != nil {
		return errSeed
	}
	if errSeed := ensureIntSetting(conn, internalsettings.GenerateRateLimitKey, internalsettings.DefaultGenerateRateLimit); errSeed != nil {
		return errSeed
	}
	if errSeed := ensureIntSetting(conn, internalsettings.GenerateRateLimitWindowKey, internalsettings.DefaultGenerateRateLimitWindowSeconds); errSeed != nil {
		return errSeed
	}
	if errSeed := ensureStringSetting(conn, internalsettings.SiteNameKey, internalsettings.DefaultSiteName); errSeed != nil {
		return errSeed
	}

	// ddl defines an index or DDL statement to apply.
	type ddl struct {
		name string // Human-readable name for error reporting.
		sql  string // SQL to execute.
	}
	ddls := []ddl{
		{
			name: "idx_plans_is_enabled_sort_order_created_at",
			sql: `
				CREATE INDEX IF NOT EXISTS idx_plans_is_enabled_sort_order_created_at
				ON plans (is_enabled, sort_order ASC, created_at DESC)
			`,
		},
		{
			name: "idx_sheet_specs_category_created_at",
			sql: `
				CREATE INDEX IF NOT EXISTS idx_sheet_specs_category_created_at
				ON sheet_specs (category, created_at DESC)
			`,
		},
		{
			name: "idx_sheet_specs_user_id_created_at",
			sql: `
				CREATE INDEX IF NOT EXISTS idx_sheet_specs_user_id_created_at
				ON sheet_specs (user_id, created_at DESC)
			`,
		},
		{
			name: "idx_spec_requests_user_id_created_at",
			sql: `
				CREATE INDEX IF NOT EXISTS idx_spec_requests_user_id_created_at
				ON spec_requests (user_id, created_at DESC)
			`,
		},
		{
			name: "idx_events_event_type_created_at",
			sql: `
				CREATE INDEX IF NOT EXISTS idx_events_event_type_created_at
				ON events (event_type, created_at DESC)
			`,
		},
		{
			name: "idx_checkout_sessions_user_id_created_at",
			sql: `
				CREATE INDEX IF NOT EXISTS idx_checkout_sessions_user_id_created_at
				ON checkout_sessions (user_id, created_at DESC)
			`,
		},
	}
	for _, item := range ddls {
		if errDDL := conn.Exec(item.sql).Error; errDDL != nil {
			return fmt.Errorf("db: create index %s: %w", item.name, errDDL)
		}
	}

	return nil
}

// defaultPlanSeeds describe the builtin plan rows, one per tier.
var defaultPlanSeeds = []models.Plan{
	{
		Tier:        string(catalog.TierFree),
		Name:        "Free",
		MonthPrice:  0,
		Description: "Get started with basic templates.",
	},
	{
		Tier:        string(catalog.TierStarter),
		Name:        "Starter",
		MonthPrice:  9,
		Description: "Unlock starter templates and customization.",
	},
	{
		Tier:        string(catalog.TierPro),
		Name:        "Pro",
		MonthPrice:  29,
		Description: "Advanced templates, formulas, and dashboards.",
	},
	{
		Tier:        string(catalog.TierEnterprise),
		Name:        "Enterprise",
		MonthPrice:  99,
		Description: "Everything, plus priority support.",
	},
}

// ensureDefaultPlans seeds one plan row per tier when missing. Ranks are
// re-derived from the tier ordering so the DB can never disagree with the
// visibility filter.
func ensureDefaultPlans(conn *gorm.DB) error {
	for i, seed := range defaultPlanSeeds {
		var existing models.Plan
		errFind := conn.Where("tier = ?", seed.Tier).First(&existing).Error
		if errFind == nil {
			if existing.Rank != i {
				if errUpdate := conn.Model(&existing).Update("rank", i).Error; errUpdate != nil {
					return fmt.Errorf("db: update plan rank %s: %w", seed.Tier, errUpdate)
				}
			}
			continue
		}
		if !errors.Is(errFind, gorm.ErrRecordNotFound) {
			return fmt.Errorf("db: query plan %s: %w", seed.Tier, errFind)
		}

		now := time.Now().UTC()
		plan := seed
		plan.Rank = i
		plan.SortOrder = i
		plan.Features = datatypes.JSON("[]")
		plan.IsEnabled = true
		plan.CreatedAt = now
		plan.UpdatedAt = now
		if errCreate := conn.Create(&plan).Error; errCreate != nil {
			return fmt.Errorf("db: create plan %s: %w", seed.Tier, errCreate)
		}
	}
	return nil
}

// ensureIntSetting ensures an integer setting exists and defaults when empty.
func ensureIntSetting(conn *gorm.DB, key string, value int) error {
	payload, errMarshal := json.Marshal(value)
	if errMarshal != nil {
		return fmt.Errorf("db: marshal %s setting: %w", key, errMarshal)
	}
	return ensureSetting(conn, key, datatypes.JSON(payload))
}

// ensureStringSetting ensures a string setting exists and defaults when empty.
func ensureStringSetting(conn *gorm.DB, key string, value string) error {
	payload, errMarshal := json.Marshal(value)
	if errMarshal != nil {
		return fmt.Errorf("db: marshal %s setting: %w", key, errMarshal)
	}
	return ensureSetting(conn, key, datatypes.JSON(payload))
}

// ensureSetting creates a setting row or backfills an empty value.
func ensureSetting(conn *gorm.DB, key string, rawValue datatypes.JSON) error {
	var existing models.Setting
	if errFind := conn.Where("key = ?", key).First(&existing).Error; errFind == nil {
		trimmed := strings.TrimSpace(string(existing.Value))
		if len(existing.Value) == 0 || trimmed == "" || trimmed == "null" {
			if errUpdate := conn.Model(&existing).Updates(map[string]any{
				"value":      rawValue,
				"updated_at": time.Now().UTC(),
			}).Error; errUpdate != nil {
				return fmt.Errorf("db: update %s setting: %w", key, errUpdate)
			}
		}
		return nil
	} else if !errors.Is(errFind, gorm.ErrRecordNotFound) {
		return fmt.Errorf("db: query %s setting: %w", key, errFind)
	}

	setting := models.Setting{
		Key:       key,
		Value:     rawValue,
		UpdatedAt: time.Now().UTC(),
	}
	if errCreate := conn.Create(&setting).Error; errCreate != nil {
		return fmt.Errorf("db: create %s setting: %w", key, errCreate)
	}
	return nil
}
