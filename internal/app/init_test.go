package app

import (
	"path/filepath"
	"testing"

	"github.com/sheetsmith/sheetsmith/internal/db"
	"github.com/sheetsmith/sheetsmith/internal/models"
	"github.com/sheetsmith/sheetsmith/internal/security"
	internalsettings "github.com/sheetsmith/sheetsmith/internal/settings"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, errOpen := db.Open(filepath.Join(t.TempDir(), "app_test.db"))
	if errOpen != nil {
		t.Fatalf("open database: %v", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate database: %v", errMigrate)
	}
	return conn
}

func TestCreateAdminUser(t *testing.T) {
	conn := openTestDB(t)

	if errCreate := CreateAdminUser(conn, "Root@Example.COM", "supersecret", "My Sheets"); errCreate != nil {
		t.Fatalf("create admin: %v", errCreate)
	}

	var admin models.User
	if errFind := conn.Where("email = ?", "root@example.com").First(&admin).Error; errFind != nil {
		t.Fatalf("load admin: %v", errFind)
	}
	if !admin.IsAdmin {
		t.Fatal("expected admin flag")
	}
	if !admin.Active || admin.Disabled {
		t.Fatal("expected active admin")
	}
	if admin.UUID == "" {
		t.Fatal("expected public id")
	}
	if !security.CheckPassword(admin.Password, "supersecret") {
		t.Fatal("expected hashed password to verify")
	}

	var setting models.Setting
	if errFind := conn.Where("key = ?", internalsettings.SiteNameKey).First(&setting).Error; errFind != nil {
		t.Fatalf("load site name setting: %v", errFind)
	}
	if string(setting.Value) != `"My Sheets"` {
		t.Fatalf("unexpected site name value: %s", setting.Value)
	}

	initialized, errInit := HasAdminInitialized(conn)
	if errInit != nil {
		t.Fatalf("check initialized: %v", errInit)
	}
	if !initialized {
		t.Fatal("expected initialized after admin creation")
	}
}

func TestCreateAdminUserValidation(t *testing.T) {
	conn := openTestDB(t)

	if errCreate := CreateAdminUser(conn, "  ", "supersecret", ""); errCreate == nil {
		t.Fatal("expected error for blank email")
	}
	if errCreate := CreateAdminUser(conn, "root@example.com", "short", ""); errCreate == nil {
		t.Fatal("expected error for short password")
	}

	initialized, errInit := HasAdminInitialized(conn)
	if errInit != nil {
		t.Fatalf("check initialized: %v", errInit)
	}
	if initialized {
		t.Fatal("expected no admin after failed creations")
	}
}

func TestEnsureAdminUser(t *testing.T) {
	conn := openTestDB(t)

	// Missing configuration is a no-op, not an error.
	if errEnsure := EnsureAdminUser(conn, "", ""); errEnsure != nil {
		t.Fatalf("ensure without config: %v", errEnsure)
	}

	if errEnsure := EnsureAdminUser(conn, "ops@example.com", "supersecret"); errEnsure != nil {
		t.Fatalf("ensure admin: %v", errEnsure)
	}

	// A second call must not create a duplicate.
	if errEnsure := EnsureAdminUser(conn, "other@example.com", "supersecret"); errEnsure != nil {
		t.Fatalf("ensure admin again: %v", errEnsure)
	}

	var count int64
	if errCount := conn.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; errCount != nil {
		t.Fatalf("count admins: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("expected exactly one admin, got %d", count)
	}

	var admin models.User
	if errFind := conn.Where("is_admin = ?", true).First(&admin).Error; errFind != nil {
		t.Fatalf("load admin: %v", errFind)
	}
	if admin.Email != "ops@example.com" {
		t.Fatalf("unexpected admin email: %s", admin.Email)
	}
}
