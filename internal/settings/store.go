package settings

import (
	"encoding/json"
	"sync"

	"github.com/sheetsmith/sheetsmith/internal/models"
	"gorm.io/gorm"
)

var (
	dbMu   sync.RWMutex
	dbConn *gorm.DB
)

// RegisterDB installs the database connection used for settings lookups.
func RegisterDB(conn *gorm.DB) {
	dbMu.Lock()
	dbConn = conn
	dbMu.Unlock()
}

// DBConfigValue reads a setting value from the database. The second return
// is false when no connection is registered or the key is absent.
func DBConfigValue(key string) (json.RawMessage, bool) {
	dbMu.RLock()
	conn := dbConn
	dbMu.RUnlock()
	if conn == nil {
		return nil, false
	}

	var setting models.Setting
	if errFind := conn.Where("key = ?", key).First(&setting).Error; errFind != nil {
		return nil, false
	}
	if len(setting.Value) == 0 {
		return nil, false
	}
	return json.RawMessage(setting.Value), true
}

// StringValue reads a string setting, returning fallback when missing or
// not a JSON string.
func StringValue(key, fallback string) string {
	raw, ok := DBConfigValue(key)
	if !ok {
		return fallback
	}
	var parsed string
	if errUnmarshal := json.Unmarshal(raw, &parsed); errUnmarshal != nil {
		return fallback
	}
	if parsed == "" {
		return fallback
	}
	return parsed
}
