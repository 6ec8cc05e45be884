package ratelimit

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/sheetsmith/sheetsmith/internal/settings"
)

// SettingsConfig captures the DB-configured rate limit options.
type SettingsConfig struct {
	Limit         int
	WindowSeconds int
	RedisEnabled  bool
	RedisAddr     string
	RedisPass     string
	RedisDB       int
	RedisPrefix   string
}

// Window returns the configured window length as a duration.
func (c SettingsConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// LoadSettingsConfig reads the rate limit configuration from DB settings,
// falling back to defaults for missing or malformed values.
func LoadSettingsConfig() SettingsConfig {
	cfg := SettingsConfig{
		Limit:         settings.DefaultGenerateRateLimit,
		WindowSeconds: settings.DefaultGenerateRateLimitWindowSeconds,
		RedisPrefix:   settings.DefaultRateLimitRedisPrefix,
	}
	if raw, ok := settings.DBConfigValue(settings.GenerateRateLimitKey); ok {
		if limit, okParse := parseNonNegativeInt(raw); okParse {
			cfg.Limit = limit
		}
	}
	if raw, ok := settings.DBConfigValue(settings.GenerateRateLimitWindowKey); ok {
		if seconds, okParse := parseNonNegativeInt(raw); okParse && seconds > 0 {
			cfg.WindowSeconds = seconds
		}
	}
	if raw, ok := settings.DBConfigValue(settings.RateLimitRedisEnabledKey); ok {
		if enabled, okParse := parseBool(raw); okParse {
			cfg.RedisEnabled = enabled
		}
	}
	if raw, ok := settings.DBConfigValue(settings.RateLimitRedisAddrKey); ok {
		if addr, okParse := parseString(raw); okParse {
			cfg.RedisAddr = addr
		}
	}
	if raw, ok := settings.DBConfigValue(settings.RateLimitRedisPasswordKey); ok {
		if pass, okParse := parseString(raw); okParse {
			cfg.RedisPass = pass
		}
	}
	if raw, ok := settings.DBConfigValue(settings.RateLimitRedisDBKey); ok {
		if idx, okParse := parseNonNegativeInt(raw); okParse {
			cfg.RedisDB = idx
		}
	}
	if raw, ok := settings.DBConfigValue(settings.RateLimitRedisPrefixKey); ok {
		if prefix, okParse := parseString(raw); okParse && prefix != "" {
			cfg.RedisPrefix = prefix
		}
	}
	return cfg
}

func parseBool(raw json.RawMessage) (bool, bool) {
	var asBool bool
	if errUnmarshal := json.Unmarshal(raw, &asBool); errUnmarshal == nil {
		return asBool, true
	}
	var asString string
	if errUnmarshal := json.Unmarshal(raw, &asString); errUnmarshal == nil {
		parsed, errParse := strconv.ParseBool(strings.TrimSpace(asString))
		if errParse != nil {
			return false, false
		}
		return parsed, true
	}
	return false, false
}

func parseString(raw json.RawMessage) (string, bool) {
	var asString string
	if errUnmarshal := json.Unmarshal(raw, &asString); errUnmarshal != nil {
		return "", false
	}
	return strings.TrimSpace(asString), true
}

func parseNonNegativeInt(raw json.RawMessage) (int, bool) {
	var asInt int
	if errUnmarshal := json.Unmarshal(raw, &asInt); errUnmarshal == nil {
		if asInt < 0 {
			return 0, false
		}
		return asInt, true
	}
	var asString string
	if errUnmarshal := json.Unmarshal(raw, &asString); errUnmarshal == nil {
		parsed, errParse := strconv.Atoi(strings.TrimSpace(asString))
		if errParse != nil || parsed < 0 {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}
