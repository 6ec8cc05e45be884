package settings

// DB config keys and defaults for settings.
const (
	// SiteNameKey is the DB config key for the UI site name.
	SiteNameKey = "SITE_NAME"
	// DefaultSiteName is the fallback UI site name.
	DefaultSiteName = "Sheetsmith"
	// DefaultSpreadsheetIDKey holds the fallback spreadsheet for template copies.
	DefaultSpreadsheetIDKey = "DEFAULT_TEMPLATE_SPREADSHEET_ID"
	// GenerateRateLimitKey controls the per-viewer generation rate limit per window.
	GenerateRateLimitKey = "GENERATE_RATE_LIMIT"
	// GenerateRateLimitWindowKey controls the rate limit window length in seconds.
	GenerateRateLimitWindowKey = "GENERATE_RATE_LIMIT_WINDOW_SECONDS"
	// RateLimitRedisEnabledKey toggles Redis-backed rate limiting.
	RateLimitRedisEnabledKey = "RATE_LIMIT_REDIS_ENABLED"
	// RateLimitRedisAddrKey defines the Redis address for rate limiting.
	RateLimitRedisAddrKey = "RATE_LIMIT_REDIS_ADDR"
	// RateLimitRedisPasswordKey defines the Redis password for rate limiting.
	RateLimitRedisPasswordKey = "RATE_LIMIT_REDIS_PASSWORD"
	// RateLimitRedisDBKey defines the Redis DB index for rate limiting.
	RateLimitRedisDBKey = "RATE_LIMIT_REDIS_DB"
	// RateLimitRedisPrefixKey defines the Redis key prefix for rate limiting.
	RateLimitRedisPrefixKey = "RATE_LIMIT_REDIS_PREFIX"
	// DefaultGenerateRateLimit is the fallback generation rate limit per window
	// (0 means unlimited).
	DefaultGenerateRateLimit = 5
	// DefaultGenerateRateLimitWindowSeconds is the fallback window length.
	// Generation calls are slow and costly, so limits are per minute.
	DefaultGenerateRateLimitWindowSeconds = 60
	// DefaultRateLimitRedisPrefix is the fallback Redis key prefix.
	DefaultRateLimitRedisPrefix = "ssmith:rl"
)
