package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Manager selects a Redis or in-memory limiter based on DB settings and
// falls back to memory when Redis misbehaves.
type Manager struct {
	mu        sync.Mutex
	memory    *MemoryLimiter
	redis     *RedisLimiter
	redisAddr string
	redisPass string
	redisDB   int
}

// NewManager constructs a Manager with an in-memory fallback limiter.
func NewManager() *Manager {
	return &Manager{
		memory: NewMemoryLimiter(),
	}
}

// Allow applies the configured per-window limit for key. Redis errors fall
// back to the in-memory limiter so a broken Redis never blocks requests.
func (m *Manager) Allow(ctx context.Context, key string) (Result, error) {
	cfg := LoadSettingsConfig()
	if cfg.Limit <= 0 {
		return Result{Allowed: true}, nil
	}
	now := time.Now()

	limiter := m.pick(cfg)
	if limiter != nil {
		res, errAllow := limiter.Allow(ctx, key, cfg.Limit, cfg.Window(), now)
		if errAllow == nil {
			return res, nil
		}
		log.WithError(errAllow).Warn("rate limit: redis check failed, using memory fallback")
	}
	return m.memory.Allow(ctx, key, cfg.Limit, cfg.Window(), now)
}

// pick returns the Redis limiter when enabled and configured, rebuilding the
// client when connection settings change.
func (m *Manager) pick(cfg SettingsConfig) Limiter {
	if !cfg.RedisEnabled || cfg.RedisAddr == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.redis == nil || m.redisAddr != cfg.RedisAddr || m.redisPass != cfg.RedisPass || m.redisDB != cfg.RedisDB {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		m.redis = NewRedisLimiter(client, cfg.RedisPrefix)
		m.redisAddr = cfg.RedisAddr
		m.redisPass = cfg.RedisPass
		m.redisDB = cfg.RedisDB
	}
	return m.redis
}
