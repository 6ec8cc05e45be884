package ratelimit

import (
	"context"
	"time"
)

// Result describes the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Remaining int
	Reset     time.Time
}

// Limiter provides fixed-window rate limit checks. The window length is a
// parameter; generation calls are expensive enough that limits are usually
// expressed per minute rather than per second.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (Result, error)
}

// normalizeWindow guards against zero or negative window lengths.
func normalizeWindow(window time.Duration) time.Duration {
	if window < time.Second {
		return time.Minute
	}
	return window
}

// windowBounds returns the index of the fixed window containing now and the
// instant the window rolls over.
func windowBounds(window time.Duration, now time.Time) (int64, time.Time) {
	seconds := int64(window / time.Second)
	idx := now.Unix() / seconds
	reset := time.Unix((idx+1)*seconds, 0).UTC()
	return idx, reset
}
