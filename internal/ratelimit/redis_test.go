package ratelimit

import (
	"testing"
	"time"
)

func TestWindowTTLCoversWindow(t *testing.T) {
	if got := windowTTLSeconds(time.Minute); got != 61 {
		t.Fatalf("ttl for 1m = %d, want 61", got)
	}
	if got := windowTTLSeconds(time.Second); got != 2 {
		t.Fatalf("ttl for 1s = %d, want 2", got)
	}
}

func TestRedisKeyBucketsByWindow(t *testing.T) {
	limiter := NewRedisLimiter(nil, "ssmith:rl")

	window := time.Minute
	early := time.Unix(1700000040, 0)
	late := time.Unix(1700000099, 0)
	next := time.Unix(1700000100, 0)

	earlyIdx, _ := windowBounds(window, early)
	lateIdx, _ := windowBounds(window, late)
	nextIdx, _ := windowBounds(window, next)

	if limiter.buildKey("user-a", earlyIdx) != limiter.buildKey("user-a", lateIdx) {
		t.Fatal("timestamps in the same window should share a key")
	}
	if limiter.buildKey("user-a", earlyIdx) == limiter.buildKey("user-a", nextIdx) {
		t.Fatal("the next window should use a fresh key")
	}
	if got := limiter.buildKey("user-a", earlyIdx); got != "ssmith:rl:user-a:28333334" {
		t.Fatalf("unexpected key: %s", got)
	}
}
