package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiterEnforcesWindow(t *testing.T) {
	limiter := NewMemoryLimiter()
	now := time.Unix(1700000000, 0)

	for i := 0; i < 2; i++ {
		res, errAllow := limiter.Allow(context.Background(), "user-a", 2, time.Minute, now)
		if errAllow != nil {
			t.Fatalf("allow %d: %v", i, errAllow)
		}
		if !res.Allowed {
			t.Fatalf("request %d should be allowed", i)
		}
	}

	res, errAllow := limiter.Allow(context.Background(), "user-a", 2, time.Minute, now)
	if errAllow != nil {
		t.Fatalf("allow over limit: %v", errAllow)
	}
	if res.Allowed {
		t.Fatal("third request in same window should be denied")
	}
	if res.Remaining != 0 {
		t.Fatalf("remaining = %d, want 0", res.Remaining)
	}
}

func TestMemoryLimiterWindowSpansSeconds(t *testing.T) {
	limiter := NewMemoryLimiter()
	start := time.Unix(1700000040, 0) // window [1700000040, 1700000100)

	if res, _ := limiter.Allow(context.Background(), "user-w", 1, time.Minute, start); !res.Allowed {
		t.Fatal("first request should be allowed")
	}
	// Still inside the same minute window many seconds later.
	if res, _ := limiter.Allow(context.Background(), "user-w", 1, time.Minute, start.Add(45*time.Second)); res.Allowed {
		t.Fatal("request 45s later in the same window should be denied")
	}
	if res, _ := limiter.Allow(context.Background(), "user-w", 1, time.Minute, start.Add(61*time.Second)); !res.Allowed {
		t.Fatal("request in the next window should be allowed")
	}
}

func TestMemoryLimiterResetMarksWindowEnd(t *testing.T) {
	limiter := NewMemoryLimiter()
	now := time.Unix(1700000040, 0) // aligned window [1700000040, 1700000100)

	res, errAllow := limiter.Allow(context.Background(), "user-r", 1, time.Minute, now.Add(10*time.Second))
	if errAllow != nil {
		t.Fatalf("allow: %v", errAllow)
	}
	want := time.Unix(1700000100, 0).UTC()
	if !res.Reset.Equal(want) {
		t.Fatalf("reset = %v, want %v", res.Reset, want)
	}
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewMemoryLimiter()
	now := time.Unix(1700000000, 0)

	if res, _ := limiter.Allow(context.Background(), "user-c", 1, time.Minute, now); !res.Allowed {
		t.Fatal("user-c should be allowed")
	}
	if res, _ := limiter.Allow(context.Background(), "user-d", 1, time.Minute, now); !res.Allowed {
		t.Fatal("user-d should not share user-c's counter")
	}
}

func TestMemoryLimiterZeroLimitAllowsAll(t *testing.T) {
	limiter := NewMemoryLimiter()
	now := time.Unix(1700000000, 0)

	for i := 0; i < 10; i++ {
		res, _ := limiter.Allow(context.Background(), "user-e", 0, time.Minute, now)
		if !res.Allowed {
			t.Fatalf("request %d should bypass a zero limit", i)
		}
	}
}

func TestMemoryLimiterNormalizesBadWindow(t *testing.T) {
	limiter := NewMemoryLimiter()
	now := time.Unix(1700000000, 0)

	// A zero window falls back to one minute instead of dividing by zero.
	if res, _ := limiter.Allow(context.Background(), "user-z", 1, 0, now); !res.Allowed {
		t.Fatal("first request should be allowed")
	}
	if res, _ := limiter.Allow(context.Background(), "user-z", 1, 0, now.Add(30*time.Second)); res.Allowed {
		t.Fatal("second request inside the fallback window should be denied")
	}
}
