package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"interviewsched/models"
	"interviewsched/services/clock"
)

var t0 = time.Date(2026, time.October, 12, 8, 0, 0, 0, time.UTC)

func TestMemoryLimiterPattern(t *testing.T) {
	clk := clock.NewManual(t0)
	l := NewMemoryLimiter(5, time.Minute, clk)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := l.Apply(ctx, "c-1"); err != nil {
			t.Fatalf("call %d: unexpected error %v", i, err)
		}
	}
	err := l.Apply(ctx, "c-1")
	if !models.HasCode(err, models.CodeRateLimited) {
		t.Fatalf("call 6: expected rate_limited, got %v", err)
	}
	e, _ := models.AsError(err)
	if got, ok := e.Details["resetAt"].(time.Time); !ok || !got.Equal(t0.Add(time.Minute)) {
		t.Fatalf("expected resetAt detail %s, got %v", t0.Add(time.Minute), e.Details["resetAt"])
	}

	// Other actors have their own window.
	if err := l.Apply(ctx, "c-2"); err != nil {
		t.Fatalf("c-2 should not be limited: %v", err)
	}
}

func TestMemoryLimiterKeepsCountingWhileLimited(t *testing.T) {
	clk := clock.NewManual(t0)
	l := NewMemoryLimiter(2, time.Minute, clk)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		_ = l.Apply(ctx, "c-1")
	}
	st, ok := l.State("c-1")
	if !ok || st.Count != 7 {
		t.Fatalf("expected count 7, got %+v", st)
	}
}

func TestMemoryLimiterWindowRollsOverLazily(t *testing.T) {
	clk := clock.NewManual(t0)
	l := NewMemoryLimiter(1, time.Minute, clk)
	ctx := context.Background()

	if err := l.Apply(ctx, "c-1"); err != nil {
		t.Fatalf("first call: %v", err)
	}
	// Exactly at resetAt the window is still open.
	clk.Advance(time.Minute)
	if err := l.Apply(ctx, "c-1"); !models.HasCode(err, models.CodeRateLimited) {
		t.Fatalf("expected rate_limited at resetAt, got %v", err)
	}
	clk.Advance(time.Millisecond)
	if err := l.Apply(ctx, "c-1"); err != nil {
		t.Fatalf("expected fresh window after resetAt, got %v", err)
	}
	st, _ := l.State("c-1")
	if st.Count != 1 || !st.ResetAt.Equal(clk.Now().Add(time.Minute)) {
		t.Fatalf("window not restarted: %+v", st)
	}
}

func TestMemoryLimiterDefaults(t *testing.T) {
	l := NewMemoryLimiter(0, 0, clock.NewManual(t0))
	if l.limit != DefaultLimit || l.window != DefaultWindow {
		t.Fatalf("expected defaults, got %d/%s", l.limit, l.window)
	}
}

func TestMemoryLimiterConcurrentCallers(t *testing.T) {
	l := NewMemoryLimiter(10, time.Minute, clock.NewManual(t0))
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Apply(context.Background(), "c-1") == nil {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if allowed != 10 {
		t.Fatalf("expected exactly 10 allowed calls, got %d", allowed)
	}
}

func TestParseScriptResult(t *testing.T) {
	count, ttl, err := parseScriptResult([]interface{}{int64(3), int64(1500)}, time.Minute)
	if err != nil || count != 3 || ttl != 1500*time.Millisecond {
		t.Fatalf("unexpected parse: %d %s %v", count, ttl, err)
	}
	if _, ttl, _ := parseScriptResult([]interface{}{int64(1), int64(-1)}, time.Minute); ttl != time.Minute {
		t.Fatalf("expected window fallback, got %s", ttl)
	}
	if _, _, err := parseScriptResult("OK", time.Minute); err == nil {
		t.Fatalf("expected error for malformed reply")
	}
}
