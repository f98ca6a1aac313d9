// Package ratelimit gates coordinator booking actions with a per-actor
// fixed window that resets lazily on the first call after it expires.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"interviewsched/models"
	"interviewsched/services/clock"
)

const (
	DefaultLimit  = 5
	DefaultWindow = time.Minute
)

type Limiter interface {
	// Apply counts one action for actorID and fails with rate_limited once
	// the window's limit is exceeded.
	Apply(ctx context.Context, actorID string) error
}

// State is the counter kept per actor.
type State struct {
	Count   int
	ResetAt time.Time
}

// MemoryLimiter keeps one State per actor for the life of the process.
// Entries are never evicted; the coordinator set is small and bounded.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clock   clock.Clock
	entries map[string]*State
}

func NewMemoryLimiter(limit int, window time.Duration, clk clock.Clock) *MemoryLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		clock:   clk,
		entries: make(map[string]*State),
	}
}

// Apply increments the actor's counter even when the call is rejected, so a
// caller that keeps retrying stays limited until the window rolls over.
func (l *MemoryLimiter) Apply(_ context.Context, actorID string) error {
	now := l.clock.Now()

	l.mu.Lock()
	entry, ok := l.entries[actorID]
	if !ok {
		entry = &State{ResetAt: now.Add(l.window)}
		l.entries[actorID] = entry
	}
	if now.After(entry.ResetAt) {
		entry.Count = 0
		entry.ResetAt = now.Add(l.window)
	}
	entry.Count++
	count, resetAt := entry.Count, entry.ResetAt
	l.mu.Unlock()

	if count > l.limit {
		return rateLimited(l.limit, resetAt)
	}
	return nil
}

// State returns a copy of the actor's counter.
func (l *MemoryLimiter) State(actorID string) (State, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[actorID]
	if !ok {
		return State{}, false
	}
	return *entry, true
}

func rateLimited(limit int, resetAt time.Time) error {
	return models.NewError(models.CodeRateLimited, "Too many booking actions, please slow down").
		WithDetails(map[string]any{
			"limit":   limit,
			"resetAt": resetAt.UTC(),
		})
}
