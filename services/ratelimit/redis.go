package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"interviewsched/services/clock"
)

// applyScript increments the actor's counter, starts the window on the first
// hit and reports the remaining window in milliseconds.
var applyScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {count, redis.call("PTTL", KEYS[1])}
`)

// RedisLimiter shares counters through Redis. The key expiry plays the role
// of the lazy window reset.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	clock  clock.Clock
	prefix string
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, clk clock.Clock) *RedisLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		clock:  clk,
		prefix: "ratelimit:coordinator:",
	}
}

func (l *RedisLimiter) Apply(ctx context.Context, actorID string) error {
	res, err := applyScript.Run(ctx, l.client, []string{l.prefix + actorID}, l.window.Milliseconds()).Result()
	if err != nil {
		return fmt.Errorf("ratelimit: apply for %s: %w", actorID, err)
	}
	count, ttl, err := parseScriptResult(res, l.window)
	if err != nil {
		return fmt.Errorf("ratelimit: apply for %s: %w", actorID, err)
	}
	if count > int64(l.limit) {
		return rateLimited(l.limit, l.clock.Now().Add(ttl))
	}
	return nil
}

// parseScriptResult decodes the {count, pttl} reply. A missing TTL (-1/-2)
// falls back to a full window.
func parseScriptResult(res interface{}, window time.Duration) (int64, time.Duration, error) {
	vals, ok := res.([]interface{})
	if !ok || len(vals) != 2 {
		return 0, 0, fmt.Errorf("unexpected script reply %v", res)
	}
	count, ok := vals[0].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected count %v", vals[0])
	}
	pttl, ok := vals[1].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected ttl %v", vals[1])
	}
	ttl := time.Duration(pttl) * time.Millisecond
	if pttl < 0 {
		ttl = window
	}
	return count, ttl, nil
}
