package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/time/rate"

	"gonotes/internal/notes/adapters/http/response"
	"gonotes/pkg/apperr"
)

// RateLimiter хранит по ограничителю на ключ (IP клиента).
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastUsed time.Time
}

// DefaultIdleTTL - время простоя ключа, если передан неположительный idleTTL.
const DefaultIdleTTL = 10 * time.Minute

// NewRateLimiter создает ограничитель: rps запросов в секунду с запасом burst.
// Ограничители, не использовавшиеся дольше idleTTL, удаляются при Cleanup.
// Неположительный idleTTL заменяется на DefaultIdleTTL.
func NewRateLimiter(rps float64, burst int, idleTTL time.Duration) *RateLimiter {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(rps),
		burst:    burst,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// WithClock подменяет источник времени.
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	rl.now = now
	return rl
}

// Allow сообщает, можно ли пропустить запрос с ключом key.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, ok := rl.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastUsed = now
	return entry.limiter.AllowN(now, 1)
}

// RetryAfter возвращает рекомендуемую паузу перед повтором.
func (rl *RateLimiter) RetryAfter() time.Duration {
	if rl.limit <= 0 {
		return time.Second
	}
	d := time.Duration(float64(time.Second) / float64(rl.limit))
	if d < time.Second {
		return time.Second
	}
	return d
}

// Cleanup удаляет простаивающие ограничители.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.idleTTL)
	for key, entry := range rl.limiters {
		if entry.lastUsed.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

// IdleTTL возвращает время простоя, после которого ключ удаляется.
func (rl *RateLimiter) IdleTTL() time.Duration {
	return rl.idleTTL
}

// Len возвращает число отслеживаемых ключей.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Run периодически вызывает Cleanup до отмены ctx.
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(rl.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.Cleanup()
		case <-ctx.Done():
			return
		}
	}
}

// NewRateLimitMiddleware отвечает 429, когда клиент превысил лимит.
func NewRateLimitMiddleware(limiter *RateLimiter) fiber.Handler {
	return func(c fiber.Ctx) error {
		if limiter.Allow(c.IP()) {
			return c.Next()
		}

		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(limiter.RetryAfter()/time.Second)))
		return response.Error(RequestContext(c), c, apperr.ErrRateLimited)
	}
}
