package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter in Redis, keyed per caller.
type RateLimiter struct {
	Redis  *redis.Client
	Prefix string
	Limit  int
	Window time.Duration
}

func NewRateLimiter(r *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{Redis: r, Prefix: prefix, Limit: limit, Window: window}
}

func (r *RateLimiter) ByKey(keyFunc func(c *fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("%s:%s", r.Prefix, keyFunc(c))
		count, err := r.Redis.Incr(c.Context(), key).Result()
		if err != nil {
			// limiter outage shouldn't take requests down with it
			return c.Next()
		}
		if count == 1 {
			r.Redis.Expire(c.Context(), key, r.Window)
		}
		if count > int64(r.Limit) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded"})
		}
		return c.Next()
	}
}

// ByIP limits per remote address, for unauthenticated endpoints.
func (r *RateLimiter) ByIP() fiber.Handler {
	return r.ByKey(func(c *fiber.Ctx) string { return c.IP() })
}

// ByUser limits per authenticated caller.
func (r *RateLimiter) ByUser() fiber.Handler {
	return r.ByKey(func(c *fiber.Ctx) string {
		if id, ok := c.Locals("user_id").(string); ok {
			return id
		}
		return c.IP()
	})
}
