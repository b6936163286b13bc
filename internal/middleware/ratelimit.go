package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/acasdev/acas-backend/internal/config"
)

// loginBucket implements a token bucket shared across instances via Redis.
// State per key is a hash of {tokens, last_refill_ms}; the whole
// take-or-reject step runs inside Redis so concurrent requests cannot
// overdraw the bucket.
var loginBucket = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill_ms = tonumber(ARGV[3])
	local ttl_s = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last = tonumber(state[2])
	if tokens == nil or last == nil then
		tokens = capacity
		last = now_ms
	end

	local refilled = math.floor((now_ms - last) / refill_ms)
	if refilled > 0 then
		tokens = math.min(capacity, tokens + refilled)
		last = last + refilled * refill_ms
	end

	local allowed = 0
	local retry_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_ms = refill_ms - (now_ms - last)
		if retry_ms < 0 then retry_ms = 0 end
	end

	redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last)
	redis.call('EXPIRE', key, ttl_s)
	return { allowed, retry_ms }
`)

// RateLimit returns a middleware that throttles requests per client IP and
// route using the shared token bucket.  When rate limiting is disabled or
// Redis is unavailable the middleware is a no-op; a Redis error at request
// time also lets the request through.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := cfg.Prefix + ":" + c.RealIP() + ":" + c.Path()
			args := []interface{}{
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillInterval.Milliseconds(),
				int64(cfg.TTL / time.Second),
			}
			vals, err := loginBucket.Run(c.Request().Context(), rdb, []string{key}, args...).Int64Slice()
			if err != nil || len(vals) != 2 {
				return next(c)
			}
			if vals[0] != 1 {
				retryAfter := (vals[1] + 999) / 1000
				if retryAfter < 1 {
					retryAfter = 1
				}
				c.Response().Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"success": false,
					"data":    nil,
					"message": nil,
					"error":   echo.Map{"code": "RATE_LIMITED", "message": "too many requests", "details": nil},
				})
			}
			return next(c)
		}
	}
}
