package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/kirimin/internal/pkg/constants"
	"github.com/piresc/kirimin/internal/pkg/logger"
	"github.com/piresc/kirimin/internal/utils"
)

// RateLimiterConfig contains configuration for the rate limiter
type RateLimiterConfig struct {
	RedisClient *redis.Client
	Key         string        // Key prefix for Redis
	Limit       int           // Maximum number of requests
	Period      time.Duration // Time period for the limit
}

// RateLimiterMiddleware creates a fixed-window rate limiter keyed by caller and route
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identifier := c.RealIP()
			if userID := UserID(c); userID != "" {
				identifier = userID
			}

			key := fmt.Sprintf(constants.KeyRateLimit, config.Key, c.Path(), identifier)
			ctx := c.Request().Context()

			count, err := config.RedisClient.Incr(ctx, key).Result()
			if err != nil {
				logger.Warn("Rate limiter unavailable", logger.String("key", key), logger.Err(err))
				return utils.ErrorResponseHandler(c, http.StatusInternalServerError, "Rate limiter error")
			}
			if count == 1 {
				config.RedisClient.Expire(ctx, key, config.Period)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))

			if count > int64(config.Limit) {
				ttl, err := config.RedisClient.TTL(ctx, key).Result()
				if err != nil || ttl < 0 {
					ttl = config.Period
				}
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				c.Response().Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))
				c.Response().Header().Set("Retry-After", strconv.FormatInt(int64(ttl.Seconds()), 10))
				return utils.ErrorResponseHandler(c, http.StatusTooManyRequests, "Rate limit exceeded")
			}

			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(config.Limit)-count, 10))
			return next(c)
		}
	}
}

// UserRateLimiter creates a user-based rate limiter
func UserRateLimiter(limit int, period time.Duration, redisClient *redis.Client) echo.MiddlewareFunc {
	return RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: redisClient,
		Key:         "user",
		Limit:       limit,
		Period:      period,
	})
}
