package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/vigilante/internal/pkg/constants"
	"github.com/piresc/vigilante/internal/pkg/database"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/utils"
)

// RateLimiterConfig contains configuration for the rate limiter
type RateLimiterConfig struct {
	RedisClient *database.RedisClient
	Scope       string        // Distinguishes limited operations sharing a user
	Limit       int           // Maximum number of requests
	Period      time.Duration // Time period for the limit
}

// RateLimiterMiddleware limits requests per user (or per IP when anonymous)
// using a Redis counter that expires with the window.
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identifier := UserID(c)
			if identifier == "" {
				identifier = c.RealIP()
			}

			key := fmt.Sprintf(constants.KeyRateLimit, config.Scope, identifier)
			count, err := config.RedisClient.IncrWithExpiry(c.Request().Context(), key, config.Period)
			if err != nil {
				// Redis outage must not block the driver
				logger.Warn("Rate limiter unavailable",
					logger.String("key", key),
					logger.Err(err))
				return next(c)
			}

			remaining := config.Limit - int(count)
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if int(count) > config.Limit {
				c.Response().Header().Set("Retry-After", strconv.FormatInt(int64(config.Period.Seconds()), 10))
				return utils.TooManyRequestsResponse(c, "Rate limit exceeded")
			}

			return next(c)
		}
	}
}

// UserRateLimiter creates a user-based rate limiter for one operation
func UserRateLimiter(scope string, limit int, period time.Duration, redisClient *database.RedisClient) echo.MiddlewareFunc {
	return RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: redisClient,
		Scope:       scope,
		Limit:       limit,
		Period:      period,
	})
}
