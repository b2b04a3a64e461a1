package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"targ/internal/infrastructure/ratelimit"
	"targ/pkg/errors"
	"targ/pkg/logger"
	"targ/pkg/response"
)

// RateLimit throttles every request per client IP using the request policy.
func RateLimit(limiter *ratelimit.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, wait := limiter.Allow(ip, ratelimit.ActionRequest)
			if !allowed {
				logger.Warn("RATE LIMIT: blocked request from %s (retry in %v)", ip, wait)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Too many requests, please slow down"))
			}

			return next(c)
		}
	}
}
