package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"rugstore/internal/infrastructure/ratelimit"
	"rugstore/pkg/errors"
	"rugstore/pkg/logger"
	"rugstore/pkg/response"
)

// RateLimit limits action per client IP.
func RateLimit(limiter *ratelimit.RateLimiter, action ratelimit.Action, log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			allowed, wait := limiter.Allow(ip, action)
			if !allowed {
				log.Warn("rate limit exceeded", "ip", ip, "action", action, "retry_after", wait)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Too many submissions, please try again shortly"))
			}
			return next(c)
		}
	}
}
