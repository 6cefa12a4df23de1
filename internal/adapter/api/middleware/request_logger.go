package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"rugstore/pkg/logger"
)

const (
	HeaderRequestID = "X-Request-ID"
	CtxKeyRequestID = "request_id"
)

// RequestID reuses an incoming X-Request-ID or assigns a new one.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(HeaderRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set(CtxKeyRequestID, rid)
			c.Response().Header().Set(HeaderRequestID, rid)
			return next(c)
		}
	}
}

func GetRequestID(c echo.Context) string {
	if rid, ok := c.Get(CtxKeyRequestID).(string); ok {
		return rid
	}
	return ""
}

// RequestLogger writes one structured line per request.
func RequestLogger(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			keyvals := []any{
				"request_id", GetRequestID(c),
				"method", req.Method,
				"path", req.URL.Path,
				"status", status,
				"latency", time.Since(start),
				"bytes", c.Response().Size,
				"client_ip", c.RealIP(),
			}

			switch {
			case status >= 500:
				log.Error("http_request", keyvals...)
			case status >= 400:
				log.Warn("http_request", keyvals...)
			default:
				log.Info("http_request", keyvals...)
			}
			return nil
		}
	}
}
