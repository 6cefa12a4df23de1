package middleware

import (
	"github.com/labstack/echo/v4"

	"rugstore/pkg/errors"
	"rugstore/pkg/response"
)

// AdminOnly rejects signed-in users without the admin claim.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, ok := GetPrincipal(c)
		if !ok {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}
		if !principal.Admin {
			return response.Error(c, errors.Forbidden("Admin privileges required", nil))
		}
		return next(c)
	}
}
