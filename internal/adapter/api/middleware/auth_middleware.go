package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"rugstore/internal/domain/entity"
	"rugstore/internal/usecase"
	"rugstore/pkg/response"
)

const CtxKeyPrincipal = "principal"

type AuthMiddleware struct {
	sessions   *usecase.SessionUseCase
	cookieName string
}

func NewAuthMiddleware(sessions *usecase.SessionUseCase, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// Authenticate verifies the session cookie, or a session value sent as a
// bearer token, and attaches the principal to the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, err := m.sessions.Verify(c.Request().Context(), m.sessionValue(c))
		if err != nil {
			return response.Error(c, err)
		}

		c.Set(CtxKeyPrincipal, principal)
		c.SetRequest(c.Request().WithContext(usecase.WithPrincipal(c.Request().Context(), principal)))
		return next(c)
	}
}

func (m *AuthMiddleware) sessionValue(c echo.Context) string {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	parts := strings.SplitN(c.Request().Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func GetPrincipal(c echo.Context) (*entity.Principal, bool) {
	p, ok := c.Get(CtxKeyPrincipal).(*entity.Principal)
	return p, ok && p != nil
}
