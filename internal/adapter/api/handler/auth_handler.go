package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"rugstore/internal/adapter/api/middleware"
	"rugstore/internal/usecase"
	"rugstore/pkg/errors"
	"rugstore/pkg/response"
)

type SessionHandler struct {
	sessions   *usecase.SessionUseCase
	cookieName string
	secure     bool
}

func NewSessionHandler(sessions *usecase.SessionUseCase, cookieName string, secure bool) *SessionHandler {
	return &SessionHandler{
		sessions:   sessions,
		cookieName: cookieName,
		secure:     secure,
	}
}

type sessionRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

func (h *SessionHandler) CreateSession(c echo.Context) error {
	var req sessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	session, err := h.sessions.Login(c.Request().Context(), req.IDToken)
	if err != nil {
		return response.Error(c, err)
	}

	c.SetCookie(h.cookie(session.Cookie, session.ExpiresIn))
	return response.Success(c, session.Principal)
}

func (h *SessionHandler) DeleteSession(c echo.Context) error {
	value := ""
	if cookie, err := c.Cookie(h.cookieName); err == nil {
		value = cookie.Value
	}
	if err := h.sessions.Logout(c.Request().Context(), value); err != nil {
		return response.Error(c, err)
	}

	c.SetCookie(h.cookie("", -1))
	return response.Success(c, map[string]string{"message": "Signed out"})
}

func (h *SessionHandler) CurrentSession(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}
	return response.Success(c, principal)
}

// cookie builds the session cookie; a negative maxAge clears it.
func (h *SessionHandler) cookie(value string, maxAge time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	} else {
		cookie.MaxAge = int(maxAge.Seconds())
	}
	return cookie
}
