package router

import (
	"github.com/labstack/echo/v4"

	"rugstore/internal/adapter/api/handler"
	"rugstore/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, sessionHandler *handler.SessionHandler, authMiddleware *middleware.AuthMiddleware) {
	session := e.Group("/api/auth/session")
	session.POST("", sessionHandler.CreateSession)
	session.DELETE("", sessionHandler.DeleteSession)
	session.GET("", sessionHandler.CurrentSession, authMiddleware.Authenticate)
}
