package router

import (
	"github.com/labstack/echo/v4"

	"rugstore/internal/adapter/api/handler"
	"rugstore/internal/adapter/api/middleware"
	"rugstore/internal/infrastructure/ratelimit"
	"rugstore/pkg/logger"
)

// Handlers is everything the routes dispatch to.
type Handlers struct {
	Catalog   *handler.CatalogHandler
	Leads     *handler.LeadHandler
	Files     *handler.FileHandler
	Sessions  *handler.SessionHandler
	Admin     *handler.AdminHandler
	Health    *handler.HealthHandler
	WebSocket *handler.WebSocketHandler
}

type Middlewares struct {
	Auth        *middleware.AuthMiddleware
	RateLimiter *ratelimit.RateLimiter
	Log         logger.Logger
}

func Setup(e *echo.Echo, h Handlers, m Middlewares) {
	SetupHealthRouter(e, h.Health)
	SetupCatalogRouter(e, h.Catalog)
	SetupFormRouter(e, h.Leads, h.Files, m)
	SetupAuthRouter(e, h.Sessions, m.Auth)
	SetupAdminRouter(e, h, m.Auth)
}
