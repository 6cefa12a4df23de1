package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"rugstore/internal/infrastructure/cache"
	"rugstore/internal/infrastructure/websocket"
)

type HealthHandler struct {
	cache     cache.Cache
	wsManager *websocket.Manager
	startedAt time.Time
}

func NewHealthHandler(c cache.Cache, wsManager *websocket.Manager) *HealthHandler {
	return &HealthHandler{
		cache:     c,
		wsManager: wsManager,
		startedAt: time.Now(),
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(h.startedAt).Round(time.Second).String(),
		"cache":       h.cache.Stats(),
		"liveClients": h.wsManager.Connected(),
	})
}
