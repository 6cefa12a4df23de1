package router

import (
	"github.com/labstack/echo/v4"

	"rugstore/internal/adapter/api/handler"
	"rugstore/internal/adapter/api/middleware"
	"rugstore/internal/domain/entity"
	"rugstore/internal/infrastructure/ratelimit"
)

func SetupFormRouter(e *echo.Echo, leadHandler *handler.LeadHandler, fileHandler *handler.FileHandler, m Middlewares) {
	leads := e.Group("/api/leads")
	leads.Use(middleware.RateLimit(m.RateLimiter, ratelimit.ActionSubmitLead, m.Log))
	leads.POST("/contact", leadHandler.Submit(entity.LeadTypeContact))
	leads.POST("/customize", leadHandler.Submit(entity.LeadTypeCustomize))
	leads.POST("/enquiry", leadHandler.Submit(entity.LeadTypeProductEnquiry))
	leads.POST("/trade", leadHandler.Submit(entity.LeadTypeTrade))

	uploads := e.Group("/api/uploads")
	uploads.Use(middleware.RateLimit(m.RateLimiter, ratelimit.ActionUpload, m.Log))
	uploads.POST("/moodboard", fileHandler.UploadMoodboard)
}
