package router

import (
	"github.com/labstack/echo/v4"

	"rugstore/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	admin := e.Group("/api/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(middleware.AdminOnly)

	products := admin.Group("/products")
	products.GET("", h.Admin.ListProducts)
	products.POST("", h.Admin.CreateProduct)
	products.PUT("/order", h.Admin.ReorderProducts)
	products.GET("/:id", h.Admin.GetProduct)
	products.PUT("/:id", h.Admin.UpdateProduct)
	products.DELETE("/:id", h.Admin.DeleteProduct)
	products.PATCH("/:id/active", h.Admin.SetProductActive)
	products.PATCH("/:id/featured", h.Admin.SetProductFeatured)

	collections := admin.Group("/collections")
	collections.GET("", h.Admin.ListCollections)
	collections.POST("", h.Admin.CreateCollection)
	collections.POST("/seed", h.Admin.SeedCollections)
	collections.GET("/:id", h.Admin.GetCollection)
	collections.PUT("/:id", h.Admin.UpdateCollection)
	collections.DELETE("/:id", h.Admin.DeleteCollection)
	collections.PUT("/:id/products", h.Admin.SetCollectionProducts)

	weaveTypes := admin.Group("/weave-types")
	weaveTypes.GET("", h.Admin.ListWeaveTypes)
	weaveTypes.POST("", h.Admin.CreateWeaveType)
	weaveTypes.GET("/:id", h.Admin.GetWeaveType)
	weaveTypes.PUT("/:id", h.Admin.UpdateWeaveType)
	weaveTypes.DELETE("/:id", h.Admin.DeleteWeaveType)

	leads := admin.Group("/leads")
	leads.GET("", h.Leads.ListLeads)
	leads.GET("/export", h.Leads.ExportLeads)
	leads.GET("/live", h.WebSocket.HandleLeadFeed)
	leads.GET("/:id", h.Leads.GetLead)
	leads.PATCH("/:id/status", h.Leads.UpdateStatus)
	leads.POST("/:id/notes", h.Leads.AddNote)
	leads.PATCH("/:id/assign", h.Leads.Assign)
	leads.DELETE("/:id", h.Leads.DeleteLead)

	admin.GET("/homepage", h.Admin.GetHomepage)
	admin.PUT("/homepage", h.Admin.UpdateHomepage)
	admin.GET("/settings", h.Admin.GetSettings)
	admin.PUT("/settings", h.Admin.UpdateSettings)

	admin.POST("/uploads", h.Files.UploadImage)
	admin.DELETE("/uploads", h.Files.DeleteImage)
}
