package router

import (
	"github.com/labstack/echo/v4"

	"rugstore/internal/adapter/api/handler"
)

func SetupCatalogRouter(e *echo.Echo, catalogHandler *handler.CatalogHandler) {
	api := e.Group("/api")

	api.GET("/collections", catalogHandler.ListCollections)
	api.GET("/collections/:slug", catalogHandler.GetCollection)
	api.GET("/products", catalogHandler.ListProducts)
	api.GET("/products/:slug", catalogHandler.GetProduct)
	api.GET("/weave-types", catalogHandler.ListWeaveTypes)
	api.GET("/weave-types/:slug", catalogHandler.GetWeaveType)
	api.GET("/homepage", catalogHandler.Homepage)
	api.GET("/settings", catalogHandler.Settings)
}
