package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"rugstore/internal/accessor"
	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/repository"
	"rugstore/internal/domain/result"
	"rugstore/internal/infrastructure/cache"
	"rugstore/pkg/response"
)

const maxListLimit = 100

type CatalogHandler struct {
	catalog *accessor.Catalog
}

func NewCatalogHandler(catalog *accessor.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type CollectionDetail struct {
	Collection entity.Collection `json:"collection"`
	Products   []entity.Product  `json:"products"`
}

func (h *CatalogHandler) ListCollections(c echo.Context) error {
	filter := repository.CollectionFilter{ActiveOnly: true}
	if t := c.QueryParam("type"); t != "" {
		collectionType, ok := entity.ParseCollectionType(t)
		if !ok {
			// an unknown type matches nothing
			return respond(c, result.Data([]entity.Collection{}), cache.TagCollections)
		}
		filter.Type = collectionType
	}
	return respond(c, h.catalog.Collections(c.Request().Context(), filter), cache.TagCollections)
}

func (h *CatalogHandler) GetCollection(c echo.Context) error {
	ctx := c.Request().Context()
	collection := h.catalog.CollectionBySlug(ctx, c.Param("slug"))
	col, ok := collection.Value()
	if !ok {
		return respond(c, collection)
	}

	detail := result.Map(h.catalog.ProductsInCollection(ctx, col), func(products []entity.Product) CollectionDetail {
		return CollectionDetail{Collection: col, Products: products}
	})
	return respond(c, detail, cache.TagCollections, cache.TagProducts)
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	filter := repository.ProductFilter{
		WeaveType:  c.QueryParam("weaveType"),
		Collection: c.QueryParam("collection"),
		ActiveOnly: true,
	}
	if featured, err := strconv.ParseBool(c.QueryParam("featured")); err == nil {
		filter.Featured = &featured
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil && limit > 0 {
		filter.Limit = min(limit, maxListLimit)
	}

	tags := []cache.Tag{cache.TagProducts}
	if filter.Featured != nil {
		tags = append(tags, cache.TagFeaturedProducts)
	}
	return respond(c, h.catalog.Products(c.Request().Context(), filter), tags...)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	return respond(c, h.catalog.ProductBySlug(c.Request().Context(), c.Param("slug")), cache.TagProducts)
}

func (h *CatalogHandler) ListWeaveTypes(c echo.Context) error {
	return respond(c, h.catalog.WeaveTypes(c.Request().Context(), true), cache.TagWeaveTypes)
}

func (h *CatalogHandler) GetWeaveType(c echo.Context) error {
	return respond(c, h.catalog.WeaveTypeBySlug(c.Request().Context(), c.Param("slug")), cache.TagWeaveTypes)
}

// Homepage always answers 200; each section carries its own result.
func (h *CatalogHandler) Homepage(c echo.Context) error {
	page := h.catalog.Homepage(c.Request().Context())
	if page.Content.IsData() && page.FeaturedProducts.IsData() && page.FeaturedCollections.IsData() {
		seconds := strconv.Itoa(int(cache.TTL(cache.TagHomepage).Seconds()))
		c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=0, s-maxage="+seconds+", stale-while-revalidate="+seconds)
	} else {
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	}
	return response.Success(c, page)
}

func (h *CatalogHandler) Settings(c echo.Context) error {
	return respond(c, h.catalog.Settings(c.Request().Context()), cache.TagSettings)
}
