package handler

import (
	"github.com/labstack/echo/v4"

	"rugstore/internal/accessor"
	"rugstore/internal/domain/repository"
	"rugstore/internal/usecase"
	"rugstore/pkg/response"
)

// AdminHandler serves the catalog and content editing endpoints. Reads go
// through the catalog accessor without the storefront's active-only filter.
type AdminHandler struct {
	catalog     *accessor.Catalog
	products    *usecase.ProductUseCase
	collections *usecase.CollectionUseCase
	weaveTypes  *usecase.WeaveTypeUseCase
	content     *usecase.ContentUseCase
}

func NewAdminHandler(
	catalog *accessor.Catalog,
	products *usecase.ProductUseCase,
	collections *usecase.CollectionUseCase,
	weaveTypes *usecase.WeaveTypeUseCase,
	content *usecase.ContentUseCase,
) *AdminHandler {
	return &AdminHandler{
		catalog:     catalog,
		products:    products,
		collections: collections,
		weaveTypes:  weaveTypes,
		content:     content,
	}
}

func (h *AdminHandler) ListProducts(c echo.Context) error {
	return respond(c, h.catalog.Products(c.Request().Context(), repository.ProductFilter{}))
}

func (h *AdminHandler) GetProduct(c echo.Context) error {
	return respond(c, h.catalog.ProductByID(c.Request().Context(), c.Param("id")))
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req usecase.ProductInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.products.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, product)
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	var req usecase.ProductInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.products.UpdateProduct(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	if err := h.products.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Product deleted"})
}

func (h *AdminHandler) SetProductActive(c echo.Context) error {
	var req activeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.products.SetActive(c.Request().Context(), c.Param("id"), req.Active)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *AdminHandler) SetProductFeatured(c echo.Context) error {
	var req featuredRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.products.SetFeatured(c.Request().Context(), c.Param("id"), req.Featured)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *AdminHandler) ReorderProducts(c echo.Context) error {
	var req idsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	if err := h.products.Reorder(c.Request().Context(), req.IDs); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{"reordered": len(req.IDs)})
}

func (h *AdminHandler) ListCollections(c echo.Context) error {
	return respond(c, h.catalog.Collections(c.Request().Context(), repository.CollectionFilter{}))
}

func (h *AdminHandler) GetCollection(c echo.Context) error {
	return respond(c, h.catalog.CollectionByID(c.Request().Context(), c.Param("id")))
}

func (h *AdminHandler) CreateCollection(c echo.Context) error {
	var req usecase.CollectionInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	collection, err := h.collections.CreateCollection(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, collection)
}

func (h *AdminHandler) UpdateCollection(c echo.Context) error {
	var req usecase.CollectionInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	collection, err := h.collections.UpdateCollection(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, collection)
}

func (h *AdminHandler) DeleteCollection(c echo.Context) error {
	if err := h.collections.DeleteCollection(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Collection deleted"})
}

func (h *AdminHandler) SetCollectionProducts(c echo.Context) error {
	var req idsRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	collection, err := h.collections.SetProducts(c.Request().Context(), c.Param("id"), req.IDs)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, collection)
}

func (h *AdminHandler) SeedCollections(c echo.Context) error {
	var req []usecase.CollectionInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	collections, err := h.collections.Seed(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, collections)
}

func (h *AdminHandler) ListWeaveTypes(c echo.Context) error {
	return respond(c, h.catalog.WeaveTypes(c.Request().Context(), false))
}

func (h *AdminHandler) GetWeaveType(c echo.Context) error {
	return respond(c, h.catalog.WeaveTypeByID(c.Request().Context(), c.Param("id")))
}

func (h *AdminHandler) CreateWeaveType(c echo.Context) error {
	var req usecase.WeaveTypeInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	weaveType, err := h.weaveTypes.CreateWeaveType(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, weaveType)
}

func (h *AdminHandler) UpdateWeaveType(c echo.Context) error {
	var req usecase.WeaveTypeInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	weaveType, err := h.weaveTypes.UpdateWeaveType(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, weaveType)
}

func (h *AdminHandler) DeleteWeaveType(c echo.Context) error {
	if err := h.weaveTypes.DeleteWeaveType(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Weave type deleted"})
}

func (h *AdminHandler) GetHomepage(c echo.Context) error {
	return respond(c, h.catalog.HomepageContent(c.Request().Context()))
}

func (h *AdminHandler) UpdateHomepage(c echo.Context) error {
	var req usecase.HomepageInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	content, err := h.content.UpdateHomepage(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, content)
}

func (h *AdminHandler) GetSettings(c echo.Context) error {
	return respond(c, h.catalog.Settings(c.Request().Context()))
}

func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	var req usecase.SettingsInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	settings, err := h.content.UpdateSettings(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, settings)
}
