package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"rugstore/internal/domain/result"
	"rugstore/internal/infrastructure/cache"
	"rugstore/pkg/response"
)

// respond writes an accessor result. Successful reads carry a revalidation
// hint derived from the cache tags they depend on.
func respond[T any](c echo.Context, r result.Result[T], tags ...cache.Tag) error {
	header := "no-store"
	if ttl := cache.TTL(tags...); r.IsData() && ttl > 0 {
		seconds := int(ttl.Seconds())
		header = fmt.Sprintf("public, max-age=0, s-maxage=%d, stale-while-revalidate=%d", seconds, seconds)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, header)
	return response.FromResult(c, r)
}

type activeRequest struct {
	Active bool `json:"active"`
}

type featuredRequest struct {
	Featured bool `json:"featured"`
}

type idsRequest struct {
	IDs []string `json:"ids" validate:"required,dive,required"`
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
