package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rugstore/internal/domain/result"
)

// FromResult writes an accessor result: data is 200, a missing resource 404,
// any other error 503 and a loading result 202.
func FromResult[T any](c echo.Context, r result.Result[T]) error {
	if v, ok := r.Value(); ok {
		return Success(c, v)
	}
	if r.IsLoading() {
		return c.JSON(http.StatusAccepted, Response{
			Success:   false,
			Timestamp: now(),
		})
	}
	if r.Code() == "NOT_FOUND" {
		return Fail(c, http.StatusNotFound, "NOT_FOUND", r.Message())
	}
	return Fail(c, http.StatusServiceUnavailable, "UNAVAILABLE", r.Message())
}
