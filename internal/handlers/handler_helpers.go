package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// bindJSON decodes the request body into v, rejecting malformed input with 400.
func bindJSON(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}
	return nil
}
