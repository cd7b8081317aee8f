// Package web serves the embedded browser map view.
package web

import (
	"embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed static
var staticFS embed.FS

// Register mounts the map page on the echo server.
func Register(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		page, err := staticFS.ReadFile("static/index.html")
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "map page unavailable")
		}

		return c.HTMLBlob(http.StatusOK, page)
	})
}
