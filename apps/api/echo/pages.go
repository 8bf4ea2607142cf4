package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adspirelabs/punotes/core/page"
)

func registerPageAPI(g *echo.Group, pages *page.Store) {
	g.GET("/pages", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, pages.List())
	})
	g.GET("/pages/:slug", func(ctx echo.Context) error {
		p, err := pages.Get(ctx.Param("slug"))
		if err != nil {
			return notFoundOr(err, "getting page")
		}
		return ctx.JSON(http.StatusOK, p)
	})
}
