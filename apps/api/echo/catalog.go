package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/adspirelabs/punotes/core/blog"
	"github.com/adspirelabs/punotes/core/literature"
	"github.com/adspirelabs/punotes/core/material"
	"github.com/adspirelabs/punotes/core/resource"
)

type catalogApi struct {
	materialSvc   *material.Service
	resourceSvc   *resource.Service
	literatureSvc *literature.Service
	blogSvc       *blog.Service
}

func registerCatalogAPI(g *echo.Group, opts *Options) {
	api := catalogApi{
		materialSvc:   opts.MaterialSvc,
		resourceSvc:   opts.ResourceSvc,
		literatureSvc: opts.LiteratureSvc,
		blogSvc:       opts.BlogSvc,
	}

	g.GET("/materials", api.queryMaterials)
	g.GET("/materials/:id", api.retrieveMaterial)
	g.GET("/resources", api.queryResources)
	g.GET("/literature", api.queryBooks)
	g.GET("/blog", api.queryPosts)
	g.GET("/blog/:slug", api.retrievePost)
}

type MaterialsResponse struct {
	material.Result
	Streams   []material.Option `json:"streams"`
	Semesters []material.Option `json:"semesters"`
	Types     []string          `json:"types"`
}

func (api *catalogApi) queryMaterials(ctx echo.Context) error {
	var filter material.Filter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to material.Filter")
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	res, err := api.materialSvc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying materials")
	}
	if len(ordering.Orderings) > 0 {
		material.Sort(res.Materials, ordering.Orderings)
	}
	return ctx.JSON(http.StatusOK, MaterialsResponse{
		Result:    res,
		Streams:   material.Streams,
		Semesters: material.Semesters,
		Types:     material.Types,
	})
}

func (api *catalogApi) retrieveMaterial(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	m, err := api.materialSvc.Get(ctx.Request().Context(), id)
	if err != nil {
		return notFoundOr(err, "getting material")
	}
	return ctx.JSON(http.StatusOK, m)
}

func (api *catalogApi) queryResources(ctx echo.Context) error {
	var filter resource.Filter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to resource.Filter")
	}
	res, err := api.resourceSvc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying resources")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *catalogApi) queryBooks(ctx echo.Context) error {
	var filter literature.Filter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to literature.Filter")
	}
	res, err := api.literatureSvc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying literature")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *catalogApi) queryPosts(ctx echo.Context) error {
	var filter blog.Filter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to blog.Filter")
	}
	res, err := api.blogSvc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying posts")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *catalogApi) retrievePost(ctx echo.Context) error {
	post, err := api.blogSvc.GetBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if err != nil {
		return notFoundOr(err, "getting post")
	}
	return ctx.JSON(http.StatusOK, post)
}
