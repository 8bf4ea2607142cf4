package echoapi

import (
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/adspirelabs/punotes/core"
	"github.com/adspirelabs/punotes/core/dataset"
	"github.com/adspirelabs/punotes/core/material"
	snapshotsvc "github.com/adspirelabs/punotes/services/snapshot"
)

// importBodyLimit bounds import uploads; larger bodies are answered with 413.
const importBodyLimit = "10M"

type adminApi struct {
	conf      *core.Config
	validate  *validator.Validate
	workspace *material.Workspace
	snapshots core.SnapshotStore
	nowFunc   func() time.Time
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, s *Server) {
	api := adminApi{
		conf:      s.opts.Conf,
		validate:  s.opts.Validate,
		workspace: s.opts.Workspace,
		snapshots: s.opts.Snapshots,
		nowFunc:   time.Now,
	}

	ag := g.Group("/admin")

	// un-authed endpoints
	ag.POST("/login", api.login)

	// authed endpoints
	mg := ag.Group("/materials", jwt, adminMiddleware())
	mg.GET("", api.query)
	mg.POST("", api.create)
	mg.GET("/export", api.export)
	mg.POST("/import", api.importDataset, middleware.BodyLimit(importBodyLimit))
	mg.POST("/reset", api.reset)
	mg.POST("/snapshot", api.snapshot)
	mg.GET("/:id", api.retrieve)
	mg.PUT("/:id", api.update)
	mg.DELETE("/:id", api.destroy)
}

type (
	LoginRequest struct {
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	SnapshotResponse struct {
		Location string `json:"location"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(lr)
}

// Handlers

func (api *adminApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := authenticate(api.conf, data.Password)
	if err != nil {
		return err
	}
	token, err := GenerateToken(api.conf, claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *adminApi) query(ctx echo.Context) error {
	materials, err := api.workspace.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing draft materials")
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)
	material.Sort(materials, ordering.Orderings)
	if materials == nil {
		materials = []material.Material{}
	}
	return ctx.JSON(http.StatusOK, materials)
}

func (api *adminApi) create(ctx echo.Context) error {
	var data material.NewMaterial
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMaterial")
	}
	m, err := api.workspace.Add(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding draft material")
	}
	return ctx.JSON(http.StatusCreated, m)
}

func (api *adminApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	m, err := api.workspace.Get(ctx.Request().Context(), id)
	if err != nil {
		return notFoundOr(err, "getting draft material")
	}
	return ctx.JSON(http.StatusOK, m)
}

func (api *adminApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data material.UpdateMaterial
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMaterial")
	}
	m, err := api.workspace.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return notFoundOr(err, "updating draft material")
	}
	return ctx.JSON(http.StatusOK, m)
}

func (api *adminApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.workspace.Delete(ctx.Request().Context(), id); err != nil {
		return notFoundOr(err, "deleting draft material")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *adminApi) export(ctx echo.Context) error {
	data, err := api.workspace.Export(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "exporting draft")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+dataset.Materials.FileName()+`"`)
	return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, data)
}

func (api *adminApi) importDataset(ctx echo.Context) error {
	data, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		if herr, ok := err.(*echo.HTTPError); ok { // body limit exceeded while reading
			return herr
		}
		return errors.Wrap(err, "reading import body")
	}
	materials, err := api.workspace.Import(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "importing draft")
	}
	return ctx.JSON(http.StatusOK, materials)
}

func (api *adminApi) reset(ctx echo.Context) error {
	if err := api.workspace.Reset(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "resetting draft")
	}
	materials, err := api.workspace.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing draft materials")
	}
	return ctx.JSON(http.StatusOK, materials)
}

func (api *adminApi) snapshot(ctx echo.Context) error {
	if api.snapshots == nil {
		return errSnapshotsDisabled
	}
	data, err := api.workspace.Export(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "exporting draft")
	}
	name := snapshotsvc.Name(dataset.Materials.FileName(), api.nowFunc())
	location, err := api.snapshots.Put(ctx.Request().Context(), name, data)
	if err != nil {
		if errors.Cause(err) == snapshotsvc.ErrDisabled {
			return errSnapshotsDisabled
		}
		return errors.Wrap(err, "storing snapshot")
	}
	return ctx.JSON(http.StatusCreated, SnapshotResponse{Location: location})
}
