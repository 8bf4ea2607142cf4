package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/adspirelabs/punotes/core/chat"
)

type chatApi struct {
	responder *chat.Responder
}

func registerChatAPI(g *echo.Group, responder *chat.Responder) {
	api := chatApi{responder: responder}

	cg := g.Group("/chat")
	cg.POST("", api.reply)
	cg.GET("/options", api.queryOptions)
	cg.POST("/options/:index", api.choose)
}

type (
	ChatRequest struct {
		Message string `json:"message"`
	}

	ChatOptionsResponse struct {
		Welcome chat.Message  `json:"welcome"`
		Options []chat.Option `json:"options"`
	}
)

func (api *chatApi) reply(ctx echo.Context) error {
	var data ChatRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChatRequest")
	}
	exchange, err := api.responder.Reply(ctx.Request().Context(), data.Message)
	if err != nil {
		return errors.Wrap(err, "replying to chat message")
	}
	return ctx.JSON(http.StatusOK, exchange)
}

func (api *chatApi) queryOptions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, ChatOptionsResponse{
		Welcome: api.responder.Welcome(),
		Options: api.responder.Options(),
	})
}

func (api *chatApi) choose(ctx echo.Context) error {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		return errHttpNotFound
	}
	exchange, err := api.responder.Choose(ctx.Request().Context(), index)
	if err != nil {
		return notFoundOr(err, "choosing chat option")
	}
	return ctx.JSON(http.StatusOK, exchange)
}
